package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aemckenna/rig-calc/internal/catalog"
)

// handleListCatalog returns every fixture type with its modes.
func (s *Server) handleListCatalog(w http.ResponseWriter, _ *http.Request) {
	fixtures := s.session.Catalog().Fixtures()
	writeJSON(w, http.StatusOK, map[string]any{
		"fixtures": fixtures,
		"count":    len(fixtures),
	})
}

// handleGetFixture returns one fixture type.
func (s *Server) handleGetFixture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fixture, err := s.session.Catalog().Lookup(id)
	if err != nil {
		if errors.Is(err, catalog.ErrFixtureNotFound) {
			writeNotFound(w, "fixture not found")
			return
		}
		writeInternalError(w, "failed to look up fixture")
		return
	}
	writeJSON(w, http.StatusOK, fixture)
}
