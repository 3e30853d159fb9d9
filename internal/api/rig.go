package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aemckenna/rig-calc/internal/rig"
	"github.com/aemckenna/rig-calc/internal/session"
)

// RigResponse is the body of GET /rig.
type RigResponse struct {
	Lines   []rig.Line `json:"lines"`
	NextID  int        `json:"next_id"`
	Voltage float64    `json:"voltage"`
}

// handleGetRig returns every line in display order plus the id counter.
func (s *Server) handleGetRig(w http.ResponseWriter, _ *http.Request) {
	snap := s.session.Snapshot()
	if snap.Lines == nil {
		snap.Lines = []rig.Line{}
	}
	writeJSON(w, http.StatusOK, RigResponse{
		Lines:   snap.Lines,
		NextID:  snap.NextID,
		Voltage: s.session.Voltage(),
	})
}

// handleClearRig removes every line.
func (s *Server) handleClearRig(w http.ResponseWriter, r *http.Request) {
	s.session.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleAddLine validates and appends a placement.
func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	var req rig.PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	line, err := s.session.AddLine(r.Context(), req)
	if err != nil {
		if writePlacementError(w, err) {
			s.metrics.rejections.Inc()
		} else {
			s.logger.Error("adding line failed", "error", err)
		}
		return
	}

	w.Header().Set("Location", "/api/v1/rig/lines/"+strconv.Itoa(line.ID))
	writeJSON(w, http.StatusCreated, line)
}

// handleGetLine returns one line.
func (s *Server) handleGetLine(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	line, err := s.session.Line(id)
	if errors.Is(err, session.ErrLineNotFound) {
		writeNotFound(w, "line not found")
		return
	}
	writeJSON(w, http.StatusOK, line)
}

// handleDeleteLine removes a line. Unknown ids are a no-op, so the response
// is 204 either way.
func (s *Server) handleDeleteLine(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	s.session.RemoveLine(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadDemo replaces the rig with the demo lines.
func (s *Server) handleLoadDemo(w http.ResponseWriter, r *http.Request) {
	lines, err := s.session.LoadDemo(r.Context())
	if err != nil {
		s.logger.Error("loading demo rig failed", "error", err)
		writeInternalError(w, "failed to load demo rig")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// handleListUniverses returns channel usage per universe.
func (s *Server) handleListUniverses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"universes": s.session.Usages(),
		"capacity":  rig.UniverseSize,
	})
}

// handleGrid returns the 512-slot channel map of one universe.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	universe, ok := intParam(w, r, "universe")
	if !ok {
		return
	}
	grid, err := s.session.Grid(universe)
	if errors.Is(err, rig.ErrNoUniverseSelected) {
		writeError(w, http.StatusBadRequest, ErrCodeNoUniverse, "no universe selected")
		return
	}
	if err != nil {
		writeInternalError(w, "failed to build grid")
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// handleNextAddress suggests a start address for the next line.
func (s *Server) handleNextAddress(w http.ResponseWriter, r *http.Request) {
	universe, ok := intParam(w, r, "universe")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"universe":     universe,
		"next_address": s.session.NextAddress(universe),
	})
}

// handlePower returns the load on each circuit.
func (s *Server) handlePower(w http.ResponseWriter, _ *http.Request) {
	circuits, err := s.session.Power()
	if err != nil {
		s.logger.Error("power aggregation failed", "error", err)
		writeInternalError(w, "failed to aggregate power")
		return
	}
	if circuits == nil {
		circuits = []rig.CircuitLoad{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"voltage":  s.session.Voltage(),
		"circuits": circuits,
	})
}

// handleSummary returns the whole-rig overview.
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.session.Summary()
	if err != nil {
		writeInternalError(w, "failed to summarise rig")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// intParam parses a URL parameter as an integer, writing a 400 on failure.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeBadRequest(w, name+" must be an integer")
		return 0, false
	}
	return v, true
}
