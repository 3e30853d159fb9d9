package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aemckenna/rig-calc/internal/history"
)

// HistoryLister reads the rig change journal.
type HistoryLister interface {
	List(ctx context.Context, filter history.Filter) (*history.ListResult, error)
}

// handleListHistory returns journal entries, newest first.
//
// Query parameters:
//   - reason: line_added, line_removed, cleared or demo_loaded
//   - line_id: changes to one line
//   - limit: max results (default 50, max 200)
//   - offset: pagination offset
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeInternalError(w, "rig history not configured")
		return
	}

	q := r.URL.Query()
	filter := history.Filter{Reason: q.Get("reason")}
	for name, dst := range map[string]*int{
		"line_id": &filter.LineID,
		"limit":   &filter.Limit,
		"offset":  &filter.Offset,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, name+" must be an integer")
			return
		}
		*dst = n
	}

	result, err := s.history.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list rig history", "error", err)
		writeInternalError(w, "failed to list rig history")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
