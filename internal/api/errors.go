package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/rig"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`

	// Detail carries structured context for placement rejections.
	Detail any `json:"detail,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternal       = "internal_error"
	ErrCodeRejected       = "placement_rejected"
	ErrCodeNoUniverse     = "no_universe_selected"
	ErrCodeMethodNotAllow = "method_not_allowed"
)

// FootprintDetail is the detail of a footprint rejection.
type FootprintDetail struct {
	Universe int `json:"universe"`
	Start    int `json:"start_address"`
	End      int `json:"end_address"`
	Max      int `json:"max_address"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writePlacementError maps an AddLine failure to a response.
// Footprint, address, quantity and universe failures and unknown fixtures or
// modes are 422; anything else is 500. It reports whether err was a
// rejection.
func writePlacementError(w http.ResponseWriter, err error) bool {
	status := http.StatusUnprocessableEntity
	resp := Error{Status: status, Code: ErrCodeRejected, Message: err.Error()}

	var fe *rig.FootprintError
	switch {
	case errors.As(err, &fe):
		resp.Detail = FootprintDetail{
			Universe: fe.Universe,
			Start:    fe.Start,
			End:      fe.End,
			Max:      rig.UniverseSize,
		}
	case rig.IsRejection(err),
		errors.Is(err, catalog.ErrFixtureNotFound),
		errors.Is(err, catalog.ErrModeNotFound):
	default:
		writeInternalError(w, "failed to add line")
		return false
	}

	writeJSON(w, status, resp)
	return true
}
