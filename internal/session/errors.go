package session

import "errors"

var (
	// ErrLineNotFound is returned when a line id is not in the rig.
	ErrLineNotFound = errors.New("session: line not found")
)
