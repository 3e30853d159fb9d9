package kvstore

import "errors"

// Domain errors for the kvstore package.
var (
	// ErrNotFound is returned when no value is stored under a key.
	ErrNotFound = errors.New("kvstore: not found")

	// ErrEmptyKey is returned when a key is blank.
	ErrEmptyKey = errors.New("kvstore: key is required")
)
