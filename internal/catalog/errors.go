package catalog

import "errors"

// Domain errors for the catalog package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, catalog.ErrFixtureNotFound) {
//	    // unknown fixture id
//	}
var (
	// ErrFixtureNotFound is returned when a fixture id is not in the catalogue.
	ErrFixtureNotFound = errors.New("catalog: fixture not found")

	// ErrModeNotFound is returned when a mode name is not defined for a fixture.
	ErrModeNotFound = errors.New("catalog: mode not found")

	// ErrInvalidFixture is returned when a fixture definition fails validation.
	ErrInvalidFixture = errors.New("catalog: invalid fixture")

	// ErrDuplicateFixture is returned when two fixtures share an id.
	ErrDuplicateFixture = errors.New("catalog: duplicate fixture id")
)
