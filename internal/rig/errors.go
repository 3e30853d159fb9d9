package rig

import (
	"errors"
	"fmt"
)

// Domain errors for the rig package.
//
// Placement rejections can be checked using errors.Is():
//
//	if errors.Is(err, rig.ErrFootprintExceeded) {
//	    var fe *rig.FootprintError
//	    errors.As(err, &fe) // fe.End, fe.Universe
//	}
var (
	// ErrAddressOutOfRange is returned when a start address is outside 1..512.
	ErrAddressOutOfRange = errors.New("rig: start address out of range")

	// ErrFootprintExceeded is returned when a placement would run past channel 512.
	ErrFootprintExceeded = errors.New("rig: footprint exceeds universe capacity")

	// ErrInvalidQuantity is returned when a placement has fewer than one fixture.
	ErrInvalidQuantity = errors.New("rig: quantity must be at least 1")

	// ErrInvalidUniverse is returned when a universe number is not positive.
	ErrInvalidUniverse = errors.New("rig: universe must be at least 1")

	// ErrNoUniverseSelected is returned by BuildGrid when no valid universe was chosen.
	ErrNoUniverseSelected = errors.New("rig: no universe selected")

	// ErrInvalidVoltage is returned when a supply voltage is not positive.
	ErrInvalidVoltage = errors.New("rig: supply voltage must be positive")

	// ErrInvalidSnapshot is returned when persisted rig data breaks an invariant.
	ErrInvalidSnapshot = errors.New("rig: invalid snapshot")
)

// FootprintError reports a placement whose address range does not fit the universe.
// It wraps ErrFootprintExceeded.
type FootprintError struct {
	Universe int
	Start    int
	End      int
}

func (e *FootprintError) Error() string {
	return fmt.Sprintf("%s: universe %d, start %d, end %d (max %d)",
		ErrFootprintExceeded, e.Universe, e.Start, e.End, UniverseSize)
}

func (e *FootprintError) Unwrap() error {
	return ErrFootprintExceeded
}

// IsRejection reports whether err is a placement validation failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrAddressOutOfRange) ||
		errors.Is(err, ErrFootprintExceeded) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidUniverse)
}
