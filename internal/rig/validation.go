package rig

import (
	"fmt"
	"math"

	"github.com/aemckenna/rig-calc/internal/catalog"
)

// Validator admits placement requests against the fixture catalogue.
//
// Validation is a pure function of the request and the catalogue: it never
// touches a Store. Overlap with existing lines is deliberately not checked
// here; overlaps are reported by BuildGrid instead.
type Validator struct {
	catalog         *catalog.Catalog
	fallbackVoltage float64
}

// NewValidator creates a validator.
// fallbackVoltage is used for fixtures without a default voltage; values
// <= 0 select DefaultSupplyVoltage.
func NewValidator(cat *catalog.Catalog, fallbackVoltage float64) *Validator {
	if fallbackVoltage <= 0 {
		fallbackVoltage = DefaultSupplyVoltage
	}
	return &Validator{
		catalog:         cat,
		fallbackVoltage: fallbackVoltage,
	}
}

// Catalog returns the catalogue used for lookups.
func (v *Validator) Catalog() *catalog.Catalog {
	return v.catalog
}

// Validate resolves the request's fixture and mode and checks its footprint.
// Returns catalog.ErrFixtureNotFound or catalog.ErrModeNotFound for unknown
// references, otherwise the result of Place.
func (v *Validator) Validate(req PlacementRequest) (Placement, error) {
	fixture, mode, err := v.catalog.Resolve(req.FixtureID, req.ModeName)
	if err != nil {
		return Placement{}, err
	}
	return Place(fixture, mode, req, v.fallbackVoltage)
}

// Place checks a request for an already-resolved fixture and mode and
// computes the derived fields of the resulting line.
//
// Rejections:
//   - ErrAddressOutOfRange: start address outside 1..512
//   - ErrInvalidQuantity: quantity below 1
//   - ErrInvalidUniverse: universe below 1
//   - *FootprintError (ErrFootprintExceeded): end address past 512
func Place(fixture catalog.FixtureType, mode catalog.Mode, req PlacementRequest, fallbackVoltage float64) (Placement, error) {
	if req.StartAddress < MinAddress || req.StartAddress > UniverseSize {
		return Placement{}, fmt.Errorf("%w: %d (must be %d-%d)",
			ErrAddressOutOfRange, req.StartAddress, MinAddress, UniverseSize)
	}
	if req.Quantity < 1 {
		return Placement{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.Quantity)
	}
	if req.Universe < 1 {
		return Placement{}, fmt.Errorf("%w: got %d", ErrInvalidUniverse, req.Universe)
	}

	end := endAddress(req.StartAddress, mode.Channels, req.Quantity)
	if end > UniverseSize {
		return Placement{}, &FootprintError{
			Universe: req.Universe,
			Start:    req.StartAddress,
			End:      end,
		}
	}

	voltage := fixture.DefaultVoltage
	if voltage <= 0 {
		voltage = fallbackVoltage
	}
	if voltage <= 0 {
		voltage = DefaultSupplyVoltage
	}

	return Placement{
		FixtureID:          fixture.ID,
		Brand:              fixture.Brand,
		FixtureName:        fixture.Name,
		ModeName:           mode.Name,
		ChannelsPerFixture: mode.Channels,
		WattsPerFixture:    mode.PowerWatts,
		Quantity:           req.Quantity,
		Universe:           req.Universe,
		StartAddress:       req.StartAddress,
		EndAddress:         end,
		TotalChannels:      mode.Channels * req.Quantity,
		TotalWatts:         mode.PowerWatts * float64(req.Quantity),
		Circuit:            NormalizeCircuit(req.Circuit),
		Voltage:            voltage,
	}, nil
}

// endAddress returns start + channels*quantity - 1, saturating at math.MaxInt
// instead of overflowing for absurd quantities.
func endAddress(start, channels, quantity int) int {
	if channels > 0 && quantity > (math.MaxInt-start)/channels {
		return math.MaxInt
	}
	return start + channels*quantity - 1
}

// ValidateLine checks that a stored line satisfies the rig invariants.
// It is used when loading persisted data, which may have been edited or
// written by an older version.
func ValidateLine(l Line) error {
	switch {
	case l.ID < 1:
		return fmt.Errorf("%w: line id %d must be positive", ErrInvalidSnapshot, l.ID)
	case l.ChannelsPerFixture < 1:
		return fmt.Errorf("%w: line %d: channels per fixture must be positive", ErrInvalidSnapshot, l.ID)
	case l.Quantity < 1:
		return fmt.Errorf("%w: line %d: quantity must be positive", ErrInvalidSnapshot, l.ID)
	case l.Universe < 1:
		return fmt.Errorf("%w: line %d: universe must be positive", ErrInvalidSnapshot, l.ID)
	case l.StartAddress < MinAddress || l.StartAddress > UniverseSize:
		return fmt.Errorf("%w: line %d: start address %d out of range", ErrInvalidSnapshot, l.ID, l.StartAddress)
	case l.EndAddress != endAddress(l.StartAddress, l.ChannelsPerFixture, l.Quantity):
		return fmt.Errorf("%w: line %d: end address %d does not match footprint", ErrInvalidSnapshot, l.ID, l.EndAddress)
	case l.EndAddress > UniverseSize:
		return fmt.Errorf("%w: line %d: end address %d exceeds universe", ErrInvalidSnapshot, l.ID, l.EndAddress)
	case l.TotalChannels != l.ChannelsPerFixture*l.Quantity:
		return fmt.Errorf("%w: line %d: total channels mismatch", ErrInvalidSnapshot, l.ID)
	case l.WattsPerFixture < 0 || l.TotalWatts < 0:
		return fmt.Errorf("%w: line %d: wattage must not be negative", ErrInvalidSnapshot, l.ID)
	}
	return nil
}
