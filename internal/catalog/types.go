package catalog

// Mode is a named operating configuration of a fixture type.
// The mode fixes the fixture's DMX footprint and its power draw.
type Mode struct {
	// Name is unique within its fixture type (e.g., "Basic", "Extended").
	Name string `json:"name" yaml:"name"`

	// Channels is the number of consecutive DMX channels one fixture occupies.
	Channels int `json:"channels" yaml:"channels"`

	// PowerWatts is the maximum power draw of one fixture in this mode.
	PowerWatts float64 `json:"power_watts" yaml:"power_watts"`
}

// FixtureType is an immutable catalogue entry describing a lighting fixture.
type FixtureType struct {
	ID             string  `json:"id" yaml:"id"`
	Brand          string  `json:"brand" yaml:"brand"`
	Name           string  `json:"name" yaml:"name"`
	DefaultVoltage float64 `json:"default_voltage" yaml:"default_voltage"`
	Modes          []Mode  `json:"modes" yaml:"modes"`
}

// DisplayName returns "Brand Name", or just the name when no brand is set.
func (f FixtureType) DisplayName() string {
	if f.Brand == "" {
		return f.Name
	}
	return f.Brand + " " + f.Name
}

// Mode returns the mode with the given name.
// Returns ErrModeNotFound if the fixture has no such mode.
func (f FixtureType) Mode(name string) (Mode, error) {
	for _, m := range f.Modes {
		if m.Name == name {
			return m, nil
		}
	}
	return Mode{}, ErrModeNotFound
}

// clone returns a copy of the fixture whose Modes slice is not shared.
func (f FixtureType) clone() FixtureType {
	c := f
	c.Modes = append([]Mode(nil), f.Modes...)
	return c
}
