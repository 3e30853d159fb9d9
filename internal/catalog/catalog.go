package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is a read-only, ordered list of fixture types.
//
// A Catalog never changes after construction, so it is safe for concurrent use.
// Lookups return copies; callers cannot mutate catalogue data.
type Catalog struct {
	fixtures []FixtureType
	byID     map[string]int
}

// New builds a catalogue from the given fixtures, preserving their order.
// Returns an error wrapping ErrInvalidFixture or ErrDuplicateFixture when a
// definition is unusable.
func New(fixtures []FixtureType) (*Catalog, error) {
	c := &Catalog{
		fixtures: make([]FixtureType, 0, len(fixtures)),
		byID:     make(map[string]int, len(fixtures)),
	}
	for _, f := range fixtures {
		if err := ValidateFixture(f); err != nil {
			return nil, err
		}
		if _, exists := c.byID[f.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFixture, f.ID)
		}
		c.byID[f.ID] = len(c.fixtures)
		c.fixtures = append(c.fixtures, f.clone())
	}
	return c, nil
}

// Default returns the built-in catalogue.
func Default() *Catalog {
	c, err := New(builtinFixtures())
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in fixtures are invalid: %v", err))
	}
	return c
}

// catalogFile is the YAML layout of a catalogue overlay file.
type catalogFile struct {
	Fixtures []FixtureType `yaml:"fixtures"`
}

// LoadFile returns the built-in catalogue extended with the fixtures in a
// YAML file. A fixture whose id matches a built-in entry replaces it in place;
// new ids are appended in file order.
//
// Example file:
//
//	fixtures:
//	  - id: "generic_par"
//	    brand: "Generic"
//	    name: "LED Par"
//	    default_voltage: 230
//	    modes:
//	      - { name: "3ch", channels: 3, power_watts: 60 }
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	merged := builtinFixtures()
	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.ID] = i
	}

	seen := make(map[string]struct{}, len(file.Fixtures))
	for _, f := range file.Fixtures {
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFixture, f.ID)
		}
		seen[f.ID] = struct{}{}

		if i, ok := index[f.ID]; ok {
			merged[i] = f
			continue
		}
		index[f.ID] = len(merged)
		merged = append(merged, f)
	}

	return New(merged)
}

// Fixtures returns all fixture types in catalogue order.
func (c *Catalog) Fixtures() []FixtureType {
	out := make([]FixtureType, len(c.fixtures))
	for i, f := range c.fixtures {
		out[i] = f.clone()
	}
	return out
}

// Len returns the number of fixture types.
func (c *Catalog) Len() int {
	return len(c.fixtures)
}

// Lookup returns the fixture type with the given id.
// Returns ErrFixtureNotFound if the id is unknown.
func (c *Catalog) Lookup(id string) (FixtureType, error) {
	i, ok := c.byID[id]
	if !ok {
		return FixtureType{}, ErrFixtureNotFound
	}
	return c.fixtures[i].clone(), nil
}

// Resolve looks up a fixture and one of its modes in a single call.
func (c *Catalog) Resolve(fixtureID, modeName string) (FixtureType, Mode, error) {
	f, err := c.Lookup(fixtureID)
	if err != nil {
		return FixtureType{}, Mode{}, fmt.Errorf("%w: %q", err, fixtureID)
	}
	m, err := f.Mode(modeName)
	if err != nil {
		return FixtureType{}, Mode{}, fmt.Errorf("%w: %q has no mode %q", err, fixtureID, modeName)
	}
	return f, m, nil
}

// ValidateFixture checks a fixture definition.
// Mode names must be unique within the fixture, channel counts positive and
// power draws non-negative.
func ValidateFixture(f FixtureType) error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidFixture)
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: %s: name is required", ErrInvalidFixture, f.ID)
	}
	if f.DefaultVoltage < 0 {
		return fmt.Errorf("%w: %s: default voltage must not be negative", ErrInvalidFixture, f.ID)
	}
	if len(f.Modes) == 0 {
		return fmt.Errorf("%w: %s: at least one mode is required", ErrInvalidFixture, f.ID)
	}

	names := make(map[string]struct{}, len(f.Modes))
	for _, m := range f.Modes {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: %s: mode name is required", ErrInvalidFixture, f.ID)
		}
		if _, dup := names[m.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate mode %q", ErrInvalidFixture, f.ID, m.Name)
		}
		names[m.Name] = struct{}{}

		if m.Channels < 1 {
			return fmt.Errorf("%w: %s/%s: channels must be positive", ErrInvalidFixture, f.ID, m.Name)
		}
		if m.PowerWatts < 0 {
			return fmt.Errorf("%w: %s/%s: power must not be negative", ErrInvalidFixture, f.ID, m.Name)
		}
	}
	return nil
}
