package rig

import (
	"strconv"
	"strings"
)

// DMX-512 addressing limits.
const (
	// UniverseSize is the number of channels in one DMX universe.
	UniverseSize = 512

	// MinAddress is the first addressable channel of a universe.
	MinAddress = 1
)

// DefaultCircuit is the bucket for lines without a circuit name.
const DefaultCircuit = "Unassigned"

// DefaultSupplyVoltage is the fallback voltage when neither the fixture nor
// the configuration provides one.
const DefaultSupplyVoltage = 120.0

// PlacementRequest is a proposed rig line as collected by a user interface.
// All values are already parsed; the core only applies domain checks.
type PlacementRequest struct {
	FixtureID    string `json:"fixture_id"`
	ModeName     string `json:"mode"`
	Quantity     int    `json:"quantity"`
	Universe     int    `json:"universe"`
	StartAddress int    `json:"start_address"`
	Circuit      string `json:"circuit"`
}

// Placement is an accepted rig line that has not yet been assigned an id.
//
// Fixture and mode values are denormalised copies taken at validation time,
// so later catalogue changes never alter an existing line.
type Placement struct {
	FixtureID          string  `json:"fixture_id"`
	Brand              string  `json:"brand"`
	FixtureName        string  `json:"fixture_name"`
	ModeName           string  `json:"mode"`
	ChannelsPerFixture int     `json:"channels_per_fixture"`
	WattsPerFixture    float64 `json:"watts_per_fixture"`
	Quantity           int     `json:"quantity"`
	Universe           int     `json:"universe"`
	StartAddress       int     `json:"start_address"`
	EndAddress         int     `json:"end_address"`
	TotalChannels      int     `json:"total_channels"`
	TotalWatts         float64 `json:"total_watts"`
	Circuit            string  `json:"circuit"`
	Voltage            float64 `json:"voltage"`
}

// Line is one placed fixture group in the rig.
type Line struct {
	ID int `json:"id"`
	Placement
}

// Label returns a short human description such as "4 x Chauvet R2 Spot (Basic)".
func (l Line) Label() string {
	name := l.FixtureName
	if l.Brand != "" {
		name = l.Brand + " " + l.FixtureName
	}
	return strconv.Itoa(l.Quantity) + " x " + name + " (" + l.ModeName + ")"
}

// NormalizeCircuit trims a circuit name and maps blank names to DefaultCircuit.
// Every component that groups by circuit uses this, so "Dimmer 1" and
// " Dimmer 1 " land in the same bucket.
func NormalizeCircuit(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCircuit
	}
	return name
}

// linesInUniverse returns the lines patched into a universe, preserving order.
func linesInUniverse(lines []Line, universe int) []Line {
	var out []Line
	for _, l := range lines {
		if l.Universe == universe {
			out = append(out, l)
		}
	}
	return out
}
