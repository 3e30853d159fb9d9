package rig

import "github.com/aemckenna/rig-calc/internal/catalog"

// testFixture returns a single-mode fixture for validation tests.
func testFixture(channels int, watts float64) catalog.FixtureType {
	return catalog.FixtureType{
		ID:             "test_fixture",
		Brand:          "Test",
		Name:           "Fixture",
		DefaultVoltage: 120,
		Modes:          []catalog.Mode{{Name: "Mode", Channels: channels, PowerWatts: watts}},
	}
}

// testLine builds a consistent line without going through the validator.
func testLine(id, universe, start, channels, qty int, circuit string, watts float64) Line {
	return Line{
		ID: id,
		Placement: Placement{
			FixtureID:          "test_fixture",
			Brand:              "Test",
			FixtureName:        "Fixture",
			ModeName:           "Mode",
			ChannelsPerFixture: channels,
			WattsPerFixture:    watts,
			Quantity:           qty,
			Universe:           universe,
			StartAddress:       start,
			EndAddress:         start + channels*qty - 1,
			TotalChannels:      channels * qty,
			TotalWatts:         watts * float64(qty),
			Circuit:            circuit,
			Voltage:            120,
		},
	}
}
