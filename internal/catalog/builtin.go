package catalog

// builtinFixtures returns a fresh copy of the built-in fixture list.
// Power figures are manufacturer maximums at the listed voltage.
func builtinFixtures() []FixtureType {
	return []FixtureType{
		{
			ID:             "chauvet_r2_spot",
			Brand:          "Chauvet",
			Name:           "R2 Spot",
			DefaultVoltage: 120,
			Modes: []Mode{
				{Name: "Basic", Channels: 18, PowerWatts: 240},
				{Name: "Extended", Channels: 21, PowerWatts: 240},
			},
		},
		{
			ID:             "chauvet_r3_wash",
			Brand:          "Chauvet",
			Name:           "R3 Wash",
			DefaultVoltage: 120,
			Modes: []Mode{
				{Name: "Basic", Channels: 21, PowerWatts: 660},
				{Name: "Detailed", Channels: 62, PowerWatts: 660},
				{Name: "Expanded", Channels: 71, PowerWatts: 660},
				{Name: "Complex", Channels: 107, PowerWatts: 660},
			},
		},
		{
			ID:             "astera_hyperion_tube",
			Brand:          "Astera",
			Name:           "Hyperion Tube",
			DefaultVoltage: 120,
			Modes: []Mode{
				{Name: "Pixel", Channels: 3, PowerWatts: 92},
				{Name: "DIM RGBAW DIM RGBAW", Channels: 48, PowerWatts: 92},
				{Name: "EFFECT MODE RGB", Channels: 255, PowerWatts: 92},
			},
		},
		{
			ID:             "chauvet_r2x_beam",
			Brand:          "Chauvet",
			Name:           "R2X Beam",
			DefaultVoltage: 120,
			Modes: []Mode{
				{Name: "Simple", Channels: 15, PowerWatts: 413},
				{Name: "Expanded", Channels: 18, PowerWatts: 413},
			},
		},
		{
			ID:             "elation_sixpar_200",
			Brand:          "Elation",
			Name:           "Sixpar 200",
			DefaultVoltage: 120,
			Modes: []Mode{
				{Name: "6-ch RGBW", Channels: 6, PowerWatts: 150},
				{Name: "7-ch RGBW", Channels: 7, PowerWatts: 150},
				{Name: "8-ch RGBW", Channels: 8, PowerWatts: 150},
				{Name: "12-ch RGBW", Channels: 12, PowerWatts: 150},
			},
		},
	}
}
