package rig

import "fmt"

// DemoRequests is the sample rig: five lines across three universes.
//
// The circuits are chosen to show every load band at 120 V: Stage Right is
// over limit, Upstage Truss is in warning, the rest are within normal.
func DemoRequests() []PlacementRequest {
	return []PlacementRequest{
		{FixtureID: "chauvet_r2_spot", ModeName: "Basic", Quantity: 4, Universe: 1, StartAddress: 1, Circuit: "Stage Left"},
		{FixtureID: "chauvet_r3_wash", ModeName: "Basic", Quantity: 4, Universe: 1, StartAddress: 73, Circuit: "Stage Right"},
		{FixtureID: "astera_hyperion_tube", ModeName: "DIM RGBAW DIM RGBAW", Quantity: 8, Universe: 2, StartAddress: 1, Circuit: "Upstage Truss"},
		{FixtureID: "chauvet_r2x_beam", ModeName: "Simple", Quantity: 3, Universe: 2, StartAddress: 385, Circuit: "Upstage Truss"},
		{FixtureID: "elation_sixpar_200", ModeName: "8-ch RGBW", Quantity: 6, Universe: 3, StartAddress: 1, Circuit: "Front of House"},
	}
}

// DemoPlacements validates the demo requests against the validator's
// catalogue. An error means the catalogue no longer carries a demo fixture.
func DemoPlacements(v *Validator) ([]Placement, error) {
	reqs := DemoRequests()
	out := make([]Placement, 0, len(reqs))
	for _, req := range reqs {
		p, err := v.Validate(req)
		if err != nil {
			return nil, fmt.Errorf("demo line %s/%s: %w", req.FixtureID, req.ModeName, err)
		}
		out = append(out, p)
	}
	return out, nil
}
