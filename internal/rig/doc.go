// Package rig implements the allocation and aggregation core of rig-calc.
//
// A rig is an ordered list of lines, each placing one or more identical
// fixtures at a contiguous DMX address range in a universe and on an
// electrical circuit. The package provides:
//
//   - Validator / Place: admit a placement if it fits inside a 512-channel universe
//   - Store: the ordered lines plus a never-reused id counter
//   - UniverseUsages: channel totals per universe with over-capacity flags
//   - BuildGrid: the 512-slot channel map with overlap detection and legend colours
//   - PowerByCircuit: watts and amps per circuit with load bands
//   - NextAddress: the next free start address in a universe
//
// Capacity is enforced when a line is added; overlaps are allowed and only
// surfaced by BuildGrid.
//
// # Purity
//
// Every aggregate is recomputed from the full list of lines on each call.
// Nothing is cached, so there is nothing to invalidate. The Store itself is
// not synchronised; see package session for the owner that serialises access
// and persists snapshots.
//
// # Usage
//
//	v := rig.NewValidator(catalog.Default(), 120)
//	store := rig.NewStore()
//
//	p, err := v.Validate(rig.PlacementRequest{
//	    FixtureID: "chauvet_r2_spot", ModeName: "Basic",
//	    Quantity: 4, Universe: 1, StartAddress: 1, Circuit: "Stage Left",
//	})
//	if err != nil {
//	    return err // rejection; store unchanged
//	}
//	store.Append(p)
//
//	loads, _ := rig.PowerByCircuit(store.Lines(), 120)
//	grid, _ := rig.BuildGrid(store.Lines(), 1)
package rig
