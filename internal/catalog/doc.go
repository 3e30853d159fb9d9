// Package catalog provides the fixture catalogue for rig-calc.
//
// The catalogue is static reference data: a list of fixture types, each with
// one or more operating modes. A mode fixes the fixture's DMX channel count
// and its power draw. Rig lines copy the values they need at creation time,
// so replacing the catalogue never changes existing lines.
//
// # Usage
//
//	cat := catalog.Default()
//	fixture, mode, err := cat.Resolve("chauvet_r2_spot", "Basic")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(fixture.DisplayName(), mode.Channels)
//
// Sites can extend the built-in list with a YAML overlay (see LoadFile).
package catalog
