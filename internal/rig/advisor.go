package rig

// NextAddress suggests the start address for the next line in a universe:
// the channel after the highest end address already patched there.
//
// It returns 1 when the universe is empty or when the candidate would fall
// outside the universe (e.g. a line already ends at 512). The suggestion is
// advisory; callers may still place lines anywhere, including overlaps.
func NextAddress(lines []Line, universe int) int {
	highest := 0
	for _, l := range lines {
		if l.Universe == universe && l.EndAddress > highest {
			highest = l.EndAddress
		}
	}

	candidate := highest + 1
	if candidate < MinAddress || candidate > UniverseSize {
		return MinAddress
	}
	return candidate
}
