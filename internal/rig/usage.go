package rig

import "sort"

// UniverseUsage summarises channel consumption in one universe.
type UniverseUsage struct {
	Universe int `json:"universe"`

	// Used is the sum of TotalChannels over every line in the universe.
	// Overlapping lines are counted twice, so Used can exceed 512.
	Used int `json:"used"`

	// Lines is the number of rig lines patched into the universe.
	Lines int `json:"lines"`

	// Over is true when Used exceeds UniverseSize.
	Over bool `json:"over"`

	// Percent is Used/UniverseSize capped at 1.0 for display.
	Percent float64 `json:"percent"`
}

// UniverseTotals returns universe -> total channels for every universe that
// has at least one line.
func UniverseTotals(lines []Line) map[int]int {
	totals := make(map[int]int)
	for _, l := range lines {
		totals[l.Universe] += l.TotalChannels
	}
	return totals
}

// UniverseUsages returns per-universe usage sorted by universe number.
func UniverseUsages(lines []Line) []UniverseUsage {
	byUniverse := make(map[int]*UniverseUsage)
	for _, l := range lines {
		u, ok := byUniverse[l.Universe]
		if !ok {
			u = &UniverseUsage{Universe: l.Universe}
			byUniverse[l.Universe] = u
		}
		u.Used += l.TotalChannels
		u.Lines++
	}

	out := make([]UniverseUsage, 0, len(byUniverse))
	for _, u := range byUniverse {
		u.Over = u.Used > UniverseSize
		u.Percent = usagePercent(u.Used)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Universe < out[j].Universe
	})
	return out
}

// usagePercent returns used/UniverseSize capped to [0, 1].
func usagePercent(used int) float64 {
	p := float64(used) / UniverseSize
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
