package rig

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// SlotState classifies a channel slot by how many lines occupy it.
type SlotState string

// Slot states.
const (
	SlotEmpty   SlotState = "empty"
	SlotUsed    SlotState = "used"
	SlotOverlap SlotState = "overlap"
)

// Legend colour parameters (HSL saturation and lightness).
const (
	legendSaturation = 0.7
	legendLightness  = 0.55
)

// Occupant describes one rig line covering a channel.
type Occupant struct {
	LineID       int    `json:"line_id"`
	FixtureName  string `json:"fixture_name"`
	ModeName     string `json:"mode"`
	Quantity     int    `json:"quantity"`
	StartAddress int    `json:"start_address"`
	EndAddress   int    `json:"end_address"`
	Color        string `json:"color"`
}

// Slot is one of the 512 channels of a universe.
type Slot struct {
	Channel   int        `json:"channel"`
	State     SlotState  `json:"state"`
	Occupants []Occupant `json:"occupants,omitempty"`

	// Color is empty for empty slots, the occupant's legend colour for used
	// slots and a blend of all occupant colours for overlaps.
	Color string `json:"color,omitempty"`
}

// LegendEntry maps a line in the universe to its display colour.
type LegendEntry struct {
	Occupant
	Label string `json:"label"`
}

// Grid is the channel map of a single universe.
type Grid struct {
	Universe int           `json:"universe"`
	Slots    []Slot        `json:"slots"`
	Legend   []LegendEntry `json:"legend"`

	// Used counts slots with exactly one occupant.
	Used int `json:"used"`

	// Overlapping counts slots with two or more occupants.
	Overlapping int `json:"overlapping"`
}

// Occupied returns the number of distinct channels covered by at least one line.
func (g *Grid) Occupied() int {
	return g.Used + g.Overlapping
}

// Slot returns the slot for a 1-based channel number.
func (g *Grid) Slot(channel int) (Slot, bool) {
	if channel < MinAddress || channel > len(g.Slots) {
		return Slot{}, false
	}
	return g.Slots[channel-1], true
}

// BuildGrid maps every channel of a universe to the lines occupying it.
//
// Each line in the universe gets a legend colour from an evenly spaced hue
// rotation over its position among that universe's lines. Colours therefore
// depend on order, not on line id: removing an earlier line shifts the
// colours of the lines after it.
//
// Returns ErrNoUniverseSelected when universe is not positive.
func BuildGrid(lines []Line, universe int) (*Grid, error) {
	if universe < 1 {
		return nil, ErrNoUniverseSelected
	}

	members := linesInUniverse(lines, universe)
	palette := legendPalette(len(members))

	g := &Grid{
		Universe: universe,
		Slots:    make([]Slot, UniverseSize),
		Legend:   make([]LegendEntry, 0, len(members)),
	}
	for i := range g.Slots {
		g.Slots[i] = Slot{Channel: i + 1, State: SlotEmpty}
	}

	slotColors := make([][]colorful.Color, UniverseSize)
	for i, l := range members {
		occ := Occupant{
			LineID:       l.ID,
			FixtureName:  l.FixtureName,
			ModeName:     l.ModeName,
			Quantity:     l.Quantity,
			StartAddress: l.StartAddress,
			EndAddress:   l.EndAddress,
			Color:        palette[i].Hex(),
		}
		g.Legend = append(g.Legend, LegendEntry{Occupant: occ, Label: l.Label()})

		from := max(l.StartAddress, MinAddress)
		to := min(l.EndAddress, UniverseSize)
		for ch := from; ch <= to; ch++ {
			g.Slots[ch-1].Occupants = append(g.Slots[ch-1].Occupants, occ)
			slotColors[ch-1] = append(slotColors[ch-1], palette[i])
		}
	}

	for i := range g.Slots {
		s := &g.Slots[i]
		switch len(s.Occupants) {
		case 0:
			continue
		case 1:
			s.State = SlotUsed
			s.Color = s.Occupants[0].Color
			g.Used++
		default:
			s.State = SlotOverlap
			s.Color = blend(slotColors[i]).Hex()
			g.Overlapping++
		}
	}

	return g, nil
}

// legendPalette returns n colours evenly spaced around the hue wheel.
func legendPalette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		hue := float64(i) * 360 / float64(n)
		out[i] = colorful.Hsl(hue, legendSaturation, legendLightness)
	}
	return out
}

// blend returns the perceptual (Lab) average of the given colours.
func blend(colors []colorful.Color) colorful.Color {
	acc := colors[0]
	for i := 1; i < len(colors); i++ {
		acc = acc.BlendLab(colors[i], 1/float64(i+1))
	}
	return acc.Clamped()
}
