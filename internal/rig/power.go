package rig

import (
	"math"
	"sort"
)

// Circuit load thresholds in amps.
const (
	// WarningAmps is the highest load still considered within normal.
	WarningAmps = 15.0

	// LimitAmps is the highest load still considered a warning.
	LimitAmps = 20.0
)

// Band classifies a circuit's amperage.
type Band string

// Load bands.
const (
	BandNormal  Band = "normal"     // amps <= 15
	BandWarning Band = "warning"    // 15 < amps <= 20
	BandOver    Band = "over_limit" // amps > 20
)

// Description returns the human-readable band name.
func (b Band) Description() string {
	switch b {
	case BandNormal:
		return "within normal"
	case BandWarning:
		return "warning"
	case BandOver:
		return "over limit"
	default:
		return string(b)
	}
}

// CircuitLoad is the aggregated electrical load on one circuit.
type CircuitLoad struct {
	Circuit string  `json:"circuit"`
	Lines   int     `json:"lines"`
	Watts   float64 `json:"watts"`

	// Amps is the precise Watts/Voltage value; it drives Band.
	Amps float64 `json:"amps"`

	// DisplayAmps is Amps rounded to one decimal place.
	DisplayAmps float64 `json:"display_amps"`

	Band Band `json:"band"`
}

// ClassifyAmps returns the band for an unrounded amperage.
func ClassifyAmps(amps float64) Band {
	switch {
	case amps > LimitAmps:
		return BandOver
	case amps > WarningAmps:
		return BandWarning
	default:
		return BandNormal
	}
}

// RoundAmps rounds to one decimal place, halves away from zero.
func RoundAmps(amps float64) float64 {
	return math.Round(amps*10) / 10
}

// PowerByCircuit groups lines by normalised circuit name, sums their wattage
// and derives amperage at the given supply voltage. Results are sorted by
// circuit name.
//
// Returns ErrInvalidVoltage when voltage is not positive.
func PowerByCircuit(lines []Line, voltage float64) ([]CircuitLoad, error) {
	if voltage <= 0 || math.IsNaN(voltage) || math.IsInf(voltage, 0) {
		return nil, ErrInvalidVoltage
	}

	byCircuit := make(map[string]*CircuitLoad)
	for _, l := range lines {
		name := NormalizeCircuit(l.Circuit)
		c, ok := byCircuit[name]
		if !ok {
			c = &CircuitLoad{Circuit: name}
			byCircuit[name] = c
		}
		c.Watts += l.TotalWatts
		c.Lines++
	}

	out := make([]CircuitLoad, 0, len(byCircuit))
	for _, c := range byCircuit {
		c.Amps = c.Watts / voltage
		c.DisplayAmps = RoundAmps(c.Amps)
		c.Band = ClassifyAmps(c.Amps)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Circuit < out[j].Circuit
	})
	return out, nil
}
