package session

import (
	"time"

	"github.com/aemckenna/rig-calc/internal/rig"
)

// Summary is the whole-rig overview published after each change and shown
// by the report command.
type Summary struct {
	Lines         int                 `json:"lines"`
	Fixtures      int                 `json:"fixtures"`
	TotalChannels int                 `json:"total_channels"`
	TotalWatts    float64             `json:"total_watts"`
	Voltage       float64             `json:"voltage"`
	Universes     []rig.UniverseUsage `json:"universes"`
	Circuits      []rig.CircuitLoad   `json:"circuits"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OverUniverses returns the universes whose channel total exceeds 512.
func (s Summary) OverUniverses() []rig.UniverseUsage {
	var out []rig.UniverseUsage
	for _, u := range s.Universes {
		if u.Over {
			out = append(out, u)
		}
	}
	return out
}

// LoadedCircuits returns the circuits in the warning or over-limit band.
func (s Summary) LoadedCircuits() []rig.CircuitLoad {
	var out []rig.CircuitLoad
	for _, c := range s.Circuits {
		if c.Band != rig.BandNormal {
			out = append(out, c)
		}
	}
	return out
}

// Summarize aggregates lines at the given supply voltage.
// Returns rig.ErrInvalidVoltage for a non-positive voltage.
func Summarize(lines []rig.Line, voltage float64, now time.Time) (Summary, error) {
	circuits, err := rig.PowerByCircuit(lines, voltage)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Lines:     len(lines),
		Voltage:   voltage,
		Universes: rig.UniverseUsages(lines),
		Circuits:  circuits,
		UpdatedAt: now.UTC(),
	}
	for _, l := range lines {
		s.Fixtures += l.Quantity
		s.TotalChannels += l.TotalChannels
		s.TotalWatts += l.TotalWatts
	}
	return s, nil
}
