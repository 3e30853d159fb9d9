package rig

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the fixed key under which the rig snapshot is persisted.
const StorageKey = "dmx_power_calc_rig"

// Snapshot is the persisted form of a Store: every line plus the id counter.
// On disk it is {"lines":[...],"nextId":n} with camelCase line keys; the
// HTTP API keeps the snake_case tags on Line.
type Snapshot struct {
	Lines  []Line
	NextID int
}

type storedSnapshot struct {
	Lines  []storedLine `json:"lines"`
	NextID int          `json:"nextId"`
}

type storedLine struct {
	ID                 int     `json:"id"`
	FixtureID          string  `json:"fixtureId"`
	Brand              string  `json:"brand"`
	FixtureName        string  `json:"fixtureName"`
	ModeName           string  `json:"modeName"`
	ChannelsPerFixture int     `json:"channelsPerFixture"`
	WattsPerFixture    float64 `json:"wattsPerFixture"`
	Quantity           int     `json:"quantity"`
	Universe           int     `json:"universe"`
	StartAddress       int     `json:"startAddress"`
	EndAddress         int     `json:"endAddress"`
	TotalChannels      int     `json:"totalChannels"`
	TotalWatts         float64 `json:"totalWatts"`
	Circuit            string  `json:"circuit"`
	Voltage            float64 `json:"voltage"`
}

func toStored(l Line) storedLine {
	return storedLine{
		ID:                 l.ID,
		FixtureID:          l.FixtureID,
		Brand:              l.Brand,
		FixtureName:        l.FixtureName,
		ModeName:           l.ModeName,
		ChannelsPerFixture: l.ChannelsPerFixture,
		WattsPerFixture:    l.WattsPerFixture,
		Quantity:           l.Quantity,
		Universe:           l.Universe,
		StartAddress:       l.StartAddress,
		EndAddress:         l.EndAddress,
		TotalChannels:      l.TotalChannels,
		TotalWatts:         l.TotalWatts,
		Circuit:            l.Circuit,
		Voltage:            l.Voltage,
	}
}

func (sl storedLine) line() Line {
	return Line{
		ID: sl.ID,
		Placement: Placement{
			FixtureID:          sl.FixtureID,
			Brand:              sl.Brand,
			FixtureName:        sl.FixtureName,
			ModeName:           sl.ModeName,
			ChannelsPerFixture: sl.ChannelsPerFixture,
			WattsPerFixture:    sl.WattsPerFixture,
			Quantity:           sl.Quantity,
			Universe:           sl.Universe,
			StartAddress:       sl.StartAddress,
			EndAddress:         sl.EndAddress,
			TotalChannels:      sl.TotalChannels,
			TotalWatts:         sl.TotalWatts,
			Circuit:            sl.Circuit,
			Voltage:            sl.Voltage,
		},
	}
}

// Validate checks every line and the counter.
// A snapshot is rejected as a whole; there is no partial recovery.
func (s Snapshot) Validate() error {
	if s.NextID < 1 {
		return fmt.Errorf("%w: next id %d must be positive", ErrInvalidSnapshot, s.NextID)
	}

	seen := make(map[int]struct{}, len(s.Lines))
	for _, l := range s.Lines {
		if err := ValidateLine(l); err != nil {
			return err
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate line id %d", ErrInvalidSnapshot, l.ID)
		}
		seen[l.ID] = struct{}{}
		if l.ID >= s.NextID {
			return fmt.Errorf("%w: line id %d not below next id %d", ErrInvalidSnapshot, l.ID, s.NextID)
		}
	}
	return nil
}

// EncodeSnapshot serialises a snapshot to JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	stored := storedSnapshot{Lines: make([]storedLine, 0, len(s.Lines)), NextID: s.NextID}
	for _, l := range s.Lines {
		stored.Lines = append(stored.Lines, toStored(l))
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encoding rig snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a serialised snapshot.
// Malformed JSON and invariant violations both return an error wrapping
// ErrInvalidSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var stored storedSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	s := Snapshot{Lines: make([]Line, 0, len(stored.Lines)), NextID: stored.NextID}
	for _, sl := range stored.Lines {
		s.Lines = append(s.Lines, sl.line())
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
