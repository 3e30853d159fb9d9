package rig

import "fmt"

// Store is the ordered collection of rig lines plus the id counter.
//
// Insertion order is display order. Ids come from a monotonic counter that
// survives deletes and clears, so an id is never handed out twice.
//
// A Store is not safe for concurrent use; its owner (a session) serialises
// access.
type Store struct {
	lines  []Line
	nextID int
}

// NewStore returns an empty store whose first line will get id 1.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append adds an accepted placement to the end of the rig and returns the
// stored line with its newly assigned id.
func (s *Store) Append(p Placement) Line {
	l := Line{ID: s.nextID, Placement: p}
	s.nextID++
	s.lines = append(s.lines, l)
	return l
}

// Delete removes the line with the given id.
// It reports whether a line was removed; unknown ids are a no-op.
func (s *Store) Delete(id int) bool {
	for i, l := range s.lines {
		if l.ID == id {
			s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every line. The id counter is kept.
func (s *Store) Clear() {
	s.lines = nil
}

// ReplaceAll clears the rig and appends the placements in order, assigning
// fresh ids. It returns the new lines.
func (s *Store) ReplaceAll(placements []Placement) []Line {
	s.Clear()
	out := make([]Line, 0, len(placements))
	for _, p := range placements {
		out = append(out, s.Append(p))
	}
	return out
}

// Lines returns a copy of the rig lines in display order.
func (s *Store) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

// Line returns the line with the given id.
func (s *Store) Line(id int) (Line, bool) {
	for _, l := range s.lines {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// Len returns the number of lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// NextID returns the id the next appended line will receive.
func (s *Store) NextID() int {
	return s.nextID
}

// Snapshot captures the full store for persistence.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Lines:  s.Lines(),
		NextID: s.nextID,
	}
}

// Restore replaces the store's contents with a snapshot.
// The snapshot is validated first; on error the store is left unchanged.
func (s *Store) Restore(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("restoring rig: %w", err)
	}
	s.lines = append([]Line(nil), snap.Lines...)
	s.nextID = snap.NextID
	return nil
}
