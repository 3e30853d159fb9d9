package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/kvstore"
	"github.com/aemckenna/rig-calc/internal/rig"
)

// Logger defines the logging interface used by the session.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// persistTimeout bounds a single snapshot write.
const persistTimeout = 5 * time.Second

// Config holds session settings.
type Config struct {
	// StorageKey is the key-value entry holding the rig snapshot.
	// Empty selects rig.StorageKey.
	StorageKey string

	// SupplyVoltage is the mains voltage used for circuit amperage.
	// Values <= 0 select rig.DefaultSupplyVoltage.
	SupplyVoltage float64
}

// Session serialises access to one rig and persists it after every change.
//
// Thread Safety: all methods are safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	store     *rig.Store
	validator *rig.Validator
	kv        kvstore.Store
	key       string
	voltage   float64
	logger    Logger
	now       func() time.Time

	// notifyMu orders fan-out so published state follows mutation order.
	// It is acquired while mu is still held and guards the fields below.
	notifyMu    sync.Mutex
	publisher   Publisher
	recorder    Recorder
	notifier    Notifier
	journal     Journal
	alertTopics map[string]struct{}
}

// New creates a session with an empty rig.
// kv may be nil, in which case nothing is persisted.
func New(validator *rig.Validator, kv kvstore.Store, cfg Config, logger Logger) *Session {
	if logger == nil {
		logger = noopLogger{}
	}
	key := cfg.StorageKey
	if key == "" {
		key = rig.StorageKey
	}
	voltage := cfg.SupplyVoltage
	if voltage <= 0 {
		voltage = rig.DefaultSupplyVoltage
	}
	return &Session{
		store:       rig.NewStore(),
		validator:   validator,
		kv:          kv,
		key:         key,
		voltage:     voltage,
		logger:      logger,
		now:         time.Now,
		alertTopics: make(map[string]struct{}),
	}
}

// Load restores the rig from the key-value store and returns the number of
// lines restored. A missing entry leaves the rig empty. A read failure or a
// malformed snapshot is logged and also leaves the rig empty.
//
// Load is meant to run once, before the session is shared.
func (s *Session) Load(ctx context.Context) int {
	if s.kv == nil {
		return 0
	}

	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		s.logger.Info("no stored rig, starting empty", "key", s.key)
		return 0
	case err != nil:
		s.logger.Warn("reading stored rig failed, starting empty", "key", s.key, "error", err)
		return 0
	}

	snap, err := rig.DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("discarding malformed rig snapshot", "key", s.key, "error", err)
		return 0
	}

	var restored int
	err = s.mutate(ctx, ReasonLoaded, false, func(st *rig.Store) (int, error) {
		if err := st.Restore(snap); err != nil {
			return 0, err
		}
		restored = st.Len()
		return 0, nil
	})
	if err != nil {
		s.logger.Warn("restoring rig failed, starting empty", "key", s.key, "error", err)
		return 0
	}

	s.logger.Info("rig restored", "lines", restored, "next_id", snap.NextID)
	return restored
}

// AddLine validates a placement and appends it to the rig.
// Rejections (see rig.IsRejection) and unknown fixtures or modes leave the
// rig unchanged.
func (s *Session) AddLine(ctx context.Context, req rig.PlacementRequest) (rig.Line, error) {
	p, err := s.validator.Validate(req)
	if err != nil {
		s.logger.Debug("placement rejected",
			"fixture_id", req.FixtureID, "mode", req.ModeName, "error", err)
		return rig.Line{}, err
	}

	var line rig.Line
	if err := s.mutate(ctx, ReasonLineAdded, true, func(st *rig.Store) (int, error) {
		line = st.Append(p)
		return line.ID, nil
	}); err != nil {
		return rig.Line{}, err
	}

	s.logger.Info("line added",
		"id", line.ID,
		"fixture_id", line.FixtureID,
		"universe", line.Universe,
		"start", line.StartAddress,
		"end", line.EndAddress,
	)
	return line, nil
}

// RemoveLine deletes a line by id. It reports whether a line was removed;
// an unknown id is a no-op and triggers no persistence.
func (s *Session) RemoveLine(ctx context.Context, id int) bool {
	err := s.mutate(ctx, ReasonLineRemoved, true, func(st *rig.Store) (int, error) {
		if !st.Delete(id) {
			return 0, ErrLineNotFound
		}
		return id, nil
	})
	if err != nil {
		return false
	}
	s.logger.Info("line removed", "id", id)
	return true
}

// Clear removes every line. The id counter is kept.
func (s *Session) Clear(ctx context.Context) {
	_ = s.mutate(ctx, ReasonCleared, true, func(st *rig.Store) (int, error) { //nolint:errcheck // fn never fails
		st.Clear()
		return 0, nil
	})
	s.logger.Info("rig cleared")
}

// LoadDemo replaces the rig with the demo lines, which receive fresh ids.
// The rig is unchanged if the catalogue lacks a demo fixture.
func (s *Session) LoadDemo(ctx context.Context) ([]rig.Line, error) {
	placements, err := rig.DemoPlacements(s.validator)
	if err != nil {
		return nil, fmt.Errorf("loading demo rig: %w", err)
	}

	var lines []rig.Line
	if err := s.mutate(ctx, ReasonDemoLoaded, true, func(st *rig.Store) (int, error) {
		lines = st.ReplaceAll(placements)
		return 0, nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("demo rig loaded", "lines", len(lines))
	return lines, nil
}

// mutate applies fn to the store under the write lock, persists the result
// and fans out notifications in mutation order. fn returns the id of the
// line it touched, or 0. If fn fails nothing else happens.
func (s *Session) mutate(ctx context.Context, reason string, persist bool, fn func(st *rig.Store) (int, error)) error {
	s.mu.Lock()
	lineID, err := fn(s.store)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	snap := s.store.Snapshot()
	if persist {
		s.persist(ctx, snap)
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.fanOut(ctx, change{reason: reason, lineID: lineID}, snap)
	return nil
}

// persist writes the snapshot. Failures are logged; the in-memory rig
// stays authoritative.
func (s *Session) persist(ctx context.Context, snap rig.Snapshot) {
	if s.kv == nil {
		return
	}

	data, err := rig.EncodeSnapshot(snap)
	if err != nil {
		s.logger.Error("encoding rig snapshot failed", "error", err)
		return
	}

	putCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.kv.Put(putCtx, s.key, data); err != nil {
		s.logger.Error("persisting rig failed", "key", s.key, "error", err)
	}
}

// Catalog returns the fixture catalogue used for placements.
func (s *Session) Catalog() *catalog.Catalog {
	return s.validator.Catalog()
}

// Voltage returns the supply voltage used for circuit loads.
func (s *Session) Voltage() float64 {
	return s.voltage
}

// Lines returns a copy of the rig lines in display order.
func (s *Session) Lines() []rig.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Lines()
}

// Line returns one line by id.
func (s *Session) Line(id int) (rig.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.store.Line(id)
	if !ok {
		return rig.Line{}, ErrLineNotFound
	}
	return l, nil
}

// Snapshot returns the lines and id counter.
func (s *Session) Snapshot() rig.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Snapshot()
}

// Usages returns per-universe channel usage.
func (s *Session) Usages() []rig.UniverseUsage {
	return rig.UniverseUsages(s.Lines())
}

// Grid builds the channel map of one universe.
func (s *Session) Grid(universe int) (*rig.Grid, error) {
	return rig.BuildGrid(s.Lines(), universe)
}

// Power returns per-circuit loads at the session voltage.
func (s *Session) Power() ([]rig.CircuitLoad, error) {
	return rig.PowerByCircuit(s.Lines(), s.voltage)
}

// NextAddress suggests the next free start address in a universe.
func (s *Session) NextAddress(universe int) int {
	return rig.NextAddress(s.Lines(), universe)
}

// Summary aggregates the whole rig.
func (s *Session) Summary() (Summary, error) {
	return Summarize(s.Lines(), s.voltage, s.now())
}
