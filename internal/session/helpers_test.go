package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/kvstore"
	"github.com/aemckenna/rig-calc/internal/rig"
)

// fakePublisher keeps retained messages the way a broker would.
type fakePublisher struct {
	mu        sync.Mutex
	retained  map[string][]byte
	publishes int
	failClear bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{retained: make(map[string][]byte)}
}

func (p *fakePublisher) PublishRetained(topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishes++
	p.retained[topic] = append([]byte(nil), payload...)
	return nil
}

func (p *fakePublisher) ClearRetained(topic string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failClear {
		return errors.New("broker unavailable")
	}
	delete(p.retained, topic)
	return nil
}

func (p *fakePublisher) get(topic string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.retained[topic]
	return v, ok
}

type circuitPoint struct {
	circuit, band string
	watts, amps   float64
}

type universePoint struct {
	universe, channels int
	percent            float64
}

type fakeRecorder struct {
	mu        sync.Mutex
	circuits  []circuitPoint
	universes []universePoint
}

func (r *fakeRecorder) WriteCircuitLoad(circuit, band string, watts, amps float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.circuits = append(r.circuits, circuitPoint{circuit, band, watts, amps})
}

func (r *fakeRecorder) WriteUniverseUsage(universe, channels int, percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.universes = append(r.universes, universePoint{universe, channels, percent})
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (n *fakeNotifier) Broadcast(channel string, payload any) {
	if channel != ChannelRigChanged {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, payload.(ChangeEvent))
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []JournalEntry
	fail    bool
}

func (j *fakeJournal) Record(_ context.Context, e JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail {
		return errors.New("journal unavailable")
	}
	j.entries = append(j.entries, e)
	return nil
}

// failingKV fails every operation.
type failingKV struct{}

var errKVDown = errors.New("disk full")

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errKVDown }
func (failingKV) Put(context.Context, string, []byte) error   { return errKVDown }
func (failingKV) Delete(context.Context, string) error        { return errKVDown }

func newTestSession(t *testing.T, kv kvstore.Store) *Session {
	t.Helper()
	return New(rig.NewValidator(catalog.Default(), 120), kv, Config{SupplyVoltage: 120}, nil)
}

func spotRequest(universe, start int) rig.PlacementRequest {
	return rig.PlacementRequest{
		FixtureID:    "chauvet_r2_spot",
		ModeName:     "Basic",
		Quantity:     4,
		Universe:     universe,
		StartAddress: start,
		Circuit:      "Stage Left",
	}
}

// storedSnapshot decodes the snapshot persisted under the default key.
func storedSnapshot(t *testing.T, kv kvstore.Store) rig.Snapshot {
	t.Helper()
	data, err := kv.Get(context.Background(), rig.StorageKey)
	if err != nil {
		t.Fatalf("reading stored rig: %v", err)
	}
	snap, err := rig.DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decoding stored rig: %v", err)
	}
	return snap
}
