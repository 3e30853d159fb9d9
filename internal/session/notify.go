package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aemckenna/rig-calc/internal/infrastructure/mqtt"
	"github.com/aemckenna/rig-calc/internal/rig"
)

// Publisher is the MQTT surface the session needs.
type Publisher interface {
	// PublishRetained sends a retained message at the configured QoS.
	PublishRetained(topic string, payload []byte) error

	// ClearRetained removes a retained message from the broker.
	ClearRetained(topic string) error
}

// Recorder is the telemetry surface the session needs.
type Recorder interface {
	WriteCircuitLoad(circuit, band string, watts, amps float64)
	WriteUniverseUsage(universe, channels int, percent float64)
}

// Notifier broadcasts events to live clients.
type Notifier interface {
	// Broadcast sends an event to all clients subscribed to the given channel.
	Broadcast(channel string, payload any)
}

// Journal keeps a durable history of rig changes.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// JournalEntry describes one applied change and the rig totals after it.
// LineID is 0 for changes that are not about a single line.
type JournalEntry struct {
	Reason   string
	LineID   int
	Lines    int
	Fixtures int
	Channels int
	Watts    float64
	At       time.Time
}

// journalTimeout bounds a single journal write.
const journalTimeout = 5 * time.Second

// ChannelRigChanged is the WebSocket channel for rig change events.
const ChannelRigChanged = "rig.changed"

// Change reasons carried by ChangeEvent.
const (
	ReasonLoaded      = "loaded"
	ReasonLineAdded   = "line_added"
	ReasonLineRemoved = "line_removed"
	ReasonCleared     = "cleared"
	ReasonDemoLoaded  = "demo_loaded"
)

// ChangeEvent is broadcast on ChannelRigChanged after every mutation.
type ChangeEvent struct {
	Reason string `json:"reason"`
	Lines  int    `json:"lines"`
	NextID int    `json:"next_id"`
}

// UniverseAlert is the retained payload for a universe over capacity.
type UniverseAlert struct {
	Universe int `json:"universe"`
	Used     int `json:"used"`
	Capacity int `json:"capacity"`
}

// CircuitAlert is the retained payload for a circuit outside the normal band.
type CircuitAlert struct {
	Circuit     string   `json:"circuit"`
	Band        rig.Band `json:"band"`
	Description string   `json:"description"`
	Watts       float64  `json:"watts"`
	Amps        float64  `json:"amps"`
}

// SetPublisher sets the MQTT publisher. nil disables publishing.
func (s *Session) SetPublisher(p Publisher) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.publisher = p
}

// SetRecorder sets the telemetry recorder. nil disables recording.
func (s *Session) SetRecorder(r Recorder) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.recorder = r
}

// SetJournal sets the change journal. nil disables journaling.
// Restoring a stored rig is not journaled.
func (s *Session) SetJournal(j Journal) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.journal = j
}

// SetNotifier sets the live-client notifier. nil disables broadcasts.
func (s *Session) SetNotifier(n Notifier) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.notifier = n
}

// change identifies a mutation for fan-out.
type change struct {
	reason string
	lineID int
}

// fanOut runs with notifyMu held.
func (s *Session) fanOut(ctx context.Context, c change, snap rig.Snapshot) {
	if s.publisher == nil && s.recorder == nil && s.notifier == nil && s.journal == nil {
		return
	}

	summary, err := Summarize(snap.Lines, s.voltage, s.now())
	if err != nil {
		s.logger.Error("summarising rig failed", "error", err)
		return
	}

	if s.publisher != nil {
		s.publishSummary(summary)
		s.publishAlerts(summary)
	}
	if s.recorder != nil {
		s.record(summary)
	}
	if s.journal != nil && c.reason != ReasonLoaded {
		s.writeJournal(ctx, c, summary)
	}
	if s.notifier != nil {
		s.notifier.Broadcast(ChannelRigChanged, ChangeEvent{
			Reason: c.reason,
			Lines:  len(snap.Lines),
			NextID: snap.NextID,
		})
	}
}

func (s *Session) publishSummary(summary Summary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		s.logger.Error("encoding rig summary failed", "error", err)
		return
	}
	topic := mqtt.Topics{}.RigSummary()
	if err := s.publisher.PublishRetained(topic, payload); err != nil {
		s.logger.Warn("publishing rig summary failed", "topic", topic, "error", err)
	}
}

// publishAlerts publishes one retained alert per over-capacity universe and
// loaded circuit, and clears alerts that no longer apply.
func (s *Session) publishAlerts(summary Summary) {
	topics := mqtt.Topics{}
	current := make(map[string][]byte)

	for _, u := range summary.OverUniverses() {
		payload, err := json.Marshal(UniverseAlert{Universe: u.Universe, Used: u.Used, Capacity: rig.UniverseSize})
		if err != nil {
			s.logger.Error("encoding universe alert failed", "universe", u.Universe, "error", err)
			continue
		}
		current[topics.UniverseAlert(u.Universe)] = payload
	}
	for _, c := range summary.LoadedCircuits() {
		payload, err := json.Marshal(CircuitAlert{
			Circuit:     c.Circuit,
			Band:        c.Band,
			Description: c.Band.Description(),
			Watts:       c.Watts,
			Amps:        c.DisplayAmps,
		})
		if err != nil {
			s.logger.Error("encoding circuit alert failed", "circuit", c.Circuit, "error", err)
			continue
		}
		current[topics.CircuitAlert(c.Circuit)] = payload
	}

	next := make(map[string]struct{}, len(current))
	for topic, payload := range current {
		next[topic] = struct{}{}
		if err := s.publisher.PublishRetained(topic, payload); err != nil {
			s.logger.Warn("publishing alert failed", "topic", topic, "error", err)
		}
	}
	for topic := range s.alertTopics {
		if _, still := current[topic]; still {
			continue
		}
		if err := s.publisher.ClearRetained(topic); err != nil {
			s.logger.Warn("clearing alert failed", "topic", topic, "error", err)
			next[topic] = struct{}{}
		}
	}
	s.alertTopics = next
}

func (s *Session) record(summary Summary) {
	for _, c := range summary.Circuits {
		s.recorder.WriteCircuitLoad(c.Circuit, string(c.Band), c.Watts, c.Amps)
	}
	for _, u := range summary.Universes {
		s.recorder.WriteUniverseUsage(u.Universe, u.Used, u.Percent*100)
	}
}

// writeJournal records the change. Failures are logged; the rig change
// itself has already been applied.
func (s *Session) writeJournal(ctx context.Context, c change, summary Summary) {
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	err := s.journal.Record(jctx, JournalEntry{
		Reason:   c.reason,
		LineID:   c.lineID,
		Lines:    summary.Lines,
		Fixtures: summary.Fixtures,
		Channels: summary.TotalChannels,
		Watts:    summary.TotalWatts,
		At:       summary.UpdatedAt,
	})
	if err != nil {
		s.logger.Error("journaling rig change failed", "reason", c.reason, "error", err)
	}
}
