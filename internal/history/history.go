// Package history keeps a bounded, in-memory journal of rig changes.
//
// Every add, remove, clear and demo load becomes one Entry carrying the rig
// totals after the change. The journal lives for the process only; the rig
// itself is persisted separately by the session.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aemckenna/rig-calc/internal/session"
)

// Page size limits for List.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Entry is one recorded rig change.
type Entry struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	LineID    int       `json:"line_id,omitempty"`
	Lines     int       `json:"lines"`
	Fixtures  int       `json:"fixtures"`
	Channels  int       `json:"channels"`
	Watts     float64   `json:"watts"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter controls which entries List returns.
type Filter struct {
	Reason string // optional: one of the session.Reason values
	LineID int    // optional: changes to one line
	Limit  int    // default 50, max 200
	Offset int
}

// ListResult is one page of entries, newest first.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// Journal is a ring of the most recent entries.
//
// Thread Safety: all methods are safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry // oldest first
	size    int
	now     func() time.Time
}

// New creates a journal that keeps at most size entries.
func New(size int) *Journal {
	if size < 1 {
		size = 1
	}
	return &Journal{size: size, now: time.Now}
}

// Record implements session.Journal.
func (j *Journal) Record(ctx context.Context, je session.JournalEntry) error {
	return j.Create(ctx, &Entry{
		Reason:    je.Reason,
		LineID:    je.LineID,
		Lines:     je.Lines,
		Fixtures:  je.Fixtures,
		Channels:  je.Channels,
		Watts:     je.Watts,
		CreatedAt: je.At,
	})
}

// Create appends an entry, evicting the oldest when full. ID and CreatedAt
// are filled in when empty.
func (j *Journal) Create(ctx context.Context, e *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = "chg-" + uuid.NewString()[:8]
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == j.size {
		copy(j.entries, j.entries[1:])
		j.entries = j.entries[:j.size-1]
	}
	j.entries = append(j.entries, *e)
	return nil
}

// Len returns the number of entries held.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// List returns entries matching the filter, newest first.
func (j *Journal) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	page := []Entry{}
	total := 0
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		if filter.Reason != "" && e.Reason != filter.Reason {
			continue
		}
		if filter.LineID > 0 && e.LineID != filter.LineID {
			continue
		}
		if total >= filter.Offset && len(page) < filter.Limit {
			page = append(page, e)
		}
		total++
	}

	return &ListResult{
		Entries: page,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}
