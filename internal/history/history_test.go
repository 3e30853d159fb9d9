package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/rig"
	"github.com/aemckenna/rig-calc/internal/session"
)

var base = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, j *Journal, entries ...Entry) {
	t.Helper()
	for i := range entries {
		if err := j.Create(context.Background(), &entries[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
}

func ids(entries []Entry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestCreate_FillsIDAndTime(t *testing.T) {
	j := New(10)
	j.now = func() time.Time { return base.In(time.FixedZone("CEST", 2*60*60)) }

	e := Entry{Reason: session.ReasonCleared}
	if err := j.Create(context.Background(), &e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(e.ID) != len("chg-")+8 {
		t.Errorf("ID = %q, want chg- prefix and 8 characters", e.ID)
	}
	if !e.CreatedAt.Equal(base) || e.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", e.CreatedAt, base)
	}
}

func TestCreate_CancelledContext(t *testing.T) {
	j := New(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := j.Create(ctx, &Entry{Reason: session.ReasonCleared}); !errors.Is(err, context.Canceled) {
		t.Errorf("Create() error = %v, want context.Canceled", err)
	}
	if j.Len() != 0 {
		t.Errorf("Len() = %d, want 0", j.Len())
	}
}

func TestCreate_EvictsOldest(t *testing.T) {
	j := New(3)
	seed(t, j,
		Entry{ID: "a", CreatedAt: base},
		Entry{ID: "b", CreatedAt: base},
		Entry{ID: "c", CreatedAt: base},
		Entry{ID: "d", CreatedAt: base},
	)

	if j.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", j.Len())
	}
	got, err := j.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"d", "c", "b"}, ids(got.Entries)); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
}

func TestNew_MinimumSize(t *testing.T) {
	j := New(0)
	seed(t, j, Entry{ID: "a"}, Entry{ID: "b"})
	if j.Len() != 1 {
		t.Errorf("Len() = %d, want 1", j.Len())
	}
}

func TestList_Filters(t *testing.T) {
	j := New(100)
	seed(t, j,
		Entry{ID: "a", Reason: session.ReasonLineAdded, LineID: 1, CreatedAt: base},
		Entry{ID: "b", Reason: session.ReasonLineAdded, LineID: 2, CreatedAt: base.Add(time.Second)},
		Entry{ID: "c", Reason: session.ReasonLineRemoved, LineID: 1, CreatedAt: base.Add(2 * time.Second)},
		Entry{ID: "d", Reason: session.ReasonCleared, CreatedAt: base.Add(3 * time.Second)},
	)

	tests := []struct {
		name       string
		filter     Filter
		wantIDs    []string
		wantTotal  int
		wantLimit  int
		wantOffset int
	}{
		{"all", Filter{}, []string{"d", "c", "b", "a"}, 4, DefaultLimit, 0},
		{"reason", Filter{Reason: session.ReasonLineAdded}, []string{"b", "a"}, 2, DefaultLimit, 0},
		{"line", Filter{LineID: 1}, []string{"c", "a"}, 2, DefaultLimit, 0},
		{"reason and line", Filter{Reason: session.ReasonLineRemoved, LineID: 1}, []string{"c"}, 1, DefaultLimit, 0},
		{"page", Filter{Limit: 2, Offset: 1}, []string{"c", "b"}, 4, 2, 1},
		{"past the end", Filter{Offset: 10}, []string{}, 4, DefaultLimit, 10},
		{"limit clamped", Filter{Limit: 1000, Offset: -3}, []string{"d", "c", "b", "a"}, 4, MaxLimit, 0},
		{"no match", Filter{Reason: "nope"}, []string{}, 0, DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantIDs, ids(got.Entries)); diff != "" {
				t.Errorf("ids (-want +got):\n%s", diff)
			}
			if got.Total != tt.wantTotal || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("total/limit/offset = %d/%d/%d, want %d/%d/%d",
					got.Total, got.Limit, got.Offset, tt.wantTotal, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestRecord_FromSession(t *testing.T) {
	ctx := context.Background()
	j := New(10)
	s := session.New(rig.NewValidator(catalog.Default(), 120), nil, session.Config{SupplyVoltage: 120}, nil)
	s.SetJournal(j)

	line, err := s.AddLine(ctx, rig.PlacementRequest{
		FixtureID: "chauvet_r2_spot", ModeName: "Basic",
		Quantity: 4, Universe: 1, StartAddress: 1, Circuit: "Stage Left",
	})
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if _, err := s.LoadDemo(ctx); err != nil {
		t.Fatalf("LoadDemo() error = %v", err)
	}
	s.Clear(ctx)

	got, err := j.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []Entry{
		{Reason: session.ReasonCleared},
		{Reason: session.ReasonDemoLoaded, Lines: 5, Fixtures: 25, Channels: 633, Watts: 6475},
		{Reason: session.ReasonLineAdded, LineID: line.ID, Lines: 1, Fixtures: 4, Channels: 72, Watts: 960},
	}
	opts := cmpopts.IgnoreFields(Entry{}, "ID", "CreatedAt")
	if diff := cmp.Diff(want, got.Entries, opts); diff != "" {
		t.Errorf("journal (-want +got):\n%s", diff)
	}
}
