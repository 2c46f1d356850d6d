package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
)

func TestNew(t *testing.T) {
	p := New(diagram.Simple)
	s := p.Snapshot()
	if s.Mode != diagram.Simple {
		t.Errorf("Mode = %q, want simple", s.Mode)
	}
	if diff := cmp.Diff(diagram.Build(diagram.Simple), s.Diagram()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	if s.Ready {
		t.Error("new presenter should not be ready")
	}
}

func TestSetMode_ReplacesWholesale(t *testing.T) {
	p := New(diagram.Simple)

	if !p.SetMode(diagram.Detailed) {
		t.Fatal("SetMode(detailed) reported no change")
	}
	if diff := cmp.Diff(diagram.Build(diagram.Detailed), p.Snapshot().Diagram()); diff != "" {
		t.Errorf("detailed state mismatch (-want +got):\n%s", diff)
	}
}

func TestSetMode_RoundTripDiscardsUserEdges(t *testing.T) {
	p := New(diagram.Simple)
	want := p.Snapshot()

	p.SetMode(diagram.Detailed)
	if _, added, err := p.Connect(Connection{Source: "face-detection", Target: "story"}); err != nil || !added {
		t.Fatalf("Connect() = added %v, err %v", added, err)
	}
	if got := p.Snapshot(); got.UserEdges != 1 || len(got.Edges) != 29 {
		t.Fatalf("after connect: %d edges (%d user), want 29 (1 user)", len(got.Edges), got.UserEdges)
	}

	p.SetMode(diagram.Simple)
	if diff := cmp.Diff(want, p.Snapshot()); diff != "" {
		t.Errorf("simple → detailed → simple did not restore state (-want +got):\n%s", diff)
	}
}

func TestSetMode_SameModeKeepsUserEdges(t *testing.T) {
	p := New(diagram.Simple)
	if _, _, err := p.Connect(Connection{Source: "story", Target: "database"}); err != nil {
		t.Fatal(err)
	}
	if p.SetMode(diagram.Simple) {
		t.Error("SetMode(current) reported a change")
	}
	if got := p.Snapshot().UserEdges; got != 1 {
		t.Errorf("UserEdges = %d, want 1", got)
	}
}

func TestToggle(t *testing.T) {
	p := New(diagram.Simple)
	if got := p.Toggle(); got != diagram.Detailed {
		t.Errorf("Toggle() = %q, want detailed", got)
	}
	if got := p.Toggle(); got != diagram.Simple {
		t.Errorf("Toggle() = %q, want simple", got)
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name      string
		mode      diagram.Mode
		conn      Connection
		wantAdded bool
		wantCode  errors.Code
	}{
		{
			name:      "new edge",
			mode:      diagram.Simple,
			conn:      Connection{Source: "story", Target: "database"},
			wantAdded: true,
		},
		{
			name:      "edge that already exists in the diagram",
			mode:      diagram.Simple,
			conn:      Connection{Source: "user", Target: "submit"},
			wantAdded: false,
		},
		{
			name:     "detail node in simple view",
			mode:     diagram.Simple,
			conn:     Connection{Source: "vision", Target: "label-detection"},
			wantCode: errors.ErrCodeUnknownNode,
		},
		{
			name:     "empty source",
			mode:     diagram.Simple,
			conn:     Connection{Target: "user"},
			wantCode: errors.ErrCodeInvalidNodeID,
		},
		{
			name:     "bad handle",
			mode:     diagram.Simple,
			conn:     Connection{Source: "user", Target: "login", SourceHandle: "a b"},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:      "handle distinguishes edges",
			mode:      diagram.Detailed,
			conn:      Connection{Source: "vision", Target: "analyze", SourceHandle: "b"},
			wantAdded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.mode)
			before := len(p.Snapshot().Edges)

			e, added, err := p.Connect(tt.conn)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Connect() error = %v, want code %s", err, tt.wantCode)
				}
				if got := len(p.Snapshot().Edges); got != before {
					t.Errorf("failed Connect changed edge count: %d → %d", before, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			if added != tt.wantAdded {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if e.Source != tt.conn.Source || e.Target != tt.conn.Target {
				t.Errorf("edge = %s→%s, want %s→%s", e.Source, e.Target, tt.conn.Source, tt.conn.Target)
			}
			want := before
			if tt.wantAdded {
				want++
			}
			if got := len(p.Snapshot().Edges); got != want {
				t.Errorf("edge count = %d, want %d", got, want)
			}
		})
	}
}

func TestConnect_Idempotent(t *testing.T) {
	p := New(diagram.Simple)
	c := Connection{Source: "login", Target: "database"}

	first, added, err := p.Connect(c)
	if err != nil || !added {
		t.Fatalf("first Connect() = %v, %v", added, err)
	}
	if first.ID != "reactflow__edge-login-database" {
		t.Errorf("edge ID = %q, want reactflow__edge-login-database", first.ID)
	}
	second, added, err := p.Connect(c)
	if err != nil || added {
		t.Fatalf("second Connect() = %v, %v", added, err)
	}
	if second != first {
		t.Errorf("second Connect returned %+v, want %+v", second, first)
	}
	if got := p.Snapshot().UserEdges; got != 1 {
		t.Errorf("UserEdges = %d, want 1", got)
	}
}

func TestConnect_EdgeShape(t *testing.T) {
	p := New(diagram.Detailed)
	e, added, err := p.Connect(Connection{Source: "vision", SourceHandle: "b", Target: "story-generation"})
	if err != nil || !added {
		t.Fatalf("Connect() = %v, %v", added, err)
	}
	want := diagram.Edge{
		ID:           "reactflow__edge-visionb-story-generation",
		Source:       "vision",
		Target:       "story-generation",
		SourceHandle: "b",
		Routing:      diagram.RoutingDefault,
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("drawn edge mismatch (-want +got):\n%s", diff)
	}
}

func TestConnect_DoesNotFeedBuilder(t *testing.T) {
	p := New(diagram.Simple)
	if _, _, err := p.Connect(Connection{Source: "story", Target: "auth"}); err != nil {
		t.Fatal(err)
	}
	if got := len(diagram.Build(diagram.Simple).Edges); got != 11 {
		t.Errorf("builder edge count = %d after a user connect, want 11", got)
	}
}

func TestReady(t *testing.T) {
	p := New(diagram.Detailed)
	if p.Ready() {
		t.Fatal("Ready() before MarkReady")
	}
	p.MarkReady()
	if !p.Ready() || !p.Snapshot().Ready {
		t.Error("Ready() after MarkReady = false")
	}
	p.SetMode(diagram.Simple)
	if !p.Ready() {
		t.Error("mode change should not reset readiness")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	p := New(diagram.Simple)
	s := p.Snapshot()
	s.Nodes[0].Label = "changed"
	s.Edges = s.Edges[:0]

	again := p.Snapshot()
	if again.Nodes[0].Label != "User" || len(again.Edges) != 11 {
		t.Error("Snapshot shares storage with the presenter")
	}
}
