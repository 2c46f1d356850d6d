package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/archflow/pkg/diagram"
)

func TestNodeRows(t *testing.T) {
	d := diagram.Build(diagram.Simple)
	rows := nodeRows(d)
	if len(rows) != len(d.Nodes) {
		t.Fatalf("got %d rows, want %d", len(rows), len(d.Nodes))
	}
	want := []string{"user", diagram.ResolveIcon(d.Nodes[0]).Glyph(), "User", "user", "50,300"}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
}

func TestEdgeRows(t *testing.T) {
	d := diagram.Build(diagram.Detailed)
	rows := edgeRows(d)
	if len(rows) != len(d.Edges) {
		t.Fatalf("got %d rows, want %d", len(rows), len(d.Edges))
	}
	for _, r := range rows {
		if r[0] == "vision-label" && r[1] != "vision:b" {
			t.Errorf("vision-label source = %q, want vision:b", r[1])
		}
	}
}

func TestEdgeStyle(t *testing.T) {
	tests := []struct {
		edge diagram.Edge
		want string
	}{
		{diagram.Edge{}, "—"},
		{diagram.Edge{Routing: diagram.RoutingDefault}, "—"},
		{diagram.Edge{Animated: true}, "animated"},
		{diagram.Edge{Animated: true, Routing: diagram.RoutingSmoothStep, Marker: diagram.MarkerArrowClosed, Stroke: "#3b82f6"},
			"animated smoothstep arrowclosed #3b82f6"},
	}
	for _, tt := range tests {
		if got := edgeStyle(tt.edge); got != tt.want {
			t.Errorf("edgeStyle(%+v) = %q, want %q", tt.edge, got, tt.want)
		}
	}
}

func TestKindSummary(t *testing.T) {
	got := kindSummary(diagram.Build(diagram.Simple))
	want := "1 user · 5 action · 4 service"
	if got != want {
		t.Errorf("kindSummary() = %q, want %q", got, want)
	}
}

func TestTablesRender(t *testing.T) {
	d := diagram.Build(diagram.Simple)
	nodes := nodeTable(d).Render()
	for _, id := range d.NodeIDs() {
		if !strings.Contains(nodes, id) {
			t.Errorf("node table missing %q", id)
		}
	}
	edges := edgeTable(d).Render()
	if !strings.Contains(edges, "submit-vision") {
		t.Error("edge table missing submit-vision")
	}
}
