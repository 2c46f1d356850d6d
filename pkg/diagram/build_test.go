package diagram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild_Counts(t *testing.T) {
	tests := []struct {
		mode      Mode
		wantNodes int
		wantEdges int
		wantKinds map[Kind]int
	}{
		{
			mode: Simple, wantNodes: 10, wantEdges: 11,
			wantKinds: map[Kind]int{KindUser: 1, KindAction: 5, KindService: 4},
		},
		{
			mode: Detailed, wantNodes: 19, wantEdges: 28,
			wantKinds: map[Kind]int{
				KindUser: 1, KindAction: 5, KindService: 4,
				KindFeature: 7, KindData: 1, KindProcess: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			d := Build(tt.mode)
			if d.Mode != tt.mode {
				t.Errorf("Mode = %q, want %q", d.Mode, tt.mode)
			}
			if len(d.Nodes) != tt.wantNodes {
				t.Errorf("len(Nodes) = %d, want %d", len(d.Nodes), tt.wantNodes)
			}
			if len(d.Edges) != tt.wantEdges {
				t.Errorf("len(Edges) = %d, want %d", len(d.Edges), tt.wantEdges)
			}
			if diff := cmp.Diff(tt.wantKinds, d.Counts()); diff != "" {
				t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_DetailedExtendsSimple(t *testing.T) {
	simple := Build(Simple)
	detailed := Build(Detailed)

	if diff := cmp.Diff(simple.NodeIDs(), detailed.NodeIDs()[:len(simple.Nodes)]); diff != "" {
		t.Errorf("detailed view should start with the simple nodes (-simple +detailed):\n%s", diff)
	}
	for i, e := range simple.Edges {
		if detailed.Edges[i].ID != e.ID {
			t.Errorf("detailed edge %d = %q, want base edge %q", i, detailed.Edges[i].ID, e.ID)
		}
	}
	if extra := len(detailed.Edges) - len(simple.Edges); extra != 17 {
		t.Errorf("detail-only edges = %d, want 17", extra)
	}
}

func TestBuild_ReferentialIntegrity(t *testing.T) {
	for _, m := range Modes {
		t.Run(string(m), func(t *testing.T) {
			d := Build(m)
			ids := make(map[string]bool)
			for _, n := range d.Nodes {
				ids[n.ID] = true
			}
			for _, e := range d.Edges {
				if !ids[e.Source] {
					t.Errorf("edge %q: source %q not in node set", e.ID, e.Source)
				}
				if !ids[e.Target] {
					t.Errorf("edge %q: target %q not in node set", e.ID, e.Target)
				}
			}
		})
	}
}

func TestBuild_UniqueIDs(t *testing.T) {
	for _, m := range Modes {
		t.Run(string(m), func(t *testing.T) {
			d := Build(m)
			seen := make(map[string]bool)
			for _, n := range d.Nodes {
				if seen[n.ID] {
					t.Errorf("duplicate node id %q", n.ID)
				}
				seen[n.ID] = true
			}
			seen = make(map[string]bool)
			for _, e := range d.Edges {
				if seen[e.ID] {
					t.Errorf("duplicate edge id %q", e.ID)
				}
				seen[e.ID] = true
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	for _, m := range Modes {
		t.Run(string(m), func(t *testing.T) {
			a, b := Build(m), Build(m)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("Build(%s) not deterministic (-first +second):\n%s", m, diff)
			}
		})
	}
}

func TestBuild_FreshSlices(t *testing.T) {
	a := Build(Simple)
	a.Nodes[0].Label = "changed"
	a.Edges = append(a.Edges[:0], Edge{ID: "x"})

	b := Build(Simple)
	if b.Nodes[0].Label != "User" {
		t.Errorf("mutating one result leaked into the next: label %q", b.Nodes[0].Label)
	}
	if b.Edges[0].ID != "user-submit" {
		t.Errorf("mutating one result leaked into the next: edge %q", b.Edges[0].ID)
	}
}

func TestBuild_SimpleHasNoDescriptiveText(t *testing.T) {
	d := Build(Simple)
	for _, n := range d.Nodes {
		if n.Description != "" {
			t.Errorf("node %q has description %q in simple view", n.ID, n.Description)
		}
	}
	for _, e := range d.Edges {
		if e.Label != "" {
			t.Errorf("edge %q has label %q in simple view", e.ID, e.Label)
		}
	}
}

func TestBuild_DetailedText(t *testing.T) {
	d := Build(Detailed)

	for _, id := range []string{"submit", "vision", "auth", "extracted-data", "story-generation"} {
		n, ok := d.Node(id)
		if !ok {
			t.Fatalf("node %q missing", id)
		}
		if n.Description == "" {
			t.Errorf("node %q has no description in detailed view", id)
		}
	}

	labels := map[string]string{
		"submit-vision":  "Upload Image",
		"vision-analyze": "Image Analysis Results",
		"analyze-gemini": "Send Analysis Data",
		"gemini-story":   "Generated Narrative",
		"data-gemini":    "Send Structured Data",
		"process-story":  "Generated Story",
	}
	for _, e := range d.Edges {
		if want, ok := labels[e.ID]; ok && e.Label != want {
			t.Errorf("edge %q label = %q, want %q", e.ID, e.Label, want)
		}
	}
}

func TestBuild_Positions(t *testing.T) {
	tests := []struct {
		mode Mode
		id   string
		want Position
	}{
		{Simple, "user", Position{50, 300}},
		{Detailed, "user", Position{50, 400}},
		{Simple, "gemini", Position{650, 325}},
		{Detailed, "gemini", Position{600, 500}},
		{Detailed, "logo-detection", Position{1400, 210}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.id, func(t *testing.T) {
			n, ok := Build(tt.mode).Node(tt.id)
			if !ok {
				t.Fatalf("node %q missing", tt.id)
			}
			if n.Position != tt.want {
				t.Errorf("Position = %+v, want %+v", n.Position, tt.want)
			}
		})
	}
}

func TestBuild_VisionFeatureEdgesUseBottomHandle(t *testing.T) {
	for _, e := range Build(Detailed).Edges {
		if e.Source != "vision" {
			continue
		}
		n, _ := Build(Detailed).Node(e.Target)
		if n.Kind != KindFeature {
			continue
		}
		if e.SourceHandle != "b" {
			t.Errorf("edge %q SourceHandle = %q, want b", e.ID, e.SourceHandle)
		}
		if e.Routing != RoutingSmoothStep {
			t.Errorf("edge %q Routing = %q, want smoothstep", e.ID, e.Routing)
		}
	}
}

func TestBuild_UnknownModeFallsBackToSimple(t *testing.T) {
	d := Build(Mode("bogus"))
	if d.Mode != Simple || len(d.Nodes) != 10 {
		t.Errorf("Build(bogus) = mode %q with %d nodes, want simple with 10", d.Mode, len(d.Nodes))
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Simple, false},
		{"simple", Simple, false},
		{"Detailed", Detailed, false},
		{" detailed ", Detailed, false},
		{"full", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeToggle(t *testing.T) {
	if Simple.Toggle() != Detailed || Detailed.Toggle() != Simple {
		t.Error("Toggle should alternate between simple and detailed")
	}
}

func TestDiagramClone(t *testing.T) {
	d := Build(Simple)
	c := d.Clone()
	c.Nodes[0].ID = "changed"
	if d.Nodes[0].ID == "changed" {
		t.Error("Clone shares node storage with the original")
	}
}
