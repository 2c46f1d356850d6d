package diagram

import (
	"testing"

	"github.com/matzehuels/archflow/pkg/errors"
)

func TestValidate_Generated(t *testing.T) {
	if err := ValidateAll(); err != nil {
		t.Fatalf("ValidateAll() = %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	base := func() Diagram {
		return Diagram{
			Mode:  Simple,
			Nodes: []Node{{ID: "a"}, {ID: "b"}},
			Edges: []Edge{{ID: "a-b", Source: "a", Target: "b"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Diagram)
		code   errors.Code
	}{
		{"valid", func(*Diagram) {}, ""},
		{"empty node id", func(d *Diagram) { d.Nodes = append(d.Nodes, Node{}) }, errors.ErrCodeInvalidNodeID},
		{"duplicate node", func(d *Diagram) { d.Nodes = append(d.Nodes, Node{ID: "a"}) }, errors.ErrCodeDuplicateNode},
		{"duplicate edge", func(d *Diagram) {
			d.Edges = append(d.Edges, Edge{ID: "a-b", Source: "b", Target: "a"})
		}, errors.ErrCodeDuplicateEdge},
		{"unknown source", func(d *Diagram) {
			d.Edges = append(d.Edges, Edge{ID: "x-b", Source: "x", Target: "b"})
		}, errors.ErrCodeUnknownNode},
		{"unknown target", func(d *Diagram) {
			d.Edges = append(d.Edges, Edge{ID: "a-x", Source: "a", Target: "x"})
		}, errors.ErrCodeUnknownNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(&d)
			err := Validate(d)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

// Dropping a detail node from a detailed diagram must be caught, since the
// edges that referenced it are no longer backed by the node set.
func TestValidate_DetectsDrift(t *testing.T) {
	d := Build(Detailed)
	for i, n := range d.Nodes {
		if n.ID == "extracted-data" {
			d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
			break
		}
	}
	if err := Validate(d); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Validate() = %v, want UNKNOWN_NODE", err)
	}
}
