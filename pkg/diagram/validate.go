package diagram

import (
	"github.com/matzehuels/archflow/pkg/errors"
)

// Validate checks the consistency rules every generated or edited diagram
// must satisfy:
//   - node IDs are non-empty and unique
//   - edge IDs are unique
//   - every edge's source and target names a node in d
//
// The first violation is returned as a coded *errors.Error.
func Validate(d Diagram) error {
	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidNodeID, "%s view: node with empty id", d.Mode)
		}
		if nodes[n.ID] {
			return errors.New(errors.ErrCodeDuplicateNode, "%s view: duplicate node id %q", d.Mode, n.ID)
		}
		nodes[n.ID] = true
	}

	edges := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if edges[e.ID] {
			return errors.New(errors.ErrCodeDuplicateEdge, "%s view: duplicate edge id %q", d.Mode, e.ID)
		}
		edges[e.ID] = true
		if !nodes[e.Source] {
			return errors.New(errors.ErrCodeUnknownNode, "%s view: edge %q has unknown source %q", d.Mode, e.ID, e.Source)
		}
		if !nodes[e.Target] {
			return errors.New(errors.ErrCodeUnknownNode, "%s view: edge %q has unknown target %q", d.Mode, e.ID, e.Target)
		}
	}
	return nil
}

// ValidateAll builds and validates every mode.
func ValidateAll() error {
	for _, m := range Modes {
		if err := Validate(Build(m)); err != nil {
			return err
		}
	}
	return nil
}
