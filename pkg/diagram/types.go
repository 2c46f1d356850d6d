package diagram

import (
	"slices"
	"strings"

	"github.com/matzehuels/archflow/pkg/errors"
)

// Mode selects one of the two fixed diagram granularities.
type Mode string

const (
	// Simple is the overview: base nodes only, no descriptive text.
	Simple Mode = "simple"
	// Detailed expands the vision service into its features and the story
	// generation chain, and shows descriptions and edge labels.
	Detailed Mode = "detailed"
)

// DefaultMode is the mode the shipped entry points start in.
const DefaultMode = Simple

// Modes lists every view mode in display order.
var Modes = []Mode{Simple, Detailed}

// ParseMode converts a user-supplied mode name. Matching is
// case-insensitive and the empty string selects [DefaultMode].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case string(Simple):
		return Simple, nil
	case string(Detailed):
		return Detailed, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid view mode %q (must be 'simple' or 'detailed')", s)
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Detailed {
		return Simple
	}
	return Detailed
}

// Kind is the role a node plays in the depicted architecture.
type Kind string

const (
	KindUser    Kind = "user"
	KindAction  Kind = "action"
	KindService Kind = "service"
	KindFeature Kind = "feature"
	KindData    Kind = "data"
	KindProcess Kind = "process"
)

// Kinds lists every node kind.
var Kinds = []Kind{KindUser, KindAction, KindService, KindFeature, KindData, KindProcess}

// RendererType returns the node type name the browser graph library
// registers a component under (e.g. "serviceNode").
func (k Kind) RendererType() string { return string(k) + "Node" }

// Service identifies the external service a service node stands for.
// It selects the node's icon and palette.
type Service string

const (
	ServiceNone     Service = ""
	ServiceVision   Service = "vision"
	ServiceGemini   Service = "gemini"
	ServiceDatabase Service = "database"
	ServiceAuth     Service = "auth"
)

// Position is a fixed canvas coordinate in pixels, origin top-left.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a labeled element of the diagram.
type Node struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Label       string   `json:"label"`
	Icon        Icon     `json:"icon,omitempty"`
	Service     Service  `json:"service,omitempty"`
	Description string   `json:"description,omitempty"`
	Position    Position `json:"position"`
}

// Marker is the decoration drawn at an edge's target end.
type Marker string

const (
	MarkerNone        Marker = ""
	MarkerArrowClosed Marker = "arrowclosed"
)

// Routing is a hint for how an edge path is drawn.
type Routing string

const (
	RoutingDefault    Routing = "default"
	RoutingSmoothStep Routing = "smoothstep"
)

// Edge is a directed connection between two nodes.
type Edge struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceHandle string  `json:"source_handle,omitempty"`
	TargetHandle string  `json:"target_handle,omitempty"`
	Label        string  `json:"label,omitempty"`
	Animated     bool    `json:"animated,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	Marker       Marker  `json:"marker,omitempty"`
	Routing      Routing `json:"routing,omitempty"`
}

// Diagram is one generated (node set, edge set) pair.
type Diagram struct {
	Mode  Mode   `json:"mode"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given ID.
func (d Diagram) Node(id string) (Node, bool) {
	i := slices.IndexFunc(d.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return d.Nodes[i], true
}

// NodeIDs returns node IDs in declaration order.
func (d Diagram) NodeIDs() []string {
	ids := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Counts tallies nodes per kind.
func (d Diagram) Counts() map[Kind]int {
	out := make(map[Kind]int, len(Kinds))
	for _, n := range d.Nodes {
		out[n.Kind]++
	}
	return out
}

// Clone returns a copy that shares no slices with d.
func (d Diagram) Clone() Diagram {
	return Diagram{
		Mode:  d.Mode,
		Nodes: slices.Clone(d.Nodes),
		Edges: slices.Clone(d.Edges),
	}
}
