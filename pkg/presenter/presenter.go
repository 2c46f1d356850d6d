// Package presenter holds the view state of an interactive diagram.
//
// A [Presenter] owns the node and edge collections currently on screen. On a
// mode change it replaces both wholesale with a freshly built diagram; it
// never diffs or merges. Connections drawn by the user are appended to the
// local edge collection immediately and are never written back to the
// diagram builder, so they disappear on the next mode change.
//
// Nothing is shown until the rendering surface reports that it is ready
// ([Presenter.MarkReady]); until then renderers display [Placeholder].
package presenter

import (
	"slices"
	"sync"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
)

// Placeholder is the neutral text shown while the rendering surface is not
// ready yet.
const Placeholder = "Loading diagram…"

// Connection is a user request to draw an edge between two nodes.
// Handles are optional and name a specific connection point on the node.
type Connection struct {
	Source       string `json:"source" validate:"required,max=128"`
	Target       string `json:"target" validate:"required,max=128"`
	SourceHandle string `json:"sourceHandle,omitempty" validate:"max=128"`
	TargetHandle string `json:"targetHandle,omitempty" validate:"max=128"`
}

// userEdgePrefix is the ID prefix the browser graph library gives the edges
// it connects.
const userEdgePrefix = "reactflow__edge-"

// EdgeID returns the ID given to the edge created from c.
func (c Connection) EdgeID() string {
	return userEdgePrefix + c.Source + c.SourceHandle + "-" + c.Target + c.TargetHandle
}

// State is a point-in-time copy of the presenter's view state.
type State struct {
	Mode      diagram.Mode
	Nodes     []diagram.Node
	Edges     []diagram.Edge
	UserEdges int // number of trailing entries in Edges drawn by the user
	Ready     bool
}

// Diagram returns the state's collections as a diagram.
func (s State) Diagram() diagram.Diagram {
	return diagram.Diagram{Mode: s.Mode, Nodes: s.Nodes, Edges: s.Edges}
}

// Presenter is the single owner of the displayed node and edge collections.
// The mutex lets a session store hand a presenter between request
// goroutines; a presenter has no concurrency of its own.
type Presenter struct {
	mu        sync.Mutex
	mode      diagram.Mode
	nodes     []diagram.Node
	edges     []diagram.Edge
	userEdges int
	ready     bool
}

// New returns a presenter showing the diagram for mode.
func New(mode diagram.Mode) *Presenter {
	p := &Presenter{}
	p.load(mode)
	return p
}

func (p *Presenter) load(mode diagram.Mode) {
	d := diagram.Build(mode)
	p.mode = d.Mode
	p.nodes = d.Nodes
	p.edges = d.Edges
	p.userEdges = 0
}

// Mode returns the current view mode.
func (p *Presenter) Mode() diagram.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode switches the view. When mode differs from the current one, the
// node and edge collections are replaced wholesale and any user-drawn
// edges are discarded. Setting the current mode again changes nothing.
// It reports whether the collections were replaced.
func (p *Presenter) SetMode(mode diagram.Mode) bool {
	if mode != diagram.Detailed {
		mode = diagram.Simple
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if mode == p.mode {
		return false
	}
	p.load(mode)
	return true
}

// Toggle switches to the other mode.
func (p *Presenter) Toggle() diagram.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(p.mode.Toggle())
	return p.mode
}

// Connect appends a user-drawn edge between two displayed nodes. An
// identical connection (same endpoints and handles) is not added twice:
// the existing edge is returned with added set to false. Unknown endpoints
// yield an UNKNOWN_NODE error.
func (p *Presenter) Connect(c Connection) (e diagram.Edge, added bool, err error) {
	if err := errors.ValidateNodeID(c.Source); err != nil {
		return diagram.Edge{}, false, err
	}
	if err := errors.ValidateNodeID(c.Target); err != nil {
		return diagram.Edge{}, false, err
	}
	if err := errors.ValidateHandle(c.SourceHandle); err != nil {
		return diagram.Edge{}, false, err
	}
	if err := errors.ValidateHandle(c.TargetHandle); err != nil {
		return diagram.Edge{}, false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range []string{c.Source, c.Target} {
		if !slices.ContainsFunc(p.nodes, func(n diagram.Node) bool { return n.ID == id }) {
			return diagram.Edge{}, false, errors.New(errors.ErrCodeUnknownNode,
				"node %q is not shown in the %s view", id, p.mode)
		}
	}

	if i := slices.IndexFunc(p.edges, func(e diagram.Edge) bool {
		return e.Source == c.Source && e.Target == c.Target &&
			e.SourceHandle == c.SourceHandle && e.TargetHandle == c.TargetHandle
	}); i >= 0 {
		return p.edges[i], false, nil
	}

	e = diagram.Edge{
		ID:           c.EdgeID(),
		Source:       c.Source,
		Target:       c.Target,
		SourceHandle: c.SourceHandle,
		TargetHandle: c.TargetHandle,
		Routing:      diagram.RoutingDefault,
	}
	p.edges = append(p.edges, e)
	p.userEdges++
	return e, true, nil
}

// MarkReady records that the rendering surface can paint.
func (p *Presenter) MarkReady() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = true
}

// Ready reports whether the rendering surface can paint.
func (p *Presenter) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Snapshot returns a copy of the current state.
func (p *Presenter) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Mode:      p.mode,
		Nodes:     slices.Clone(p.nodes),
		Edges:     slices.Clone(p.edges),
		UserEdges: p.userEdges,
		Ready:     p.ready,
	}
}
