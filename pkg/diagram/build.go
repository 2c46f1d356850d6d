package diagram

// Build returns the complete node and edge sets for mode. It is pure and
// deterministic; every call returns freshly allocated slices. Any value
// other than [Detailed] builds the simple view.
func Build(mode Mode) Diagram {
	if mode != Detailed {
		mode = Simple
	}

	d := Diagram{
		Mode:  mode,
		Nodes: make([]Node, 0, len(nodeCatalog)),
		Edges: make([]Edge, 0, len(edgeCatalog)),
	}

	visible := make(map[string]bool, len(nodeCatalog))
	for _, s := range nodeCatalog {
		n, ok := s.place(mode)
		if !ok {
			continue
		}
		visible[n.ID] = true
		d.Nodes = append(d.Nodes, n)
	}

	for _, s := range edgeCatalog {
		if !visible[s.source] || !visible[s.target] {
			continue
		}
		d.Edges = append(d.Edges, s.edge(mode))
	}
	return d
}

func (s nodeSpec) place(mode Mode) (Node, bool) {
	n := Node{
		ID:      s.id,
		Kind:    s.kind,
		Label:   s.label,
		Icon:    s.icon,
		Service: s.service,
	}
	switch mode {
	case Detailed:
		n.Position = s.detailed
		n.Description = s.description
	default:
		if s.simple == nil {
			return Node{}, false
		}
		n.Position = *s.simple
	}
	return n, true
}

func (s edgeSpec) edge(mode Mode) Edge {
	e := Edge{
		ID:           s.id,
		Source:       s.source,
		Target:       s.target,
		SourceHandle: s.handle,
		Animated:     s.animated,
		Stroke:       s.stroke,
		Marker:       s.marker,
		Routing:      s.routing,
	}
	if e.Routing == "" {
		e.Routing = RoutingDefault
	}
	if mode == Detailed {
		e.Label = s.label
	}
	return e
}

// BuildAll builds every mode, keyed by mode.
func BuildAll() map[Mode]Diagram {
	out := make(map[Mode]Diagram, len(Modes))
	for _, m := range Modes {
		out[m] = Build(m)
	}
	return out
}
