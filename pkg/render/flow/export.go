package flow

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archflow/pkg/diagram"
)

// Viewport settings of the interactive view.
const (
	MinZoom     = 0.1
	MaxZoom     = 1.5
	DefaultZoom = 0.5
	gridGap     = 12
	gridDotSize = 1
)

// Document is the browser-facing form of one diagram.
type Document struct {
	Mode      diagram.Mode `json:"mode" yaml:"mode"`
	Nodes     []Node       `json:"nodes" yaml:"nodes"`
	Edges     []Edge       `json:"edges" yaml:"edges"`
	UserEdges int          `json:"userEdges,omitempty" yaml:"userEdges,omitempty"`
	Viewport  Viewport     `json:"viewport" yaml:"viewport"`
}

// Node is a graph-library node record.
type Node struct {
	ID       string           `json:"id" yaml:"id"`
	Type     string           `json:"type" yaml:"type"`
	Data     NodeData         `json:"data" yaml:"data"`
	Position diagram.Position `json:"position" yaml:"position"`
}

// NodeData is the payload handed to the node component.
type NodeData struct {
	Label       string `json:"label" yaml:"label"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Glyph       string `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Service     string `json:"service,omitempty" yaml:"service,omitempty"`
	Color       string `json:"color" yaml:"color"`
	Background  string `json:"background" yaml:"background"`
}

// Edge is a graph-library edge record.
type Edge struct {
	ID           string      `json:"id" yaml:"id"`
	Source       string      `json:"source" yaml:"source"`
	Target       string      `json:"target" yaml:"target"`
	SourceHandle string      `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string      `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
	Type         string      `json:"type,omitempty" yaml:"type,omitempty"`
	Animated     bool        `json:"animated,omitempty" yaml:"animated,omitempty"`
	Label        string      `json:"label,omitempty" yaml:"label,omitempty"`
	Style        *EdgeStyle  `json:"style,omitempty" yaml:"style,omitempty"`
	LabelStyle   *LabelStyle `json:"labelStyle,omitempty" yaml:"labelStyle,omitempty"`
	MarkerEnd    *Marker     `json:"markerEnd,omitempty" yaml:"markerEnd,omitempty"`
}

// EdgeStyle is the SVG style applied to an edge path.
type EdgeStyle struct {
	Stroke string `json:"stroke" yaml:"stroke"`
}

// LabelStyle is the SVG style applied to an edge label.
type LabelStyle struct {
	Fill       string `json:"fill" yaml:"fill"`
	FontWeight int    `json:"fontWeight" yaml:"fontWeight"`
}

// Marker decorates an edge end.
type Marker struct {
	Type string `json:"type" yaml:"type"`
}

// Viewport configures the rendering surface.
type Viewport struct {
	FitView             bool       `json:"fitView" yaml:"fitView"`
	MinZoom             float64    `json:"minZoom" yaml:"minZoom"`
	MaxZoom             float64    `json:"maxZoom" yaml:"maxZoom"`
	DefaultViewport     ViewState  `json:"defaultViewport" yaml:"defaultViewport"`
	MiniMap             bool       `json:"miniMap" yaml:"miniMap"`
	Controls            bool       `json:"controls" yaml:"controls"`
	Background          Background `json:"background" yaml:"background"`
	AttributionPosition string     `json:"attributionPosition" yaml:"attributionPosition"`
}

// ViewState is a pan offset and zoom level.
type ViewState struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

// Background is the canvas backdrop pattern.
type Background struct {
	Variant string `json:"variant" yaml:"variant"`
	Gap     int    `json:"gap" yaml:"gap"`
	Size    int    `json:"size" yaml:"size"`
}

// DefaultViewport returns the viewport the interactive view starts with.
func DefaultViewport() Viewport {
	return Viewport{
		FitView:             true,
		MinZoom:             MinZoom,
		MaxZoom:             MaxZoom,
		DefaultViewport:     ViewState{Zoom: DefaultZoom},
		MiniMap:             true,
		Controls:            true,
		Background:          Background{Variant: "dots", Gap: gridGap, Size: gridDotSize},
		AttributionPosition: "bottom-right",
	}
}

// Export converts d to its browser form. Icons are resolved here, so the
// client always receives a key its icon set knows.
func Export(d diagram.Diagram) Document {
	doc := Document{
		Mode:     d.Mode,
		Nodes:    make([]Node, len(d.Nodes)),
		Edges:    make([]Edge, len(d.Edges)),
		Viewport: DefaultViewport(),
	}
	for i, n := range d.Nodes {
		doc.Nodes[i] = exportNode(n)
	}
	for i, e := range d.Edges {
		doc.Edges[i] = exportEdge(e)
	}
	return doc
}

func exportNode(n diagram.Node) Node {
	icon := diagram.ResolveIcon(n)
	p := diagram.PaletteFor(n)
	return Node{
		ID:   n.ID,
		Type: n.Kind.RendererType(),
		Data: NodeData{
			Label:       n.Label,
			Icon:        icon.Key(),
			Glyph:       icon.Glyph(),
			Description: n.Description,
			Service:     string(n.Service),
			Color:       p.Border,
			Background:  p.Background,
		},
		Position: n.Position,
	}
}

func exportEdge(e diagram.Edge) Edge {
	out := Edge{
		ID:           e.ID,
		Source:       e.Source,
		Target:       e.Target,
		SourceHandle: e.SourceHandle,
		TargetHandle: e.TargetHandle,
		Animated:     e.Animated,
		Label:        e.Label,
	}
	if e.Routing == diagram.RoutingSmoothStep {
		out.Type = string(diagram.RoutingSmoothStep)
	}
	if e.Stroke != "" {
		out.Style = &EdgeStyle{Stroke: e.Stroke}
		if e.Label != "" {
			out.LabelStyle = &LabelStyle{Fill: e.Stroke, FontWeight: 500}
		}
	}
	if e.Marker == diagram.MarkerArrowClosed {
		out.MarkerEnd = &Marker{Type: string(diagram.MarkerArrowClosed)}
	}
	return out
}

// RenderJSON serialises doc as indented JSON.
func RenderJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// RenderYAML serialises doc as YAML.
func RenderYAML(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
