package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/render"
)

// Options configures node-link rendering.
type Options struct {
	// Descriptions appends node descriptions to labels. Descriptions are
	// only populated in the detailed view, so this is a no-op for simple.
	Descriptions bool
	// NoIcons omits the icon glyph from labels.
	NoIcons bool
}

// ToDOT converts a diagram to Graphviz DOT with every node pinned to its
// canvas position.
func ToDOT(d diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", penwidth=2, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11, arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n diagram.Node, opts Options) string {
	label := n.Label
	if !opts.NoIcons {
		if g := diagram.ResolveIcon(n).Glyph(); g != "" {
			label = g + " " + label
		}
	}
	if opts.Descriptions && n.Description != "" {
		label += "\n" + n.Description
	}
	return label
}

func nodeAttrs(n diagram.Node, opts Options) []string {
	p := diagram.PaletteFor(n)
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, opts)),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.Position.X), fmtCoord(-n.Position.Y)),
		fmt.Sprintf("color=%q", p.Border),
		fmt.Sprintf("fillcolor=%q", "#ffffff"),
	}
	switch n.Kind {
	case diagram.KindUser:
		attrs = append(attrs, "style=\"rounded,filled\"", "shape=oval")
	case diagram.KindFeature:
		attrs = append(attrs, "fontsize=11")
	case diagram.KindData:
		attrs = append(attrs, "shape=cylinder", "style=filled", fmt.Sprintf("fillcolor=%q", p.Background))
	case diagram.KindProcess:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", p.Background))
	}
	return attrs
}

func edgeAttrs(e diagram.Edge) []string {
	var attrs []string
	if e.Stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Stroke))
	}
	if e.Marker == diagram.MarkerArrowClosed {
		attrs = append(attrs, "arrowhead=normal")
	}
	if e.Animated {
		attrs = append(attrs, "style=dashed")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		if e.Stroke != "" {
			attrs = append(attrs, fmt.Sprintf("fontcolor=%q", e.Stroke))
		}
	}
	if e.SourceHandle == "b" {
		attrs = append(attrs, "tailport=s")
	}
	return attrs
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG lays out dot with the neato engine, which honours the pinned
// node positions, and returns the SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

// Render produces dot in format: "dot" returns it unchanged, "svg" runs
// Graphviz, and "png" or "pdf" convert the SVG with rsvg-convert. scale
// only affects PNG.
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg", "png", "pdf":
	default:
		return nil, fmt.Errorf("nodelink: unsupported format %q", format)
	}

	svg, err := RenderSVG(ctx, dot)
	if err != nil || format == "svg" {
		return svg, err
	}
	opts := render.ConvertOptions{}
	if format == "png" {
		opts = render.ConvertOptions{Scale: scale, Background: "white"}
	}
	return render.Convert(ctx, svg, format, opts)
}

var (
	svgOpenTag  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxAttr = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitViewBox replaces Graphviz's root element, which carries point-based
// width/height and a translated viewBox, with one sized to the drawing so
// browsers scale it cleanly.
func fitViewBox(svg []byte) []byte {
	m := viewBoxAttr.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w <= 0 || h <= 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(root))
}
