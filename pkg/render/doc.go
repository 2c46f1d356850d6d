// Package render provides output rendering for architecture diagrams.
//
// # Overview
//
// This package contains the renderers that turn a [diagram.Diagram] into
// something a person can look at. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Static node-link drawings (in [nodelink] subpackage)
//   - Browser documents for the interactive view (in [flow] subpackage)
//
// # Format Conversion
//
// [Convert] turns any SVG into PDF or PNG using the external rsvg-convert
// tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.Convert(ctx, svg, "pdf", render.ConvertOptions{})
//	png, err := render.Convert(ctx, svg, "png", render.ConvertOptions{Scale: 2})
//
// # Node-Link Drawings
//
// The [nodelink] subpackage emits Graphviz DOT with every node pinned to
// its fixed canvas position and renders it with go-graphviz.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Interactive View
//
// The [flow] subpackage exports the node and edge records in the shape the
// browser graph library consumes, and wraps them in a self-contained HTML
// page with pan, zoom, drag and drag-to-connect.
//
// [diagram.Diagram]: github.com/matzehuels/archflow/pkg/diagram.Diagram
package render
