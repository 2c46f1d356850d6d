// Package flow exports diagrams for the browser graph library that draws
// the interactive view.
//
// [Export] converts a [diagram.Diagram] into the node/edge records the
// library consumes: a renderer type per kind ("actionNode"), a data bag
// with label, icon and description, pinned positions, and edge styling
// (stroke, closed arrow markers, smoothstep routing, handle names). The
// viewport is fixed: fit to view, zoom between 0.1 and 1.5 with a 0.5
// default, minimap, controls and a dotted background.
//
// [RenderHTML] wraps the documents for both view modes in one
// self-contained page. The page shows a neutral spinner until the graph
// library has loaded in the browser, then renders the requested mode.
// Switching mode replaces the displayed nodes and edges wholesale;
// connections drawn by dragging between handles are kept in page state
// only.
//
// [diagram.Diagram]: github.com/matzehuels/archflow/pkg/diagram.Diagram
package flow
