// Package nodelink draws architecture diagrams as static node-link images
// using Graphviz.
//
// Positions are not computed: every node is pinned to the coordinate the
// diagram declares for the current mode, and Graphviz only routes edges.
// The neato engine honours pinned positions ("pos" with a trailing "!");
// inputscale=72 makes it read them in points, so one canvas pixel maps to
// one point. Canvas y grows downward, so it is negated on the way out.
//
//	d := diagram.Build(diagram.Detailed)
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//	png, _ := nodelink.Render(ctx, dot, "png", 2)
//
// Node colours follow the kind palette and each label is prefixed with the
// node's resolved icon glyph. Edges keep their stroke colour and arrowhead;
// animated edges are drawn dashed, the static stand-in for motion.
package nodelink
