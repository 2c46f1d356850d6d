// Package pkg provides the libraries behind archflow, the architecture
// diagram of the image-analysis service.
//
// # Overview
//
// The diagram exists in two views. The simple view shows the user, the web
// app actions and the external services. The detailed view adds the
// individual Vision features, the extracted-data aggregate and the story
// generation step, along with labels and descriptions. Both views are fixed
// catalogs with hand-placed coordinates; nothing is laid out automatically.
//
// # Architecture
//
//	[diagram] package (build the node and edge sets for a mode)
//	         ↓
//	[presenter] package (view state: mode switch, user connections)
//	         ↓
//	[render/nodelink] or [render/flow] (DOT/SVG/PNG/PDF or client JSON/HTML)
//	         ↓
//	[pipeline] package (build once, render formats concurrently, cache)
//
// # Quick Start
//
// Build the detailed view and render it to SVG:
//
//	d := diagram.Build(diagram.Detailed)
//	dot := nodelink.ToDOT(d, nodelink.Options{Descriptions: true})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//
// Drive the view state the way the browser page does:
//
//	p := presenter.New(diagram.Simple)
//	p.MarkReady()
//	p.Connect(presenter.Connection{Source: "submit", Target: "analyze"})
//	p.SetMode(diagram.Detailed) // the drawn edge is discarded
//
// # Main Packages
//
// [diagram] - Node and edge types, the node/edge catalog, icon resolution
// and integrity checks.
//
// [presenter] - The single owner of the displayed collections. Mode changes
// replace both wholesale; user connections live only in the presenter.
//
// [render/flow] - The document consumed by the browser graph library, and
// the self-contained HTML page.
//
// [render/nodelink] - Graphviz DOT generation and SVG/PNG/PDF output.
//
// [pipeline] - Build and render orchestration shared by the CLI and server.
//
// ## Infrastructure
//
// [cache] - Artifact cache with file, Redis and no-op backends.
//
// [session] - In-memory presenter sessions with idle expiry.
//
// [observability] - Pipeline, cache and session hooks with a Prometheus
// collector.
//
// [config] - File and environment configuration.
//
// [errors] - Structured error codes shared by every package.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/diagram
// [presenter]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/presenter
// [render/flow]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/render/flow
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/session
// [observability]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/observability
// [config]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/archflow/pkg/errors
package pkg
