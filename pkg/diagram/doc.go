// Package diagram builds the architecture diagram shown by archflow.
//
// The diagram depicts an image-analysis application: a user submits
// artwork, a vision service analyses it, a language model turns the
// analysis into a story, and account creation and login are backed by a
// database and an authentication service.
//
// # View Modes
//
// Two fixed granularities exist:
//
//   - [Simple]: 10 nodes (user, five actions, four services) and 11 edges,
//     with no descriptive text.
//   - [Detailed]: the same 10 nodes on a taller layout plus 10 detail nodes
//     (seven vision features, the extracted-data aggregate and the story
//     generation process) for 20 nodes, and 28 edges. Base nodes gain
//     descriptions and the analysis-chain edges gain labels.
//
// # Single Source of Truth
//
// Nodes and edges are declared once, in one catalog. Every node carries a
// placement per mode; a node without a simple placement exists only in the
// detailed view. An edge is emitted for a mode exactly when both of its
// endpoints are emitted, so a generated edge set can never reference a
// node missing from the matching node set. [Validate] re-checks that
// property along with ID uniqueness.
//
// # Icons
//
// Icons are a closed set ([Icon]) mapped through a static table. A node
// whose icon is missing or not allowed for its kind resolves to the kind's
// default icon via [ResolveIcon]; an unmatched icon is never an error.
//
// # Usage
//
//	d := diagram.Build(diagram.Detailed)
//	if err := diagram.Validate(d); err != nil {
//	    return err
//	}
//	for _, n := range d.Nodes {
//	    fmt.Println(n.ID, diagram.ResolveIcon(n))
//	}
package diagram
