// Package nodelink renders declaration graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then optionally render it to SVG in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include the source location and ref
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Nodes in the same row share a rank, so the diagram reads as the
// sequence of synchronization passes. The project node is filled blue and
// libraries that are present but not declared by anyone are dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering. The
// DOT output can also be fed to an external dot binary.
package nodelink
