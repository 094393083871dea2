package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gitdeps/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the source location and ref to library labels.
	// When false, only the library name is shown.
	Detailed bool
}

// graphAttrs and nodeAttrs are written at the top of every DOT document.
var (
	graphAttrs = []string{`rankdir=TB`, `bgcolor="transparent"`, `ranksep=0.5`, `nodesep=0.3`, `fontsize=11`}
	nodeAttrs  = []string{`shape=box`, `style="rounded,filled"`, `fillcolor=white`, `fontsize=14`, `margin="0.2,0.1"`}
)

// ToDOT converts a declaration graph to Graphviz DOT.
// The result can be rendered with [RenderSVG].
//
// Nodes that share a row are ranked together so every library sits one
// level below the list that first declared it. With opts.Detailed the
// library root from the graph metadata becomes the graph label.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	for _, a := range graphAttrs {
		fmt.Fprintf(&buf, "  %s;\n", a)
	}
	if root, _ := g.Meta()["root"].(string); opts.Detailed && root != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=b;\n", root)
	}
	fmt.Fprintf(&buf, "  node [%s];\n\n", strings.Join(nodeAttrs, ", "))

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	rows := g.RowIDs()
	if len(rows) > 1 {
		buf.WriteString("\n")
		for _, row := range rows {
			ids := dag.NodeIDs(g.NodesInRow(row))
			for i, id := range ids {
				ids[i] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed || n.Kind == dag.NodeKindProject {
		return n.ID
	}
	url, _ := n.Meta["url"].(string)
	if url == "" {
		return n.ID
	}
	ref, _ := n.Meta["ref"].(string)
	return n.ID + "\n" + url + "\n[" + ref + "]"
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Kind == dag.NodeKindProject:
		attrs = append(attrs, "fillcolor=lightblue")
	case n.Meta["declared"] == false:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
