package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gitdeps/pkg/dag"
	"github.com/matzehuels/gitdeps/pkg/deps"
	"github.com/matzehuels/gitdeps/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Listing is the exported form of a resolution.
type Listing struct {
	Root      string      `json:"root" yaml:"root"`
	Files     []deps.File `json:"files" yaml:"files"`
	Libraries []Library   `json:"libraries" yaml:"libraries"`
}

// Library is one entry of a Listing.
type Library struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	URL        string   `json:"url" yaml:"url"`
	Ref        string   `json:"ref" yaml:"ref"`
	Present    bool     `json:"present" yaml:"present"`
	DeclaredBy []string `json:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}

// NewListing builds the listing of res. A library is present when its
// directory exists.
func NewListing(res *deps.Resolution) Listing {
	out := Listing{Files: []deps.File{}, Libraries: []Library{}}
	if res == nil {
		return out
	}
	out.Root = res.Root
	out.Files = append(out.Files, res.Files...)

	for _, lib := range res.Libraries() {
		entry := Library{
			Name:    lib.Name,
			Path:    lib.Path,
			URL:     lib.Record.URL,
			Ref:     lib.Record.Ref,
			Present: isDir(lib.Path),
		}
		for _, f := range res.Set.Origins(lib.Record) {
			entry.DeclaredBy = append(entry.DeclaredBy, f.Path)
		}
		out.Libraries = append(out.Libraries, entry)
	}
	return out
}

// WriteListing encodes the listing of res to w in the given format.
// Returns an [errors.ErrCodeUnsupported] error for unknown formats.
func WriteListing(res *deps.Resolution, w io.Writer, format Format) error {
	listing := NewListing(res)
	switch format {
	case FormatJSON:
		return writeJSON(w, listing)
	case FormatYAML:
		return writeYAML(w, listing)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format: %q", format)
	}
}

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   string       `json:"id"`
	Row  *int         `json:"row,omitempty"`
	Kind string       `json:"kind,omitempty"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteGraphJSON encodes a declaration graph as JSON and writes it to w.
func WriteGraphJSON(g *dag.DAG, w io.Writer) error {
	out := graph{
		Nodes: make([]node, len(g.Nodes())),
		Edges: make([]edge, len(g.Edges())),
	}

	for i, n := range g.Nodes() {
		nd := node{ID: n.ID, Meta: n.Meta}
		if n.Row != 0 {
			row := n.Row
			nd.Row = &row
		}
		if n.Kind == dag.NodeKindProject {
			nd.Kind = n.Kind.String()
		}
		out.Nodes[i] = nd
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}
	return writeJSON(w, out)
}

// createFile opens export targets; replaced in tests.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// ExportListing writes the listing of res to a file at path.
// A failure to close the file is returned when writing succeeded.
func ExportListing(res *deps.Resolution, path string, format Format) (err error) {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteListing(res, f, format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
