package deps

import (
	"github.com/matzehuels/gitdeps/pkg/dag"
)

// ProjectNode is the graph node ID of the work directory declaration file.
const ProjectNode = "(project)"

// Graph builds the declaration graph of the resolution: one node per
// library plus [ProjectNode] when the work directory file was read, and an
// edge from the owner of every declaration file to each library it lists.
//
// Library nodes carry "url", "ref", and "path" metadata. Libraries that
// hold a declaration file but are not themselves declared get "declared"
// set to false. Rows are assigned before the graph is returned.
func (r *Resolution) Graph() *dag.DAG {
	if r == nil || r.Set == nil {
		return dag.New(nil)
	}
	g := dag.New(dag.Metadata{"root": r.Root})

	for _, f := range r.Files {
		if f.Library == "" {
			_ = g.AddNode(dag.Node{ID: ProjectNode, Kind: dag.NodeKindProject, Meta: dag.Metadata{"path": f.Path}})
		}
	}
	for _, lib := range r.Libraries() {
		_ = g.AddNode(dag.Node{ID: lib.Name, Meta: dag.Metadata{
			"url":  lib.Record.URL,
			"ref":  lib.Record.Ref,
			"path": lib.Path,
		}})
	}
	for _, f := range r.Files {
		if f.Library == "" {
			continue
		}
		if _, ok := g.Node(f.Library); !ok {
			_ = g.AddNode(dag.Node{ID: f.Library, Meta: dag.Metadata{"declared": false}})
		}
	}

	for _, rec := range r.Set.Records() {
		to := LibraryName(rec)
		for _, origin := range r.Set.Origins(rec) {
			from := origin.Library
			if from == "" {
				from = ProjectNode
			}
			_ = g.AddEdge(dag.Edge{From: from, To: to})
		}
	}

	g.AssignRows()
	return g
}
