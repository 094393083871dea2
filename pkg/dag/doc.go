// Package dag provides the declaration graph of a library root.
//
// # Overview
//
// Every library under a library root may carry its own declaration file,
// and so may the project in the work directory. The declaration graph has
// one node per library (and one for the project) and an edge from the
// owner of a declaration file to each library it declares.
//
// Libraries may declare each other, so the graph is not guaranteed to be
// acyclic. [DAG.Validate] reports cycles and [DAG.AssignRows] layers the
// nodes by their shortest distance from the project, which is also the
// pass in which a synchronization run clones them.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "project", Kind: dag.NodeKindProject})
//	g.AddNode(dag.Node{ID: "repo-main"})
//	g.AddEdge(dag.Edge{From: "project", To: "repo-main"})
//	g.AssignRows()
//
// Nodes and edges are kept in insertion order so that rendering is
// deterministic.
package dag
