package dag

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when libraries declare
	// each other.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// CycleError is returned by [DAG.Validate]. It matches [ErrGraphHasCycle]
// with errors.Is.
type CycleError struct {
	// Path lists the node IDs of the cycle, starting and ending with the
	// same ID.
	Path []string
}

func (e *CycleError) Error() string {
	return ErrGraphHasCycle.Error() + ": " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool { return target == ErrGraphHasCycle }

// Metadata stores arbitrary key-value pairs attached to nodes or the graph,
// such as the source location and ref of a library.
type Metadata map[string]any

// NodeKind distinguishes libraries from the project node.
type NodeKind int

const (
	// NodeKindLibrary is a library below the library root.
	NodeKindLibrary NodeKind = iota
	// NodeKindProject is the work directory declaration file.
	NodeKindProject
)

// String returns the lowercase kind name.
func (k NodeKind) String() string {
	if k == NodeKindProject {
		return "project"
	}
	return "library"
}

// Node is a vertex of the declaration graph.
type Node struct {
	ID   string   // Library name, or the project ID
	Kind NodeKind // Library or project
	Row  int      // Distance from the sources, set by AssignRows
	Meta Metadata // Never nil after AddNode
}

// Edge points from the owner of a declaration file to a declared library.
type Edge struct {
	From string
	To   string
}

// DAG is the declaration graph. Despite the name it may contain cycles;
// see [DAG.Validate].
//
// The zero value is not usable; use New. DAG is not safe for concurrent use.
type DAG struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds n to the graph. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID when the ID is taken.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Adding an edge
// that already exists is a no-op.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if slices.Contains(d.outgoing[e.From], e.To) {
		return nil
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// nodes in the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of the libraries id declares.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of the nodes that declare id.
// The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.Parents(id)) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// AssignRows sets every node's Row to its shortest distance from a source.
// Nodes reachable only through a cycle start a new row 0.
func (d *DAG) AssignRows() {
	rows := make(map[string]int, len(d.nodes))
	queue := make([]string, 0, len(d.nodes))
	for _, n := range d.Sources() {
		rows[n.ID] = 0
		queue = append(queue, n.ID)
	}

	visit := func() {
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, child := range d.Children(id) {
				if _, seen := rows[child]; !seen {
					rows[child] = rows[id] + 1
					queue = append(queue, child)
				}
			}
		}
	}
	visit()

	for _, id := range d.order {
		if _, seen := rows[id]; !seen {
			rows[id] = 0
			queue = append(queue, id)
			visit()
		}
	}

	for id, row := range rows {
		d.nodes[id].Row = row
	}
}

// RowIDs returns the distinct row indices in ascending order.
func (d *DAG) RowIDs() []int {
	seen := make(map[int]bool)
	for _, n := range d.nodes {
		seen[n.Row] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// NodesInRow returns the nodes assigned to row, in insertion order.
func (d *DAG) NodesInRow(row int) []*Node {
	var nodes []*Node
	for _, id := range d.order {
		if n := d.nodes[id]; n.Row == row {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Validate returns a *CycleError when the graph contains a directed cycle,
// including a library that declares itself.
func (d *DAG) Validate() error {
	if cycle := d.FindCycle(); cycle != nil {
		return &CycleError{Path: cycle}
	}
	return nil
}

// FindCycle returns the node IDs of one directed cycle, starting and ending
// with the same ID, or nil when the graph is acyclic.
func (d *DAG) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var stack, cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.order {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
