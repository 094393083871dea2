package dag

import (
	"errors"
	"reflect"
	"testing"
)

func build(t *testing.T, ids []string, edges [][2]string) *DAG {
	t.Helper()
	g := New(nil)
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a): %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Errorf("Node(a) = %+v, %v; want initialized metadata", n, ok)
	}
}

func TestAddEdge(t *testing.T) {
	g := build(t, []string{"a", "b"}, nil)

	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("unknown source = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("unknown target = %v", err)
	}
	for range 2 {
		if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 after duplicate add", g.EdgeCount())
	}
	if !reflect.DeepEqual(g.Children("a"), []string{"b"}) || !reflect.DeepEqual(g.Parents("b"), []string{"a"}) {
		t.Errorf("Children/Parents = %v / %v", g.Children("a"), g.Parents("b"))
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	ids := []string{"zeta", "alpha", "mid"}
	g := build(t, ids, nil)
	if got := NodeIDs(g.Nodes()); !reflect.DeepEqual(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
}

func TestAssignRows(t *testing.T) {
	g := build(t,
		[]string{"project", "a", "b", "c", "x", "y"},
		[][2]string{{"project", "a"}, {"project", "b"}, {"a", "c"}, {"b", "c"}, {"x", "y"}, {"y", "x"}},
	)
	g.AssignRows()

	want := map[string]int{"project": 0, "a": 1, "b": 1, "c": 2, "x": 0, "y": 1}
	for id, row := range want {
		n, _ := g.Node(id)
		if n.Row != row {
			t.Errorf("%s.Row = %d, want %d", id, n.Row, row)
		}
	}
	if got := g.RowIDs(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("RowIDs() = %v", got)
	}
	if got := NodeIDs(g.NodesInRow(1)); !reflect.DeepEqual(got, []string{"a", "b", "y"}) {
		t.Errorf("NodesInRow(1) = %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		edges     [][2]string
		wantCycle []string
	}{
		{"acyclic", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}}, nil},
		{"mutual", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, []string{"a", "b", "a"}},
		{"self", []string{"a"}, [][2]string{{"a", "a"}}, []string{"a", "a"}},
		{"deep", []string{"p", "a", "b", "c"}, [][2]string{{"p", "a"}, {"a", "b"}, {"b", "c"}, {"c", "a"}}, []string{"a", "b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			if got := g.FindCycle(); !reflect.DeepEqual(got, tt.wantCycle) {
				t.Errorf("FindCycle() = %v, want %v", got, tt.wantCycle)
			}
			err := g.Validate()
			if (tt.wantCycle != nil) != errors.Is(err, ErrGraphHasCycle) {
				t.Errorf("Validate() = %v", err)
			}
			var cycleErr *CycleError
			if errors.As(err, &cycleErr) && !reflect.DeepEqual(cycleErr.Path, tt.wantCycle) {
				t.Errorf("CycleError.Path = %v, want %v", cycleErr.Path, tt.wantCycle)
			}
		})
	}
}

func TestNodeKindString(t *testing.T) {
	if NodeKindProject.String() != "project" || NodeKindLibrary.String() != "library" {
		t.Error("unexpected NodeKind names")
	}
}
