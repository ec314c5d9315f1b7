package plan

import (
	"errors"
	"strings"
	"testing"

	"github.com/leengari/minidb/internal/planner/predicate"
)

// TestTreeStructure verifies that nodes form a tree
func TestTreeStructure(t *testing.T) {
	scan := &ScanNode{TableName: "users"}
	sortNode := NewSortNode(scan, []SortKey{{Column: "name", Direction: Asc}})

	selectNode := &SelectNode{TableName: "users"}
	selectNode.AddChild(sortNode)

	if len(selectNode.Children()) != 1 {
		t.Errorf("SelectNode should have 1 child, got %d", len(selectNode.Children()))
	}
	if len(sortNode.Children()) != 1 || sortNode.Child() != scan {
		t.Errorf("SortNode should wrap the scan")
	}
	if len(scan.Children()) != 0 {
		t.Errorf("ScanNode should have 0 children, got %d", len(scan.Children()))
	}
}

// TestMetadata verifies metadata attachment
func TestMetadata(t *testing.T) {
	node := &ScanNode{TableName: "users"}

	md := node.Metadata()
	if md == nil {
		t.Fatal("Metadata should never be nil")
	}

	md["estimated_rows"] = 100
	md["scan_type"] = "sequential"

	if node.Metadata()["estimated_rows"] != 100 {
		t.Errorf("Expected estimated_rows=100, got %v", node.Metadata()["estimated_rows"])
	}
}

// TestWalkTree verifies tree walking visits nodes in pre-order
func TestWalkTree(t *testing.T) {
	lookup := &IndexLookupNode{TableName: "users", Column: "id", Value: "1"}
	sortNode := NewSortNode(lookup, []SortKey{{Column: "id", Direction: Desc}})
	root := &SelectNode{TableName: "users"}
	root.AddChild(sortNode)

	var types []string
	err := WalkTree(root, func(n Node) error {
		types = append(types, n.NodeType())
		return nil
	})
	if err != nil {
		t.Fatalf("WalkTree failed: %v", err)
	}

	want := "SELECT,SORT,INDEX_LOOKUP"
	if got := strings.Join(types, ","); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if CountNodes(root) != 3 {
		t.Errorf("Expected 3 nodes, got %d", CountNodes(root))
	}
}

func TestWalkTreeStopsOnError(t *testing.T) {
	root := &SelectNode{TableName: "users"}
	root.AddChild(&ScanNode{TableName: "users"})

	stop := errors.New("stop")
	visited := 0
	err := WalkTree(root, func(n Node) error {
		visited++
		return stop
	})
	if !errors.Is(err, stop) || visited != 1 {
		t.Errorf("expected walk to stop after first node, visited %d, err %v", visited, err)
	}
}

// TestPrintTree verifies the tree rendering
func TestPrintTree(t *testing.T) {
	scan := &ScanNode{
		TableName: "users",
		Predicate: &predicate.Predicate{Column: "name", Op: predicate.OpLess, Operand: "m", OperandIsConstant: true},
	}
	scan.Metadata()["scan_type"] = "sequential"
	scan.Metadata()["estimated_rows"] = 4

	root := &SelectNode{TableName: "users"}
	root.AddChild(NewSortNode(scan, []SortKey{{Column: "name", Direction: Asc}, {Column: "id", Direction: Desc}}))

	want := "SELECT users\n" +
		"  SORT name ASC, id DESC\n" +
		"    SCAN users WHERE name < \"m\" [estimated_rows=4 scan_type=sequential]\n"
	if got := PrintTree(root); got != want {
		t.Errorf("PrintTree mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"DESC": Desc,
		"desc": Desc,
		"ASC":  Asc,
		"":     Asc,
		"up":   Asc,
	}
	for in, want := range cases {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %s, want %s", in, got, want)
		}
	}
}
