package plan

import (
	"fmt"
	"strings"

	"github.com/leengari/minidb/internal/planner/predicate"
)

// Node is the base interface for all execution plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string

	// Describe returns a one-line summary of the node's parameters
	Describe() string
}

// Direction is the order of one sort key
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection maps text to a Direction. Anything but DESC sorts ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortKey is one (column, direction) pair of an ORDER_BY clause
type SortKey struct {
	Column    string
	Direction Direction
}

func (k SortKey) String() string {
	return fmt.Sprintf("%s %s", k.Column, k.Direction)
}

// IndexLookupNode reads the rows of one index bucket (leaf node).
// Rows it yields already satisfy Column = Value.
type IndexLookupNode struct {
	TableName string
	Column    string
	Value     string

	metadata map[string]any
}

func (n *IndexLookupNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *IndexLookupNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *IndexLookupNode) NodeType() string {
	return "INDEX_LOOKUP"
}

func (n *IndexLookupNode) Describe() string {
	return fmt.Sprintf("%s.%s = %q", n.TableName, n.Column, n.Value)
}

// ScanNode represents a full table scan, optionally filtered (leaf node)
type ScanNode struct {
	TableName string
	// Predicate filters rows. If nil, all rows are returned.
	Predicate *predicate.Predicate

	metadata map[string]any
}

func (n *ScanNode) Children() []Node {
	return nil
}

func (n *ScanNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *ScanNode) NodeType() string {
	return "SCAN"
}

func (n *ScanNode) Describe() string {
	if n.Predicate == nil {
		return n.TableName
	}
	return fmt.Sprintf("%s WHERE %s", n.TableName, n.Predicate)
}

// SortNode orders the rows produced by its child
type SortNode struct {
	Keys []SortKey

	child    Node
	metadata map[string]any
}

func NewSortNode(child Node, keys []SortKey) *SortNode {
	return &SortNode{child: child, Keys: keys}
}

func (n *SortNode) Child() Node {
	return n.child
}

func (n *SortNode) Children() []Node {
	return []Node{n.child}
}

func (n *SortNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *SortNode) NodeType() string {
	return "SORT"
}

func (n *SortNode) Describe() string {
	keys := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		keys[i] = k.String()
	}
	return strings.Join(keys, ", ")
}

// SelectNode is the root of every query plan
type SelectNode struct {
	TableName string

	// Tree structure - exactly one child producing rows
	children []Node

	metadata map[string]any
}

func (n *SelectNode) Children() []Node {
	return n.children
}

func (n *SelectNode) AddChild(child Node) {
	n.children = append(n.children, child)
}

func (n *SelectNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *SelectNode) NodeType() string {
	return "SELECT"
}

func (n *SelectNode) Describe() string {
	return n.TableName
}
