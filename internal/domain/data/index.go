package data

import (
	"github.com/tidwall/btree"
)

// Index is an in-memory equality index on a single column.
// Keys are the raw values seen at insert time; buckets keep row IDs in insertion order.
type Index struct {
	Column  string
	buckets *btree.Map[string, []int]
}

// NewIndex creates an empty index for column
func NewIndex(column string) *Index {
	return &Index{
		Column:  column,
		buckets: new(btree.Map[string, []int]),
	}
}

// Add appends rowID to the bucket for value, creating the bucket if absent
func (idx *Index) Add(value string, rowID int) {
	ids, _ := idx.buckets.Get(value)
	idx.buckets.Set(value, append(ids, rowID))
}

// Lookup returns a copy of the row IDs stored under value
func (idx *Index) Lookup(value string) ([]int, bool) {
	ids, ok := idx.buckets.Get(value)
	if !ok {
		return nil, false
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, true
}

// Len returns the number of distinct values in the index
func (idx *Index) Len() int {
	return idx.buckets.Len()
}

// Bucket is one value → row IDs entry of an index snapshot
type Bucket struct {
	Value  string
	RowIDs []int
}

// Snapshot returns every bucket in key order. The result shares nothing with the index.
func (idx *Index) Snapshot() []Bucket {
	buckets := make([]Bucket, 0, idx.buckets.Len())
	idx.buckets.Scan(func(value string, ids []int) bool {
		cp := make([]int, len(ids))
		copy(cp, ids)
		buckets = append(buckets, Bucket{Value: value, RowIDs: cp})
		return true
	})
	return buckets
}
