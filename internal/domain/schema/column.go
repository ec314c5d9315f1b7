package schema

// Column describes one table column. All values are stored as text.
type Column struct {
	Name    string `json:"name" yaml:"name"`
	Indexed bool   `json:"indexed" yaml:"indexed"`
}

// IndexView is a read-only snapshot of one indexed column
type IndexView struct {
	Column  string       `json:"column"`
	Buckets []BucketView `json:"buckets"`
}

// BucketView is a value → row IDs pair in an IndexView
type BucketView struct {
	Value  string `json:"value"`
	RowIDs []int  `json:"row_ids"`
}
