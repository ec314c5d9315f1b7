package schema

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/leengari/minidb/internal/domain/errors"
)

// Catalog maps table names to tables.
// It is owned by whoever embeds the engine; there is no package-level instance.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]*Table),
	}
}

// CreateTable registers a new empty table with one index per indexed column
func (c *Catalog) CreateTable(name string, columns []Column) (*Table, error) {
	if err := validateColumns(name, columns); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[name]; exists {
		return nil, &errors.DuplicateTableError{Table: name}
	}

	table := newTable(name, columns)
	c.tables[name] = table

	slog.Debug("table created", "table", name, "columns", len(columns))
	return table, nil
}

// GetTable returns the named table
func (c *Catalog) GetTable(name string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.tables[name]
	if !ok {
		return nil, &errors.UnknownTableError{Table: name}
	}
	return table, nil
}

// TableNames returns the names of all tables, sorted
func (c *Catalog) TableNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateColumns(table string, columns []Column) error {
	if table == "" {
		return &errors.InvalidSchemaError{Table: table, Reason: "table name is empty"}
	}
	if len(columns) == 0 {
		return &errors.InvalidSchemaError{Table: table, Reason: "no columns"}
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return &errors.InvalidSchemaError{Table: table, Reason: "column name is empty"}
		}
		if seen[col.Name] {
			return &errors.InvalidSchemaError{Table: table, Reason: "duplicate column " + col.Name}
		}
		seen[col.Name] = true
	}
	return nil
}
