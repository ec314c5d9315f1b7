package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/engine"
	"github.com/leengari/minidb/internal/request"
)

// Seed describes tables and rows created at startup.
// Nothing is ever written back: the catalog lives in memory only.
type Seed struct {
	Tables []SeedTable `yaml:"tables"`
}

// SeedTable is one table of a seed file
type SeedTable struct {
	Name    string          `yaml:"name"`
	Columns []schema.Column `yaml:"columns"`
	Rows    [][]string      `yaml:"rows"`
}

// LoadSeed reads and decodes a seed file
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return DecodeSeed(bytes.NewReader(raw))
}

// DecodeSeed decodes a seed document; unknown fields are rejected
func DecodeSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return &seed, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Apply replays the seed through the engine as CreateTable and Insert requests.
// It stops at the first failure.
func Apply(ctx context.Context, eng *engine.Engine, seed *Seed) error {
	for _, t := range seed.Tables {
		create := &request.CreateTable{TableName: t.Name, Columns: t.Columns}
		if _, err := eng.Execute(ctx, create); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}

		for i, values := range t.Rows {
			if _, err := eng.Execute(ctx, &request.Insert{TableName: t.Name, Values: values}); err != nil {
				return fmt.Errorf("failed to insert row %d into %s: %w", i, t.Name, err)
			}
		}

		slog.Info("Table seeded", "table", t.Name, "rows", len(t.Rows))
	}
	return nil
}
