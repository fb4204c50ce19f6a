package schema

import (
	"context"

	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// TableSource resolves a configured table by name. The table registry
// implements it, so a reloaded configuration is seen on the next call.
type TableSource interface {
	Resolve(name string) (core.TableConfig, bool)
}

// Tables is a fixed TableSource.
type Tables []core.TableConfig

// Resolve implements TableSource.
func (ts Tables) Resolve(name string) (core.TableConfig, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return core.TableConfig{}, false
}

// Static serves descriptors declared in configuration. It never touches
// the database.
type Static struct {
	tables TableSource
}

// NewStatic creates a Static over the tables that declare their columns.
func NewStatic(tables TableSource) *Static {
	return &Static{tables: tables}
}

func (s *Static) declared(table string) (core.TableConfig, bool) {
	if s == nil || s.tables == nil {
		return core.TableConfig{}, false
	}
	t, ok := s.tables.Resolve(table)
	return t, ok && len(t.Columns) > 0
}

// Has reports whether table has a declared shape.
func (s *Static) Has(table string) bool {
	_, ok := s.declared(table)
	return ok
}

// Describe builds the descriptor from the declared columns.
// Unknown tables yield an empty descriptor, like an empty catalog would.
func (s *Static) Describe(_ context.Context, table, primaryKey string) (*core.TableDescriptor, error) {
	t, ok := s.declared(table)
	if !ok {
		return Build(nil, table, primaryKey, nil)
	}

	cols := make([]core.Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = core.Column{
			Name:     c.Name,
			DataType: c.Type,
			Type:     core.ParseSQLType(c.Type),
			Nullable: c.Nullable,
			Position: i + 1,
		}
	}
	return Build(nil, table, primaryKey, cols)
}

// Catalog picks the static descriptor when a table declares its columns
// and falls back to live introspection otherwise. Declarations are read
// from the source on every call.
type Catalog struct {
	Static *Static
	Live   Loader
}

// NewCatalog creates a Catalog over the configured tables.
func NewCatalog(tables TableSource, live Loader) *Catalog {
	return &Catalog{Static: NewStatic(tables), Live: live}
}

// Describe implements Loader.
func (c *Catalog) Describe(ctx context.Context, table, primaryKey string) (*core.TableDescriptor, error) {
	if c.Static.Has(table) {
		return c.Static.Describe(ctx, table, primaryKey)
	}
	if c.Live == nil {
		return Build(nil, table, primaryKey, nil)
	}
	return c.Live.Describe(ctx, table, primaryKey)
}

var (
	_ TableSource = Tables(nil)
	_ Loader      = (*Static)(nil)
	_ Loader      = (*Catalog)(nil)
)
