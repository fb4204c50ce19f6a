// Package schema derives table descriptors, either from the live database
// catalog or from columns declared in configuration.
package schema

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// Loader describes a table.
//
// An empty descriptor with a nil error means the table has no columns;
// callers treat it as a no-op.
type Loader interface {
	Describe(ctx context.Context, table, primaryKey string) (*core.TableDescriptor, error)
}

// Introspector reads table shapes from the database catalog.
type Introspector struct {
	open   adapter.Opener
	logger *slog.Logger
}

// NewIntrospector creates an Introspector that opens one connection per call.
func NewIntrospector(open adapter.Opener, logger *slog.Logger) *Introspector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Introspector{open: open, logger: logger}
}

// Describe queries the catalog for the columns of table in catalog order.
// A table the catalog does not know under its configured spelling is looked
// up again under the name the database folds it to.
func (i *Introspector) Describe(ctx context.Context, table, primaryKey string) (*core.TableDescriptor, error) {
	a, err := i.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = a.Close() }()

	d := a.Dialect()
	cols, err := a.Columns(ctx, table)
	if err == nil && len(cols) == 0 {
		if folded := FoldName(d, table); folded != table {
			cols, err = a.Columns(ctx, folded)
			if len(cols) > 0 {
				table = folded
			}
		}
	}
	if err != nil {
		return nil, &core.QueryError{Op: "describe", Table: table, Err: err}
	}

	i.logger.Debug("introspected table",
		slog.String("table", table),
		slog.Int("columns", len(cols)))

	return Build(d, table, primaryKey, cols)
}

// Build tags the primary key among cols and validates the result.
// The key is matched exactly first, then as d folds unquoted names, and the
// descriptor takes the column's own spelling. A nil d matches exactly.
// The primary key is auto-generated iff it is integer-family.
func Build(d *dialect.Dialect, table, primaryKey string, cols []core.Column) (*core.TableDescriptor, error) {
	schemaName, name := SplitName(table)
	desc := &core.TableDescriptor{
		Schema:     schemaName,
		Name:       name,
		PrimaryKey: primaryKey,
	}
	if len(cols) == 0 {
		return desc, nil
	}

	if match, ok := matchColumn(d, cols, primaryKey); ok {
		desc.PrimaryKey = match
	}

	desc.Columns = make([]core.Column, len(cols))
	for idx, c := range cols {
		c.PrimaryKey = c.Name == desc.PrimaryKey
		c.AutoGenerated = c.PrimaryKey && c.Type.IsInteger()
		if c.Position == 0 {
			c.Position = idx + 1
		}
		desc.Columns[idx] = c
	}

	if _, ok := desc.PrimaryKeyColumn(); !ok {
		return nil, &core.SchemaError{
			Table: table,
			Msg:   fmt.Sprintf("primary key column %q not found", primaryKey),
		}
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

func matchColumn(d *dialect.Dialect, cols []core.Column, name string) (string, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c.Name, true
		}
	}
	want := d.NormalizeName(name)
	for _, c := range cols {
		if d.NormalizeName(c.Name) == want {
			return c.Name, true
		}
	}
	return "", false
}

// FoldName applies d's folding to each part of a possibly qualified name.
func FoldName(d *dialect.Dialect, table string) string {
	schemaName, name := SplitName(table)
	if schemaName == "" {
		return d.NormalizeName(name)
	}
	return d.NormalizeName(schemaName) + "." + d.NormalizeName(name)
}

// SplitName separates an optional schema qualifier from a table name.
func SplitName(table string) (schema, name string) {
	if s, n, ok := strings.Cut(table, "."); ok {
		return s, n
	}
	return "", table
}

// Ensure Introspector implements Loader
var _ Loader = (*Introspector)(nil)
