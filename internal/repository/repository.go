// Package repository executes CRUD statements against the configured target.
//
// Every call coerces its parameters first, then opens a connection, runs
// exactly one statement and closes the connection again. Nothing is retried
// and nothing spans more than one statement.
package repository

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapcrud/internal/query"
	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// Repository runs statements built from table descriptors.
type Repository struct {
	open    adapter.Opener
	builder *query.Builder
	coercer coerce.Coercer
	logger  *slog.Logger
}

// New creates a Repository. Statements are rendered for d and executed on
// connections obtained from open.
func New(open adapter.Opener, d *dialect.Dialect, c coerce.Coercer, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		open:    open,
		builder: query.NewBuilder(d),
		coercer: c,
		logger:  logger,
	}
}

// FetchAll returns every row of the table ordered by primary key.
// An empty descriptor yields an empty RowSet.
func (r *Repository) FetchAll(ctx context.Context, desc *core.TableDescriptor) (*core.RowSet, error) {
	if desc.IsEmpty() {
		return &core.RowSet{}, nil
	}
	stmt, err := r.builder.Select(desc)
	if err != nil {
		return nil, err
	}

	a, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = a.Close() }()

	rows, err := a.Query(ctx, stmt.SQL)
	if err != nil {
		return nil, &core.QueryError{Op: "select", Table: desc.Name, Err: err}
	}
	defer func() { _ = rows.Close() }()

	set, err := scanRows(rows)
	if err != nil {
		return nil, &core.QueryError{Op: "select", Table: desc.Name, Err: err}
	}

	r.logger.Debug("fetched rows", slog.String("table", desc.Name), slog.Int("rows", set.Len()))
	return set, nil
}

// Insert adds one row from rec. Columns missing from rec are left to
// their database defaults.
func (r *Repository) Insert(ctx context.Context, desc *core.TableDescriptor, rec core.Record) (int64, error) {
	if desc.IsEmpty() {
		return 0, nil
	}
	fields, args, err := r.bindRecord(desc, rec, false)
	if err != nil {
		return 0, err
	}
	stmt, err := r.builder.Insert(desc, fields)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, "insert", desc, stmt, args)
}

// Update rewrites the row whose primary key is pkValue. A primary key
// entry in rec is ignored; the key is not editable.
func (r *Repository) Update(ctx context.Context, desc *core.TableDescriptor, pkValue string, rec core.Record) (int64, error) {
	if desc.IsEmpty() {
		return 0, nil
	}
	pkArg, err := r.bindKey(desc, pkValue)
	if err != nil {
		return 0, err
	}
	fields, args, err := r.bindRecord(desc, rec, true)
	if err != nil {
		return 0, err
	}
	stmt, err := r.builder.Update(desc, fields)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, "update", desc, stmt, append(args, pkArg))
}

// Delete removes the row whose primary key is pkValue.
func (r *Repository) Delete(ctx context.Context, desc *core.TableDescriptor, pkValue string) (int64, error) {
	if desc.IsEmpty() {
		return 0, nil
	}
	pkArg, err := r.bindKey(desc, pkValue)
	if err != nil {
		return 0, err
	}
	stmt, err := r.builder.Delete(desc)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, "delete", desc, stmt, []any{pkArg})
}

// exec runs one mutation. Zero rows affected is not an error.
func (r *Repository) exec(ctx context.Context, op string, desc *core.TableDescriptor, stmt *query.Statement, args []any) (int64, error) {
	a, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = a.Close() }()

	n, err := a.Exec(ctx, stmt.SQL, args...)
	if err != nil {
		return 0, &core.QueryError{Op: op, Table: desc.Name, Err: err}
	}

	r.logger.Debug("statement executed",
		slog.String("op", op),
		slog.String("table", desc.Name),
		slog.Int64("rows_affected", n))
	return n, nil
}

// bindRecord validates the keys of rec against desc and coerces the values
// in descriptor order. With skipKey the primary key entry is dropped.
func (r *Repository) bindRecord(desc *core.TableDescriptor, rec core.Record, skipKey bool) ([]core.FieldSpec, []any, error) {
	for name := range rec {
		if _, ok := desc.Column(name); !ok {
			return nil, nil, &core.ValidationError{Table: desc.Name, Column: name, Msg: "unknown column"}
		}
	}

	fields := make([]core.FieldSpec, 0, len(rec))
	args := make([]any, 0, len(rec)+1)
	for _, col := range desc.Columns {
		raw, ok := rec[col.Name]
		if !ok || (skipKey && col.PrimaryKey) {
			continue
		}
		v, err := r.coercer.CoerceColumn(raw, col)
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, core.FieldSpec{Column: col, Value: raw, Editable: true})
		args = append(args, v)
	}
	return fields, args, nil
}

// KeyValue coerces pkValue the way Update and Delete bind it.
func (r *Repository) KeyValue(desc *core.TableDescriptor, pkValue string) (any, error) {
	return r.bindKey(desc, pkValue)
}

func (r *Repository) bindKey(desc *core.TableDescriptor, pkValue string) (any, error) {
	pk, ok := desc.PrimaryKeyColumn()
	if !ok {
		return nil, desc.Validate()
	}
	if pkValue == "" {
		return nil, &core.ParseError{Column: pk.Name, Msg: "primary key value is required"}
	}
	return r.coercer.CoerceColumn(&pkValue, pk)
}
