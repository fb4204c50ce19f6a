// Package sqlite provides a SQLite database adapter for LeapCRUD
// built on the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	litedialect "github.com/leapstack-labs/leapcrud/pkg/adapters/sqlite/dialect"
	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return litedialect.SQLite
}

// Connect opens the database file at cfg.Path.
// An empty path or ":memory:" opens a private in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// An in-memory database lives and dies with its single connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Exec runs a statement with time values bound as SQLite date text.
func (a *Adapter) Exec(ctx context.Context, sqlStr string, args ...any) (int64, error) {
	return a.BaseSQLAdapter.Exec(ctx, sqlStr, bindArgs(args)...)
}

// Query runs a query with time values bound as SQLite date text.
func (a *Adapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	return a.BaseSQLAdapter.Query(ctx, sqlStr, bindArgs(args)...)
}

// timestampLayout is the SQLite date-function form for values with a time of day.
const timestampLayout = "2006-01-02 15:04:05.999999999"

// bindArgs rewrites time.Time arguments as the text SQLite's date functions
// read. The driver would otherwise store Go's time.String form, so a DATE
// written back unchanged would no longer compare equal to '2021-03-04'.
func bindArgs(args []any) []any {
	var out []any
	for i, arg := range args {
		tm, ok := arg.(time.Time)
		if !ok {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		tm = tm.UTC()
		if tm.Equal(tm.Truncate(24 * time.Hour)) {
			out[i] = tm.Format(coerce.DateLayout)
		} else {
			out[i] = tm.Format(timestampLayout)
		}
	}
	if out == nil {
		return args
	}
	return out
}

// Columns reads column metadata through the pragma_table_info table function.
// SQLite has no information_schema.
func (a *Adapter) Columns(ctx context.Context, table string) ([]adapter.Column, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, name := adapter.ParseQualifiedName(table, a.Dialect())

	rows, err := a.DB.QueryContext(ctx,
		`SELECT name, type, "notnull", cid FROM pragma_table_info(?, ?) ORDER BY cid`,
		name, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var col core.Column
		var notNull, cid int
		if err := rows.Scan(&col.Name, &col.DataType, &notNull, &cid); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = notNull == 0
		col.Position = cid + 1
		col.Type = core.ParseSQLType(col.DataType)
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	return columns, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
