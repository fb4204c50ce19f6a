// Package adapter provides the database adapter contract and the shared
// database/sql plumbing used by every concrete adapter.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves by name from their init() functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// Type aliases so adapter implementations only import this package.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
// An adapter holds one open connection; callers connect, run a single
// operation and close it again.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a statement that doesn't return rows and reports the
	// number of rows affected.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Query executes a statement that returns rows.
	// The caller must close the returned rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Columns lists the columns of a table in catalog order. An unknown
	// table yields an empty slice and no error.
	Columns(ctx context.Context, table string) ([]Column, error)

	// Dialect returns the SQL dialect used to build statements for this adapter.
	Dialect() *dialect.Dialect
}
