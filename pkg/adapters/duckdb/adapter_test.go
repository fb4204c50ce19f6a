package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				tmpDir := t.TempDir()
				return filepath.Join(tmpDir, "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_ConnectAppliesSettings(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	cfg := core.AdapterConfig{
		Path:   ":memory:",
		Params: map[string]any{"settings": map[string]any{"threads": 2}},
	}
	require.NoError(t, adp.Connect(ctx, cfg))
	defer func() { _ = adp.Close() }()

	rows, err := adp.Query(ctx, "SELECT current_setting('threads')")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var threads string
	require.NoError(t, rows.Scan(&threads))
	assert.Equal(t, "2", threads)
}

func TestAdapter_ConnectRejectsBadParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), core.AdapterConfig{
		Path:   ":memory:",
		Params: map[string]any{"bogus": true},
	})
	require.Error(t, err)
	assert.Nil(t, adp.DB)
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Exec(ctx, "SELECT 1")
				return err
			},
		},
		{
			name: "query without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Query(ctx, "SELECT 1")
				return err
			},
		},
		{
			name: "columns without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Columns(ctx, "equipment")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			err := tt.operation(ctx, adp)
			assert.Error(t, err, "expected error when operating without connection")
		})
	}
}

func TestAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
	}{
		{"close without connect", false},
		{"close after connect", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			if tt.connect {
				require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
			}

			assert.NoError(t, adp.Close())
		})
	}
}

func TestAdapter_Columns(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()

	_, err := adp.Exec(ctx, `
		CREATE TABLE equipment (
			id INTEGER PRIMARY KEY,
			name VARCHAR,
			active BOOLEAN NOT NULL,
			purchased DATE
		)
	`)
	require.NoError(t, err)

	t.Run("known table", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "equipment")
		require.NoError(t, err)
		require.Len(t, cols, 4)

		assert.Equal(t, "id", cols[0].Name)
		assert.Equal(t, core.TypeInteger, cols[0].Type)
		assert.Equal(t, "name", cols[1].Name)
		assert.Equal(t, core.TypeText, cols[1].Type)
		assert.True(t, cols[1].Nullable)
		assert.Equal(t, core.TypeBoolean, cols[2].Type)
		assert.False(t, cols[2].Nullable)
		assert.Equal(t, core.TypeDate, cols[3].Type)
		assert.Equal(t, 4, cols[3].Position)
	})

	t.Run("schema qualified", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "main.equipment")
		require.NoError(t, err)
		assert.Len(t, cols, 4)
	})

	t.Run("unknown table", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, cols)
	})
}

func TestAdapter_ExecRowsAffected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()

	_, err := adp.Exec(ctx, "CREATE TABLE t (id INTEGER, name VARCHAR)")
	require.NoError(t, err)

	n, err := adp.Exec(ctx, "INSERT INTO t VALUES (?, ?), (?, ?)", 1, "a", 2, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = adp.Exec(ctx, `UPDATE t SET name = ? WHERE id = ?`, "c", 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestAdapter_Dialect(t *testing.T) {
	adp := New(nil)
	d := adp.Dialect()
	require.NotNil(t, d)
	assert.Equal(t, "duckdb", d.Name)
	assert.Equal(t, "main", d.DefaultSchema)
	assert.Equal(t, "?", d.FormatPlaceholder(3))
}
