package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, path string) *Adapter {
	t.Helper()
	adp := New(nil)
	require.NoError(t, adp.Connect(context.Background(), core.AdapterConfig{Path: path}))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Columns(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, ":memory:")

	_, err := adp.Exec(ctx, `
		CREATE TABLE equipment (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			cost NUMERIC(10,2),
			in_service BOOLEAN,
			installed DATE
		)
	`)
	require.NoError(t, err)

	t.Run("known table", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "equipment")
		require.NoError(t, err)
		require.Len(t, cols, 5)

		assert.Equal(t, "id", cols[0].Name)
		assert.Equal(t, core.TypeInteger, cols[0].Type)
		assert.Equal(t, 1, cols[0].Position)

		assert.Equal(t, "name", cols[1].Name)
		assert.Equal(t, "VARCHAR(100)", cols[1].DataType)
		assert.Equal(t, core.TypeText, cols[1].Type)
		assert.False(t, cols[1].Nullable)

		assert.Equal(t, core.TypeNumeric, cols[2].Type)
		assert.True(t, cols[2].Nullable)
		assert.Equal(t, core.TypeBoolean, cols[3].Type)
		assert.Equal(t, core.TypeDate, cols[4].Type)
	})

	t.Run("schema qualified", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "main.equipment")
		require.NoError(t, err)
		assert.Len(t, cols, 5)
	})

	t.Run("unknown table", func(t *testing.T) {
		cols, err := adp.Columns(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, cols)
	})
}

func TestAdapter_FileSurvivesReconnect(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "maint.db")

	first := New(nil)
	require.NoError(t, first.Connect(ctx, core.AdapterConfig{Path: path}))
	_, err := first.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	n, err := first.Exec(ctx, "INSERT INTO t (name) VALUES (?)", "pump")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, first.Close())

	second := connect(t, path)
	rows, err := second.Query(ctx, "SELECT id, name FROM t")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var id int64
	var name string
	require.NoError(t, rows.Scan(&id, &name))
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "pump", name)
	require.NoError(t, rows.Err())
}

func TestAdapter_TimeArgsStoredAsDateText(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, ":memory:")

	_, err := adp.Exec(ctx, "CREATE TABLE log (id INTEGER PRIMARY KEY, day DATE, at TIMESTAMP)")
	require.NoError(t, err)
	_, err = adp.Exec(ctx, "INSERT INTO log (id, day, at) VALUES (?, ?, ?)",
		1, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2021, 3, 4, 13, 5, 9, 0, time.UTC))
	require.NoError(t, err)

	rows, err := adp.Query(ctx, "SELECT CAST(day AS TEXT), CAST(at AS TEXT) FROM log WHERE day = ?",
		time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var day, at string
	require.NoError(t, rows.Scan(&day, &at))
	assert.Equal(t, "2021-03-04", day)
	assert.Equal(t, "2021-03-04 13:05:09", at)
	require.NoError(t, rows.Err())
}

func TestBindArgs(t *testing.T) {
	args := []any{int64(1), "x"}
	assert.Equal(t, args, bindArgs(args))

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	in := []any{day, "x"}
	assert.Equal(t, []any{"2024-01-15", "x"}, bindArgs(in))
	assert.Equal(t, day, in[0])
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	_, err := adp.Columns(context.Background(), "t")
	require.Error(t, err)
	assert.NoError(t, adp.Close())
}

func TestAdapter_Dialect(t *testing.T) {
	d := New(nil).Dialect()
	assert.Equal(t, "sqlite", d.Name)
	assert.Equal(t, "main", d.DefaultSchema)
	assert.Equal(t, `"a""b"`, d.QuoteIdentifier(`a"b`))
}
