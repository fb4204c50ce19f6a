package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "custom port",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     5433,
				Database: "maintenance",
				Username: "tech",
			},
			expected: "host=db.example.com port=5433 dbname=maintenance sslmode=disable user=tech",
		},
		{
			name: "values with spaces and quotes",
			config: adapter.Config{
				Database: "shop floor",
				Username: "tech",
				Password: `it's a \secret`,
			},
			expected: `host=localhost port=5432 dbname='shop floor' sslmode=disable user=tech password='it\'s a \\secret'`,
		},
		{
			name: "extra options in key order",
			config: adapter.Config{
				Database: "mydb",
				Options:  map[string]string{"sslmode": "require", "connect_timeout": "5", "application_name": "leapcrud"},
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=require application_name=leapcrud connect_timeout=5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildPostgresDSN(tt.config)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestBuildPostgresDSN_ParsesBack(t *testing.T) {
	cfg := adapter.Config{
		Host:     "db.example.com",
		Database: "shop floor",
		Username: "o'brien",
		Password: `p@ss word'with\slash`,
	}

	parsed, err := pgx.ParseConfig(buildPostgresDSN(cfg))
	require.NoError(t, err)
	assert.Equal(t, "db.example.com", parsed.Host)
	assert.Equal(t, "shop floor", parsed.Database)
	assert.Equal(t, "o'brien", parsed.User)
	assert.Equal(t, `p@ss word'with\slash`, parsed.Password)
}

func TestAdapter_Dialect(t *testing.T) {
	adp := New(nil)
	d := adp.Dialect()
	require.NotNil(t, d)
	assert.Equal(t, "postgres", d.Name)
	assert.Equal(t, "public", d.DefaultSchema)
	assert.Equal(t, "$2", d.FormatPlaceholder(2))
	assert.Equal(t, `"order"`, d.QuoteIdentifier("order"))
	assert.Equal(t, "equipment_id", d.NormalizeName("Equipment_ID"))
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	_, err := adp.Exec(ctx, "SELECT 1")
	require.Error(t, err)

	_, err = adp.Query(ctx, "SELECT 1")
	require.Error(t, err)

	_, err = adp.Columns(ctx, "equipment")
	require.Error(t, err)

	assert.NoError(t, adp.Close())
}
