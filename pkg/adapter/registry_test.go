package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unreachableAdapter struct {
	BaseSQLAdapter
}

func (a *unreachableAdapter) Connect(context.Context, Config) error {
	return errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
}

func (a *unreachableAdapter) Columns(context.Context, string) ([]Column, error) {
	return nil, nil
}

func (a *unreachableAdapter) Dialect() *dialect.Dialect {
	return dialect.NewDialect("unreachable").Build()
}

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()

	assert.Contains(t, msg, "fake_db", "error should mention the unknown type 'fake_db'")
	assert.Contains(t, msg, "leapcrud.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_adapter_internal", func(_ *slog.Logger) Adapter { return nil })

	assert.True(t, IsRegistered("test_adapter_internal"), "test_adapter_internal should be registered after Register()")

	factory, ok := Get("test_adapter_internal")
	assert.True(t, ok, "Get(test_adapter_internal) should return true after Register()")
	assert.NotNil(t, factory, "Get(test_adapter_internal) should return non-nil factory")
	assert.Contains(t, ListAdapters(), "test_adapter_internal")
}

func TestNewAdapter_EmptyType(t *testing.T) {
	_, err := NewAdapter(Config{Type: ""}, nil)
	require.Error(t, err, "NewAdapter with empty type should fail")
	assert.Equal(t, "adapter type not specified", err.Error(), "error message")
}

func TestNewAdapter_UnknownType(t *testing.T) {
	_, err := NewAdapter(Config{Type: "oracle"}, nil)
	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "oracle", unknown.Type)
}

func TestOpen_ConnectionFailure(t *testing.T) {
	Register("test_unreachable", func(_ *slog.Logger) Adapter { return &unreachableAdapter{} })

	cfg := Config{Type: "test_unreachable", Host: "db.internal", Port: 5432, Database: "maint", Password: "secret"}
	_, err := NewOpener(cfg, nil)(context.Background())
	require.Error(t, err)

	var connErr *core.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "test_unreachable://db.internal:5432/maint", connErr.Target)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, err.Error(), "secret")
}

func TestDescribeTarget(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"network", Config{Type: "postgres", Host: "localhost", Port: 5432, Database: "maint"}, "postgres://localhost:5432/maint"},
		{"network without port", Config{Type: "postgres", Host: "db", Database: "maint"}, "postgres://db/maint"},
		{"file", Config{Type: "sqlite", Path: "maint.db"}, "sqlite:maint.db"},
		{"bare", Config{Type: "duckdb"}, "duckdb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeTarget(tt.cfg))
		})
	}
}
