package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapcrud/internal/testutil"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	svc, tables := newTestService(t)
	srv := NewServer(Config{Service: svc, Tables: tables, Logger: testutil.NewTestLogger(t)})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/api/tables", ln.Addr()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_WatchReloadsTables(t *testing.T) {
	svc, tables := newTestService(t)

	cfgPath := filepath.Join(t.TempDir(), "leapcrud.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tables: []\n"), 0o600))

	reloaded := []core.TableConfig{{Name: "skills", PrimaryKey: "codigo_habilidad"}}
	srv := NewServer(Config{
		Service:    svc,
		Tables:     tables,
		Logger:     testutil.NewTestLogger(t),
		Watch:      true,
		ConfigPath: cfgPath,
		Reload:     func() ([]core.TableConfig, error) { return reloaded, nil },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.watchConfig(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(cfgPath, []byte("tables:\n  - name: skills\n"), 0o600))

	assert.Eventually(t, func() bool {
		_, ok := tables.Resolve("skills")
		return ok
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, 1, tables.Count())

	cancel()
	require.NoError(t, <-done)
}

func TestServer_ReloadFailureKeepsTables(t *testing.T) {
	_, tables := newTestService(t)
	srv := NewServer(Config{
		Tables: tables,
		Reload: func() ([]core.TableConfig, error) { return nil, fmt.Errorf("bad yaml") },
	})

	srv.reloadTables()
	assert.Equal(t, 3, tables.Count())
}

func TestServer_ReloadAppliesDeclaredColumns(t *testing.T) {
	svc, tables := newTestService(t)
	ctx := context.Background()

	fields, err := svc.GetEditableFields(ctx, "equipment", nil)
	require.NoError(t, err)
	require.Len(t, fields, 5, "live catalog before reload")

	srv := NewServer(Config{
		Service: svc,
		Tables:  tables,
		Logger:  testutil.NewTestLogger(t),
		Reload: func() ([]core.TableConfig, error) {
			return []core.TableConfig{{
				Name:       "equipment",
				PrimaryKey: "equipment_id",
				Columns: []core.ColumnConfig{
					{Name: "equipment_id", Type: "integer"},
					{Name: "name", Type: "text"},
				},
			}}, nil
		},
	})
	srv.reloadTables()

	fields, err = svc.GetEditableFields(ctx, "equipment", nil)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Column.Name)
}
