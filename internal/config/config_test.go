package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	_ "github.com/leapstack-labs/leapcrud/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapcrud/pkg/adapters/sqlite"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchemaForType(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
	}{
		{"postgres", "public"},
		{"sqlite", "main"},
		{"unknown", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSchemaForType(tt.dbType))
		})
	}
}

func TestApplyTargetDefaults(t *testing.T) {
	t.Run("empty target becomes postgres", func(t *testing.T) {
		target := &core.TargetConfig{}
		ApplyTargetDefaults(target)
		assert.Equal(t, "postgres", target.Type)
		assert.Equal(t, "localhost", target.Host)
		assert.Equal(t, 5432, target.Port)
		assert.Equal(t, "public", target.Schema)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		target := &core.TargetConfig{Type: "postgres", Host: "db", Port: 6543, Schema: "maint"}
		ApplyTargetDefaults(target)
		assert.Equal(t, "db", target.Host)
		assert.Equal(t, 6543, target.Port)
		assert.Equal(t, "maint", target.Schema)
	})

	t.Run("sqlite gets no network defaults", func(t *testing.T) {
		target := &core.TargetConfig{Type: "sqlite", Database: "x.db"}
		ApplyTargetDefaults(target)
		assert.Empty(t, target.Host)
		assert.Zero(t, target.Port)
		assert.Equal(t, "main", target.Schema)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() { ApplyTargetDefaults(nil) })
	})
}

func TestValidateTarget(t *testing.T) {
	require.NoError(t, ValidateTarget(&core.TargetConfig{Type: "sqlite"}))
	require.NoError(t, ValidateTarget(&core.TargetConfig{Type: "Postgres"}))

	assert.Error(t, ValidateTarget(nil))
	assert.Error(t, ValidateTarget(&core.TargetConfig{}))

	err := ValidateTarget(&core.TargetConfig{Type: "oracle"})
	var unknown *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "oracle", unknown.Type)
}

func TestValidateTables(t *testing.T) {
	tests := []struct {
		name    string
		tables  []core.TableConfig
		wantErr string
	}{
		{name: "defaults", tables: DefaultTables()},
		{
			name:    "missing name",
			tables:  []core.TableConfig{{PrimaryKey: "id"}},
			wantErr: "tables[0]: name is required",
		},
		{
			name:    "missing key",
			tables:  []core.TableConfig{{Name: "equipment"}},
			wantErr: "primary_key is required",
		},
		{
			name: "duplicate",
			tables: []core.TableConfig{
				{Name: "equipment", PrimaryKey: "equipment_id"},
				{Name: "equipment", PrimaryKey: "equipment_id"},
			},
			wantErr: "declared more than once",
		},
		{
			name: "static columns without key",
			tables: []core.TableConfig{{
				Name:       "equipment",
				PrimaryKey: "equipment_id",
				Columns:    []core.ColumnConfig{{Name: "name", Type: "TEXT"}},
			}},
			wantErr: "not among the declared columns",
		},
		{
			name: "static column without type",
			tables: []core.TableConfig{{
				Name:       "equipment",
				PrimaryKey: "equipment_id",
				Columns:    []core.ColumnConfig{{Name: "equipment_id"}},
			}},
			wantErr: "type is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTables(tt.tables)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()

	t.Run("configured tables", func(t *testing.T) {
		path := filepath.Join(dir, ConfigFileName)
		content := `
tables:
  - name: equipment
    primary_key: equipment_id
    title: Machines
  - name: skills
    primary_key: codigo_habilidad
    columns:
      - name: codigo_habilidad
        type: VARCHAR(10)
      - name: descripcion
        type: TEXT
        nullable: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		tables, err := LoadTables(path)
		require.NoError(t, err)
		require.Len(t, tables, 2)
		assert.Equal(t, "Machines", tables[0].Title)
		require.Len(t, tables[1].Columns, 2)
		assert.True(t, tables[1].Columns[1].Nullable)
	})

	t.Run("no tables falls back to defaults", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o600))

		tables, err := LoadTables(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultTables(), tables)
	})

	t.Run("invalid tables", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: equipment\n"), 0o600))

		_, err := LoadTables(path)
		assert.ErrorContains(t, err, "primary_key is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTables(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("{}\n"), 0o600))

	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Empty(t, FindProjectRoot(nested, 1))
}
