package testutil

import (
	"database/sql"
	"embed"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // sqlite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// EquipmentTables lists the fixture tables with their primary keys.
var EquipmentTables = []core.TableConfig{
	{Name: "equipment", PrimaryKey: "equipment_id"},
	{Name: "equipment_types", PrimaryKey: "codigo_tipo_equipo"},
	{Name: "personnel", PrimaryKey: "id_persona"},
}

// NewFixtureDB creates a sqlite file in a temp dir, migrates the equipment
// maintenance schema into it, and returns the adapter config for it.
// Two equipment rows are seeded: (1, Lathe) and (2, Press).
func NewFixtureDB(t testing.TB) core.AdapterConfig {
	t.Helper()

	path := filepath.Join(t.TempDir(), "maintenance.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		t.Fatalf("failed to set dialect: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		t.Fatalf("failed to run fixture migrations: %v", err)
	}

	return core.AdapterConfig{Type: "sqlite", Path: path}
}
