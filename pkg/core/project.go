package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // postgres, duckdb, sqlite

	// File-based databases (DuckDB, SQLite)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., DuckDB settings)
	Params map[string]any `koanf:"params"`
}

// AdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	return AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Database: t.Database,
		Schema:   t.Schema,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
		Params:   t.Params,
	}
}

// TableConfig names one table exposed for editing.
//
// Columns is optional. When set, the table's shape is taken from configuration
// instead of the database catalog.
type TableConfig struct {
	Name       string         `koanf:"name"`
	PrimaryKey string         `koanf:"primary_key"`
	Title      string         `koanf:"title"`
	Columns    []ColumnConfig `koanf:"columns"`
}

// ColumnConfig declares one column of a statically described table.
type ColumnConfig struct {
	Name     string `koanf:"name"`
	Type     string `koanf:"type"`
	Nullable bool   `koanf:"nullable"`
}
