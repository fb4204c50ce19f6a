package config

import "github.com/leapstack-labs/leapcrud/pkg/core"

// Default connection values, matching the equipment maintenance database.
const (
	DefaultTargetType = "postgres"
	DefaultHost       = "localhost"
	DefaultPort       = 5432
	DefaultDatabase   = "equipmentMaintanance"
)

// DefaultTables returns the tables exposed when the configuration lists none.
func DefaultTables() []core.TableConfig {
	return []core.TableConfig{
		{Name: "equipment", PrimaryKey: "equipment_id"},
		{Name: "personnel", PrimaryKey: "id_persona"},
		{Name: "schedules", PrimaryKey: "horarios_id"},
		{Name: "equipment_types", PrimaryKey: "codigo_tipo_equipo"},
		{Name: "skills", PrimaryKey: "codigo_habilidad"},
		{Name: "equipment_schedules", PrimaryKey: "equipment_id"},
		{Name: "personnel_skills", PrimaryKey: "id_persona"},
		{Name: "schedules_personnel", PrimaryKey: "horarios_id"},
		{Name: "schedules_skills", PrimaryKey: "horarios_id"},
	}
}

// DefaultTarget returns the target used when none is configured.
func DefaultTarget() *core.TargetConfig {
	return &core.TargetConfig{
		Type:     DefaultTargetType,
		Host:     DefaultHost,
		Port:     DefaultPort,
		Database: DefaultDatabase,
	}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}

	if t.Type == "" {
		t.Type = DefaultTargetType
	}

	// Apply default schema based on type
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	// Apply type-specific defaults
	if t.Type == "postgres" {
		if t.Host == "" {
			t.Host = DefaultHost
		}
		if t.Port == 0 {
			t.Port = DefaultPort
		}
	}
}
