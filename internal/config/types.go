// Package config provides shared configuration helpers for leapcrud.
// This package is decoupled from CLI concerns so the HTTP server can reload
// the table list without going through the command layer.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "main" as fallback.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok && d.DefaultSchema != "" {
		return d.DefaultSchema
	}
	return "main"
}

// ValidateTarget checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil {
		return fmt.Errorf("target is required")
	}
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	return nil
}

// ValidateTables checks that every table names itself and its primary key,
// that names are unique, and that static column declarations are complete.
func ValidateTables(tables []core.TableConfig) error {
	seen := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if t.PrimaryKey == "" {
			return fmt.Errorf("table %s: primary_key is required", t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("table %s: declared more than once", t.Name)
		}
		seen[t.Name] = true

		if len(t.Columns) == 0 {
			continue
		}
		hasKey := false
		for j, c := range t.Columns {
			if c.Name == "" {
				return fmt.Errorf("table %s: columns[%d]: name is required", t.Name, j)
			}
			if c.Type == "" {
				return fmt.Errorf("table %s: column %s: type is required", t.Name, c.Name)
			}
			if c.Name == t.PrimaryKey {
				hasKey = true
			}
		}
		if !hasKey {
			return fmt.Errorf("table %s: primary key %s is not among the declared columns", t.Name, t.PrimaryKey)
		}
	}
	return nil
}
