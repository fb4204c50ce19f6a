package config

import (
	"fmt"

	intconfig "github.com/leapstack-labs/leapcrud/internal/config"
)

// validOutputs lists the accepted values of the output setting.
var validOutputs = map[string]bool{
	"":         true,
	"auto":     true,
	"table":    true,
	"text":     true,
	"json":     true,
	"csv":      true,
	"markdown": true,
	"yaml":     true,
}

// DefaultSchemaForType returns the default schema for a database type.
// This is a convenience wrapper that delegates to the shared config function.
func DefaultSchemaForType(dbType string) string {
	return intconfig.DefaultSchemaForType(dbType)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q (expected auto, table, json, csv, markdown or yaml)", c.OutputFormat)
	}
	if err := intconfig.ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if err := intconfig.ValidateTables(c.Tables); err != nil {
		return fmt.Errorf("invalid tables configuration: %w", err)
	}
	return nil
}
