// Package config provides configuration management for the leapcrud CLI.
//
// This package extends the shared configuration types from pkg/core
// with CLI-specific fields and functionality. The shared types (TargetConfig,
// TableConfig) are defined in pkg/core and re-exported here via
// type aliases for convenience.
package config

import (
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// TableConfig is an alias for the shared table configuration.
type TableConfig = core.TableConfig

// CoercionConfig tunes how submitted text is converted to column values.
type CoercionConfig struct {
	// LenientBooleans accepts 1/0, yes/no, on/off and t/f in addition to true/false.
	LenientBooleans bool `koanf:"lenient_booleans"`
}

// ServeConfig holds configuration for the HTTP server.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// Config holds all CLI configuration options.
type Config struct {
	Environment  string               `koanf:"environment"`
	Verbose      bool                 `koanf:"verbose"`
	OutputFormat string               `koanf:"output"`
	Target       *TargetConfig        `koanf:"target"`
	Tables       []TableConfig        `koanf:"tables"`
	Coercion     CoercionConfig       `koanf:"coercion"`
	Serve        ServeConfig          `koanf:"serve"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
	Tables []TableConfig `koanf:"tables"`
}

// Default configuration values.
const (
	DefaultEnv       = "dev"
	DefaultOutput    = "auto" // Auto-detect: TTY=table, non-TTY=markdown
	DefaultServeAddr = "127.0.0.1:8080"
)
