package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapcrud/internal/cli/config"
	"github.com/leapstack-labs/leapcrud/internal/cli/output"
	"github.com/leapstack-labs/leapcrud/internal/registry"
	"github.com/leapstack-labs/leapcrud/internal/repository"
	"github.com/leapstack-labs/leapcrud/internal/schema"
	"github.com/leapstack-labs/leapcrud/internal/service"
	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Service  *service.Service
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with service and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx, err := NewCommandContextWithoutService(cmd)
	if err != nil {
		return nil, err
	}

	svc, err := BuildService(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Service = svc
	return cmdCtx, nil
}

// NewCommandContextWithoutService creates a CommandContext without a service.
// Useful for commands that don't need database access.
func NewCommandContextWithoutService(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// BuildService wires the adapter, schema catalog, repository and table
// registry for the configured target.
func BuildService(cfg *config.Config, logger *slog.Logger) (*service.Service, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("no target configured")
	}
	dbType := strings.ToLower(cfg.Target.Type)
	d, ok := dialect.Get(dbType)
	if !ok {
		return nil, &adapter.UnknownAdapterError{Type: cfg.Target.Type, Available: adapter.ListAdapters()}
	}

	target := cfg.Target.AdapterConfig()
	target.Type = dbType
	open := adapter.NewOpener(target, logger)

	tables := registry.NewTableRegistry(
		QualifyTables(cfg.Tables, cfg.Target.Schema, d.DefaultSchema),
		registry.WithDialect(d))
	// The catalog reads declared columns through the registry, so a reload
	// under serve --watch reaches both.
	catalog := schema.NewCatalog(tables, schema.NewIntrospector(open, logger))
	repo := repository.New(open, d, coerce.Coercer{LenientBooleans: cfg.Coercion.LenientBooleans}, logger)

	logger.Debug("service ready",
		slog.String("target", adapter.DescribeTarget(target)),
		slog.Int("tables", tables.Count()))

	return service.New(tables, catalog, repo, logger), nil
}

// QualifyTables prefixes unqualified table names with targetSchema when it
// differs from the dialect's default schema.
func QualifyTables(tables []core.TableConfig, targetSchema, defaultSchema string) []core.TableConfig {
	out := make([]core.TableConfig, len(tables))
	copy(out, tables)
	if targetSchema == "" || targetSchema == defaultSchema {
		return out
	}
	for i := range out {
		if !strings.Contains(out[i].Name, ".") {
			out[i].Name = targetSchema + "." + out[i].Name
		}
	}
	return out
}

// getConfig returns the configuration loaded by the root command,
// loading it from the working directory when the command runs standalone.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Root().PersistentFlags())
}

// parseAssignments turns repeated col=value flags into a record.
// "col=" submits an empty value, which every column type reads as NULL.
func parseAssignments(sets []string) (core.Record, error) {
	rec := make(core.Record, len(sets))
	for _, s := range sets {
		col, val, ok := strings.Cut(s, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q (expected column=value)", s)
		}
		if _, dup := rec[col]; dup {
			return nil, fmt.Errorf("column %s is set more than once", col)
		}
		rec[col] = core.Text(val)
	}
	return rec, nil
}
