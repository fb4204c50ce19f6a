package commands

import (
	"context"
	"strings"

	"github.com/leapstack-labs/leapcrud/internal/api"
	"github.com/leapstack-labs/leapcrud/internal/cli/config"
	intconfig "github.com/leapstack-labs/leapcrud/internal/config"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr  string
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tables over a JSON HTTP API",
		Long: `Start an HTTP server exposing the configured tables:

  GET    /api/tables
  GET    /api/tables/{table}/rows
  GET    /api/tables/{table}/fields[?key=K]
  POST   /api/tables/{table}/records
  PUT    /api/tables/{table}/records/{key}
  DELETE /api/tables/{table}/records/{key}

With --watch the table list is reloaded whenever the config file changes.`,
		Example: `  # Serve on the default address
  leapcrud serve

  # Serve on all interfaces and follow config edits
  leapcrud serve --addr :8080 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Address to listen on (default: "+config.DefaultServeAddr+")")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload the table list when the config file changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// CLI flags override config file
	addr := cfg.Serve.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	watch := cfg.Serve.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	configPath := config.GetConfigFileUsed()
	if watch && configPath == "" {
		r.Warning("--watch needs a config file; the table list will not be reloaded")
		watch = false
	}

	server := api.NewServer(api.Config{
		Service:    cmdCtx.Service,
		Tables:     cmdCtx.Service.Tables(),
		Addr:       addr,
		Logger:     cmdCtx.Logger,
		Watch:      watch,
		ConfigPath: configPath,
		Reload:     tableReloader(configPath, cfg.Target),
	})

	r.Printf("Serving %d tables on http://%s\n", cmdCtx.Service.Tables().Count(), displayAddr(addr))
	r.Muted("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// tableReloader re-reads the table list from path, qualified the same way
// as at startup.
func tableReloader(path string, target *core.TargetConfig) func() ([]core.TableConfig, error) {
	defaultSchema := intconfig.DefaultSchemaForType(strings.ToLower(target.Type))
	return func() ([]core.TableConfig, error) {
		tables, err := intconfig.LoadTables(path)
		if err != nil {
			return nil, err
		}
		return QualifyTables(tables, target.Schema, defaultSchema), nil
	}
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
