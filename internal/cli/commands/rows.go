package commands

import (
	"github.com/spf13/cobra"
)

// NewRowsCommand creates the rows command.
func NewRowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <table>",
		Short: "Show every row of a table",
		Long: `Fetch a fresh snapshot of a table, ordered by its primary key.

Columns appear in catalog order. NULL values are shown as NULL in tables
and markdown, and as empty fields in CSV.`,
		Example: `  # Show all equipment
  leapcrud rows equipment

  # Export personnel as CSV
  leapcrud rows personnel -o csv > personnel.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			set, err := cmdCtx.Service.GetRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Table(set.Columns, set.Rows)
		},
	}
}
