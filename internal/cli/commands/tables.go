package commands

import (
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables available for editing",
		Long: `List the configured tables with their primary key and display title.

The list comes from the tables section of leapcrud.yaml, or the default
equipment maintenance tables when none are configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			refs := cmdCtx.Service.ListTables()
			rows := make([][]any, len(refs))
			for i, ref := range refs {
				rows[i] = []any{ref.Name, ref.Title, ref.PrimaryKey}
			}
			return cmdCtx.Renderer.Table([]string{"name", "title", "primary_key"}, rows)
		},
	}
}
