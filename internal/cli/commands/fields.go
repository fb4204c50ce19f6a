package commands

import (
	"github.com/leapstack-labs/leapcrud/internal/cli/output"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/spf13/cobra"
)

// fieldColumns are the headers of the fields listing.
var fieldColumns = []string{"column", "type", "nullable", "primary_key", "editable", "value"}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "fields <table>",
		Short: "Show the add or edit form of a table",
		Long: `Show the input fields of a table.

Without --key this is the add form: an integer primary key is generated by
the database and is left out. With --key the row with that primary key is
loaded and its current values are shown; the primary key is read-only.`,
		Example: `  # Fields for a new equipment record
  leapcrud fields equipment

  # Current values of equipment 1
  leapcrud fields equipment --key 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			var fields []core.FieldSpec
			if cmd.Flags().Changed("key") {
				fields, err = cmdCtx.Service.FieldsForKey(cmd.Context(), args[0], key)
			} else {
				fields, err = cmdCtx.Service.GetEditableFields(cmd.Context(), args[0], nil)
			}
			if err != nil {
				return err
			}
			return renderFields(cmdCtx.Renderer, fields)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Primary key of the record to edit")

	return cmd
}

func renderFields(r *output.Renderer, fields []core.FieldSpec) error {
	rows := make([][]any, len(fields))
	for i, f := range fields {
		var value any
		if f.Value != nil {
			value = *f.Value
		}
		rows[i] = []any{
			f.Column.Name,
			f.Column.Type.String(),
			yesNo(f.Column.Nullable),
			yesNo(f.Column.PrimaryKey),
			yesNo(f.Editable),
			value,
		}
	}
	return r.Table(fieldColumns, rows)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
