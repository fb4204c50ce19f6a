package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "add <table>",
		Short: "Insert a record",
		Long: `Insert a record built from the table's add form.

Each --set assigns one column. Columns that are not set are inserted as
NULL, and an integer primary key is generated by the database.`,
		Example: `  leapcrud add equipment --set name=Lathe --set status=active --set purchased=2024-01-15`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if err := cmdCtx.Service.Add(cmd.Context(), args[0], values); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Record added to %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column value as column=value (repeatable)")

	return cmd
}

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "edit <table> <key>",
		Short: "Update a record by primary key",
		Long: `Update the record whose primary key is <key>.

The record is loaded first and only the columns given with --set change.
The primary key itself cannot be changed.`,
		Example: `  leapcrud edit equipment 1 --set status=repair`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 {
				return fmt.Errorf("nothing to change: pass at least one --set column=value")
			}
			values, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if err := cmdCtx.Service.Edit(cmd.Context(), args[0], args[1], values); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Record %s updated in %s", args[1], args[0]))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column value as column=value (repeatable)")

	return cmd
}
