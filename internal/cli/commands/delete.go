package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <table> <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a record by primary key",
		Long: `Delete the record whose primary key is <key>.

On a terminal you are asked to confirm. When input is not a terminal,
--yes is required.`,
		Example: `  leapcrud delete equipment 2
  leapcrud delete equipment 2 --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, key := args[0], args[1]

			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete record with key %s from %s?", key, table))
				if err != nil {
					return err
				}
				if !ok {
					cmdCtx.Renderer.Muted("Cancelled.")
					return nil
				}
			}

			if err := cmdCtx.Service.Remove(cmd.Context(), table, key); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Record %s deleted from %s", key, table))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// errNeedsConfirmation is returned when no prompt can be shown.
var errNeedsConfirmation = errors.New("refusing to delete without confirmation: input is not a terminal, pass --yes")

// confirm asks a y/N question on the command's input. Anything but y or yes
// declines. Redirected standard input cannot answer.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errNeedsConfirmation
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
