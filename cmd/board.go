package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/internal/ui"
)

func newBoardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board <file>",
		Short: "Show a live board for a project file",
		Long: `Open an interactive board for a project file. Status counts, items and
validation errors are refreshed whenever the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			v, err := newValidator(a)
			if err != nil {
				return err
			}
			return ui.RunBoard(cmd.Context(), args[0], ui.WithValidator(v))
		},
	}
}
