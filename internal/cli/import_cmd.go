package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dataset.json>",
		Short: "Import a curated dataset of directions and places",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Import.ImportDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d place(s), %d direction(s)\n",
				formatter.StyleGreen.Render("OK"), summary.Places, summary.Directions)
			return nil
		},
	}
}
