package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
)

func newPoisCmd(app *App) *cobra.Command {
	var (
		directionID string
		buffer      float64
		regions     []string
	)

	cmd := &cobra.Command{
		Use:   "pois",
		Short: "Generate the activity candidate pool for a direction",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Directions.Get(cmd.Context(), directionID)
			if err != nil {
				return err
			}
			pool, err := app.Candidates.Generate(cmd.Context(), d, regions, buffer)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPool(d, pool))
			return nil
		},
	}

	cmd.Flags().StringVar(&directionID, "direction", "", "route direction id (required)")
	cmd.Flags().Float64Var(&buffer, "buffer", 0, "corridor buffer override in meters")
	cmd.Flags().StringSliceVar(&regions, "regions", nil, "restrict the pool to these regions")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

func renderPool(d *domain.RouteDirection, pool []domain.ActivityCandidate) string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("Pool"))
	fmt.Fprintf(&b, "  %s: %d candidates\n\n", formatter.StyleBlue.Render(d.ID), len(pool))

	rows := make([][]string, 0, len(pool))
	for _, c := range pool {
		mark := ""
		if c.MustSee {
			mark = formatter.StyleRed.Render("★")
		}
		rows = append(rows, []string{
			c.Name,
			c.Type,
			string(c.Priority),
			mark,
			strconv.Itoa(c.DurationMin) + "m",
			formatter.RiskIndicator(c.RiskLevel),
			fmt.Sprintf("%.2f", c.QualityScore),
		})
	}
	b.WriteString(formatter.RenderTable(
		[]string{"NAME", "TYPE", "PRIO", "MUST", "DUR", "RISK", "QUALITY"}, rows))
	return b.String()
}
