package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

func newDirectionsCmd(app *App) *cobra.Command {
	var (
		country   string
		monthFlag int
		prefs     []string
		pace      string
		risk      string
		userID    string
	)

	cmd := &cobra.Command{
		Use:   "directions",
		Short: "Rank route directions for a country and intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.SelectRequest{
				CountryCode: country,
				Intent: contract.DirectionIntent{
					Preferences:   prefs,
					Pace:          domain.UserPace(pace),
					RiskTolerance: domain.RiskTolerance(risk),
				},
			}
			if monthFlag >= 1 && monthFlag <= 12 {
				m := monthFlag
				req.Month = &m
			}
			if userID != "" {
				req.Identity = &contract.Identity{UserID: userID}
			}

			resp, err := app.Directions.Select(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDirections(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "destination country code (required)")
	cmd.Flags().IntVar(&monthFlag, "month", 0, "travel month 1-12")
	cmd.Flags().StringSliceVar(&prefs, "prefs", nil, "preference tags")
	cmd.Flags().StringVar(&pace, "pace", "moderate", "pace: relaxed, moderate, intense")
	cmd.Flags().StringVar(&risk, "risk", "", "risk tolerance: low, medium, high")
	cmd.Flags().StringVar(&userID, "user", "", "user id for gray-release gating")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func renderDirections(resp contract.SelectResponse) string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("Recommended"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(resp.Recommendations))
	for i, rec := range resp.Recommendations {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.DirectionID,
			rec.Name,
			fmt.Sprintf("%.1f", rec.Score),
			fmt.Sprintf("%.0f", rec.Breakdown.TagMatch.Score),
			fmt.Sprintf("%.0f", rec.Breakdown.Seasonality.Score),
			fmt.Sprintf("%.0f", rec.Breakdown.Pace.Score),
			fmt.Sprintf("%.0f", rec.Breakdown.Risk.Score),
		})
	}
	b.WriteString(formatter.RenderTable(
		[]string{"#", "ID", "NAME", "SCORE", "TAG", "SEASON", "PACE", "RISK"}, rows))

	for _, rec := range resp.Recommendations {
		if len(rec.Signals.MatchedTags) > 0 {
			fmt.Fprintf(&b, "  %s matched: %s\n",
				formatter.StyleDim.Render(rec.DirectionID),
				strings.Join(rec.Signals.MatchedTags, ", "))
		}
	}

	if len(resp.Rejected) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.StyleHeader.Render("Rejected"))
		b.WriteString("\n")
		for _, rej := range resp.Rejected {
			fmt.Fprintf(&b, "  %s %s (%.1f) weakest on %s\n",
				formatter.StyleYellow.Render(rej.DirectionID),
				rej.Name, rej.Score, rej.PrimaryReason)
		}
	}
	return b.String()
}
