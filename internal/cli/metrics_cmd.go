package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/obs"
)

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show rolling planner metrics for this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Traces.Metrics()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatter.StyleHeader.Render("Metrics"))
			rows := [][]string{
				statsRow("plan latency ms", snap.Latency),
				statsRow("pool size", snap.PoolSize),
				statsRow("hard hits", snap.HardHits),
				statsRow("soft hits", snap.SoftHits),
				statsRow("repairs", snap.Repairs),
			}
			fmt.Fprint(out, formatter.RenderTable(
				[]string{"SERIES", "COUNT", "AVG", "P95", "P99"}, rows))

			if len(snap.Directions) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.StyleHeader.Render("Directions"))
				for _, id := range sortedKeys(snap.Directions) {
					fmt.Fprintf(out, "  %s %d\n", formatter.StyleBlue.Render(id), snap.Directions[id])
				}
			}
			if len(snap.Errors) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.StyleHeader.Render("Errors"))
				for _, code := range sortedKeys(snap.Errors) {
					fmt.Fprintf(out, "  %s %d\n", formatter.StyleRed.Render(code), snap.Errors[code])
				}
			}
			return nil
		},
	}
}

func statsRow(name string, s obs.Stats) []string {
	return []string{
		name,
		strconv.Itoa(s.Count),
		fmt.Sprintf("%.1f", s.Avg),
		fmt.Sprintf("%.1f", s.P95),
		fmt.Sprintf("%.1f", s.P99),
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
