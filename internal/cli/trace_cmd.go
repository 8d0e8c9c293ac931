package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/contract"
)

func newTraceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect stored request traces",
	}

	get := &cobra.Command{
		Use:   "get <request-id>",
		Short: "Dump the raw trace for a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := app.Traces.Get(args[0])
			if tr == nil {
				return fmt.Errorf("trace %s not found or evicted", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTrace(tr))
			return nil
		},
	}

	report := &cobra.Command{
		Use:   "report <request-id>",
		Short: "Summarise a trace: dominant stage, direction story, pool story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app.Traces.Report(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatter.StyleHeader.Render("Report"), rep.RequestID)
			fmt.Fprintf(out, "  dominant stage: %s (%dms)\n", rep.DominantStage, rep.DominantMs)
			fmt.Fprintf(out, "  direction: %s\n", rep.DirectionStory)
			fmt.Fprintf(out, "  pool: %s\n", rep.PoolStory)
			return nil
		},
	}

	cmd.AddCommand(get, report)
	return cmd
}

func renderTrace(tr *contract.Trace) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", formatter.StyleHeader.Render("Trace"), tr.RequestID)
	if tr.EndTime != nil {
		fmt.Fprintf(&b, "  duration: %s\n", tr.EndTime.Sub(tr.StartTime).Round(0))
	} else {
		fmt.Fprintf(&b, "  %s\n", formatter.StyleYellow.Render("still open"))
	}

	l := tr.Latencies
	fmt.Fprintf(&b, "  stages: select %dms, pool %dms, constraints %dms, solve %dms, repair %dms\n",
		l.RdSelectMs, l.PoiPoolMs, l.ConstraintsInjectMs, l.PlanGenerateMs, l.RepairMs)

	q := tr.Quality
	fmt.Fprintf(&b, "  quality: direction %s, pool %d, hard hits %d, soft hits %d, repairs %d\n",
		q.SelectedRdID, q.PoolSize, q.HardHits, q.SoftHits, q.RepairActions)

	ev := tr.PoolEvolution
	fmt.Fprintf(&b, "  pool: %d -> %d -> %d -> %d\n",
		ev.Initial, ev.AfterRdFilter, ev.AfterConstraints, ev.Final)
	for _, f := range ev.Filters {
		fmt.Fprintf(&b, "    %s removed %d (%s)\n", f.Stage, f.Removed, f.Reason)
	}

	e := tr.Errors
	if e.CorridorGeomInvalid || e.PoiQueryTimeout || e.FallbackUsed || len(e.Messages) > 0 {
		b.WriteString("  " + formatter.StyleYellow.Render("degradations:") + "\n")
		if e.CorridorGeomInvalid {
			b.WriteString("    corridor geometry invalid\n")
		}
		if e.PoiQueryTimeout {
			b.WriteString("    poi query timed out\n")
		}
		if e.FallbackUsed {
			b.WriteString("    travel time fallback used\n")
		}
		for _, m := range e.Messages {
			fmt.Fprintf(&b, "    %s\n", m)
		}
	}
	return b.String()
}
