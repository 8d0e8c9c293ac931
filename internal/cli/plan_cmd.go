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

func newPlanCmd(app *App) *cobra.Command {
	var (
		country   string
		monthFlag int
		prefs     []string
		pace      string
		risk      string
		originStr string
		dayStr    string
		timezone  string
		userID    string
		maxStops  int
		lunchStr  string
		regions   []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan one day end to end: direction, pool, matrix, solve",
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parsePoint(originStr)
			if err != nil {
				return err
			}
			dayStart, dayEnd, err := parseDayWindow(dayStr)
			if err != nil {
				return err
			}

			req := contract.PlanRequest{
				CountryCode: country,
				Intent: contract.DirectionIntent{
					Preferences:   prefs,
					Pace:          domain.UserPace(pace),
					RiskTolerance: domain.RiskTolerance(risk),
				},
				Origin:   origin,
				DayStart: dayStart,
				DayEnd:   dayEnd,
				Timezone: timezone,
				Pacing:   domain.UserPace(pace),
				Regions:  regions,
				MaxStops: maxStops,
			}
			if monthFlag >= 1 && monthFlag <= 12 {
				m := monthFlag
				req.Month = &m
			}
			if userID != "" {
				req.Identity = &contract.Identity{UserID: userID}
			}
			if lunchStr != "" {
				lunch, err := parseLunch(lunchStr)
				if err != nil {
					return err
				}
				req.Lunch = lunch
			}

			resp, err := app.Plan.PlanDay(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPlan(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "destination country code (required)")
	cmd.Flags().IntVar(&monthFlag, "month", 0, "travel month 1-12")
	cmd.Flags().StringSliceVar(&prefs, "prefs", nil, "preference tags")
	cmd.Flags().StringVar(&pace, "pace", "moderate", "pace: relaxed, moderate, intense")
	cmd.Flags().StringVar(&risk, "risk", "", "risk tolerance: low, medium, high")
	cmd.Flags().StringVar(&originStr, "origin", "", "day origin as lat,lng (required)")
	cmd.Flags().StringVar(&dayStr, "day", "09:00-18:00", "day window as HH:MM-HH:MM")
	cmd.Flags().StringVar(&timezone, "tz", "UTC", "IANA timezone of the day")
	cmd.Flags().StringVar(&userID, "user", "", "user id for gray-release gating")
	cmd.Flags().IntVar(&maxStops, "max-stops", 0, "cap on candidate stops (0 = no cap)")
	cmd.Flags().StringVar(&lunchStr, "lunch", "", "lunch as HH:MM-HH:MM/minutes, e.g. 12:00-14:00/60")
	cmd.Flags().StringSliceVar(&regions, "regions", nil, "restrict the pool to these regions")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("origin")

	return cmd
}

func parsePoint(s string) (domain.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Point{}, fmt.Errorf("origin must be lat,lng: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("parsing longitude: %w", err)
	}
	return domain.Point{Lat: lat, Lng: lng}, nil
}

func parseDayWindow(s string) (domain.ClockMin, domain.ClockMin, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("day window must be HH:MM-HH:MM: %q", s)
	}
	start, err := domain.ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := domain.ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseLunch(s string) (*contract.LunchPolicy, error) {
	window, durStr, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("lunch must be HH:MM-HH:MM/minutes: %q", s)
	}
	open, close, err := parseDayWindow(window)
	if err != nil {
		return nil, err
	}
	dur, err := strconv.Atoi(durStr)
	if err != nil {
		return nil, fmt.Errorf("parsing lunch duration: %w", err)
	}
	return &contract.LunchPolicy{WindowOpen: open, WindowClose: close, DurationMin: dur}, nil
}

func renderPlan(resp *contract.PlanResponse) string {
	var b strings.Builder
	res := resp.Result

	b.WriteString(formatter.StyleHeader.Render("Plan"))
	fmt.Fprintf(&b, "  %s  direction %s\n\n",
		formatter.StatusIndicator(res.Status),
		formatter.StyleBlue.Render(resp.DecisionLog.RouteDirection.Selected.DirectionID))

	if len(res.Route) > 0 {
		rows := make([][]string, 0, len(res.Route))
		for _, rn := range res.Route {
			rows = append(rows, []string{
				strconv.Itoa(rn.Seq),
				rn.Name,
				rn.Arrival.String(),
				rn.StartService.String() + "-" + rn.EndService.String(),
				strconv.Itoa(rn.TravelMinFromPrev) + "m",
				strconv.Itoa(rn.WaitMin) + "m",
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"#", "STOP", "ARRIVE", "SERVICE", "TRAVEL", "WAIT"}, rows))
		b.WriteString("\n")
	}

	if len(res.Dropped) > 0 {
		b.WriteString(formatter.StyleHeader.Render("Dropped"))
		b.WriteString("\n")
		for _, d := range res.Dropped {
			fmt.Fprintf(&b, "  %s %s: %s\n",
				formatter.StyleYellow.Render(string(d.ReasonCode)),
				d.Name, d.Explanation.Text)
			for _, s := range d.Explanation.Suggestions {
				fmt.Fprintf(&b, "    %s %s\n", formatter.StyleDim.Render("→"), s)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "visited %d, dropped %d, travel %dm, wait %dm, risk %s, robustness %.2f\n",
		res.Summary.VisitedCount, res.Summary.DroppedCount,
		res.Summary.TotalTravelMin, res.Summary.TotalWaitMin,
		formatter.RiskIndicator(res.Robustness.RiskLevel),
		res.Summary.RobustnessScore)
	return b.String()
}
