package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/datasource"
	"github.com/alexanderramin/itinera/internal/domain"
)

func newRouteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Query live route conditions: weather, roads, transit, ferries",
	}

	cmd.AddCommand(
		newRouteWeatherCmd(app),
		newRouteRoadCmd(app),
		newRouteTransitCmd(app),
		newRouteFerryCmd(app),
	)
	return cmd
}

func routeQueryFlags(cmd *cobra.Command, lat, lng *float64, date *string) {
	cmd.Flags().Float64Var(lat, "lat", 0, "latitude (required)")
	cmd.Flags().Float64Var(lng, "lng", 0, "longitude (required)")
	cmd.Flags().StringVar(date, "date", "", "query date as YYYY-MM-DD, default today")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
}

func buildQuery(lat, lng float64, date string) (datasource.Query, error) {
	q := datasource.Query{
		Point: domain.Point{Lat: lat, Lng: lng},
		Date:  time.Now(),
	}
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return datasource.Query{}, fmt.Errorf("parsing date: %w", err)
		}
		q.Date = d
	}
	return q, nil
}

func newRouteWeatherCmd(app *App) *cobra.Command {
	var (
		lat, lng float64
		date     string
	)
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Weather report at a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(lat, lng, date)
			if err != nil {
				return err
			}
			rep, err := app.Route.Weather(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %.1f°C, precip %.0f%%, wind %.0f km/h  %s\n",
				rep.Summary, rep.TempC, rep.PrecipProb*100, rep.WindSpeedKmh,
				formatter.StyleDim.Render("via "+rep.ProviderName))
			for _, a := range rep.Advisories {
				fmt.Fprintf(out, "  %s %s\n", formatter.StyleYellow.Render("!"), a)
			}
			return nil
		},
	}
	routeQueryFlags(cmd, &lat, &lng, &date)
	return cmd
}

func newRouteRoadCmd(app *App) *cobra.Command {
	var (
		lat, lng float64
		date     string
	)
	cmd := &cobra.Command{
		Use:   "road",
		Short: "Road status at a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(lat, lng, date)
			if err != nil {
				return err
			}
			st, err := app.Route.RoadStatus(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if st.Open {
				fmt.Fprintf(out, "%s  %s\n", formatter.StyleGreen.Render("OPEN"),
					formatter.StyleDim.Render("via "+st.ProviderName))
			} else {
				fmt.Fprintf(out, "%s  %s\n", formatter.StyleRed.Render("CLOSED"),
					formatter.StyleDim.Render("via "+st.ProviderName))
			}
			for _, r := range st.Restrictions {
				fmt.Fprintf(out, "  %s %s\n", formatter.StyleYellow.Render("!"), r)
			}
			return nil
		},
	}
	routeQueryFlags(cmd, &lat, &lng, &date)
	return cmd
}

func newRouteTransitCmd(app *App) *cobra.Command {
	var (
		lat, lng float64
		date     string
	)
	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Transit schedule near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(lat, lng, date)
			if err != nil {
				return err
			}
			sched, err := app.Route.TransportSchedule(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSchedule(sched))
			return nil
		},
	}
	routeQueryFlags(cmd, &lat, &lng, &date)
	return cmd
}

func newRouteFerryCmd(app *App) *cobra.Command {
	var (
		lat, lng float64
		date     string
	)
	cmd := &cobra.Command{
		Use:   "ferry",
		Short: "Ferry schedule near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(lat, lng, date)
			if err != nil {
				return err
			}
			sched, err := app.Route.FerrySchedule(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSchedule(sched))
			return nil
		},
	}
	routeQueryFlags(cmd, &lat, &lng, &date)
	return cmd
}

func renderSchedule(s datasource.Schedule) string {
	var b strings.Builder
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, []string{e.Line, e.Departure, e.Arrival, e.Notes})
	}
	b.WriteString(formatter.RenderTable([]string{"LINE", "DEP", "ARR", "NOTES"}, rows))
	b.WriteString(formatter.StyleDim.Render("via " + s.ProviderName))
	b.WriteString("\n")
	return b.String()
}
