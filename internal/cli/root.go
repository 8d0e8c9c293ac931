// Package cli wires the planner services behind a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/datasource"
	"github.com/alexanderramin/itinera/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plan       service.PlanService
	Directions service.DirectionService
	Candidates service.CandidateService
	Traces     service.TraceService
	Import     service.ImportService
	Route      *datasource.Registry
}

// NewRootCmd creates the top-level "itinera" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "itinera",
		Short: "Constraint-aware single-day itinerary planner",
	}

	root.AddCommand(
		newPlanCmd(app),
		newDirectionsCmd(app),
		newPoisCmd(app),
		newRouteCmd(app),
		newTraceCmd(app),
		newMetricsCmd(app),
		newImportCmd(app),
	)

	return root
}
