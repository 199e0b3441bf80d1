package cli

import (
	"github.com/jheinsohn/plantafel/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Snapshots service.SnapshotService
	Plans     service.PlanService
	Reports   service.ReportService
	Validator service.ValidateService
	Scaler    service.ScaleService
	Imports   service.ImportService
}

// NewRootCmd creates the top-level "plantafel" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plantafel",
		Short: "Portfolio planning calculations over organisation snapshots",
	}

	root.AddCommand(
		newSnapshotCmd(app),
		newPlanCmd(app),
		newCapacityCmd(app),
		newReportCmd(app),
	)

	return root
}
