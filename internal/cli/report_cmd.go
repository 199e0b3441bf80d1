package cli

import (
	"context"
	"fmt"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	var planID, projectID, variant, date string
	var rootUID, teamUID int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate monthly costs and capacity for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if planID != "" {
				id, err := resolvePlanID(ctx, a, planID)
				if err != nil {
					return err
				}
				planID = id
			} else if projectID == "" {
				return fmt.Errorf("either --plan or --project is required")
			}

			req := app.ReportRequest{
				PlanID:      planID,
				ProjectID:   projectID,
				Variant:     variant,
				RootRoleUID: rootUID,
				TeamUID:     teamUID,
			}
			if date != "" {
				now, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				req.Now = &now
			}

			resp, err := a.Reports.Report(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatReport(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (reports on the latest version)")
	cmd.Flags().StringVar(&variant, "variant", "", "Plan variant (working or baseline)")
	cmd.Flags().IntVar(&rootUID, "root", 0, "Root role UID of the concerning organisation subtree")
	cmd.Flags().IntVar(&teamUID, "team", -1, "Team UID for the team viewpoint (omit for none)")
	cmd.Flags().StringVar(&date, "date", "", "Reference date for role resolution (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
