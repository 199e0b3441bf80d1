package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func resolvePlanID(ctx context.Context, a *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := a.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return t, nil
}

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plan versions",
	}

	cmd.AddCommand(
		newPlanImportCmd(a),
		newPlanListCmd(a),
		newPlanVersionsCmd(a),
		newPlanShowCmd(a),
		newPlanRemoveCmd(a),
		newPlanValidateCmd(a),
		newPlanScaleCmd(a),
	)

	return cmd
}

func newPlanImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a plan version from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Imports.ImportPlan(context.Background(), args[0])
			if err != nil {
				return err
			}

			status := ""
			if result.Healed {
				status = " (corrected during import)"
			}
			fmt.Printf("Imported plan %s for project %s [%s], %d phases%s\n",
				result.PlanID, result.ProjectID, result.Variant, result.PhaseCount, status)
			return nil
		},
	}
}

func newPlanListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored plan versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.Plans.List(context.Background())
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanVersionsCmd(a *App) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "versions <project>",
		Short: "List versions of one project's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.Plans.ListVersions(context.Background(), args[0], variant)
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Println("No versions found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "Plan variant (working or baseline)")

	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	var projectID, variant string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one plan version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var planID string
			if len(args) > 0 {
				id, err := resolvePlanID(ctx, a, args[0])
				if err != nil {
					return err
				}
				planID = id
			} else if projectID == "" {
				return fmt.Errorf("either a plan ID or --project is required")
			}

			if planID != "" {
				p, err := a.Plans.GetByID(ctx, planID)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatter.FormatPlanShow(p))
				return nil
			}

			p, err := a.Plans.Latest(ctx, projectID, variant)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPlanShow(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (shows the latest version)")
	cmd.Flags().StringVar(&variant, "variant", "", "Plan variant (working or baseline)")

	return cmd
}

func newPlanRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a plan version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolvePlanID(ctx, a, args[0])
			if err != nil {
				return err
			}

			if err := a.Plans.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Removed plan %s\n", id)
			return nil
		},
	}
}

func newPlanValidateCmd(a *App) *cobra.Command {
	var planID, projectID, variant string
	var persist bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the validation battery against a plan version",
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

			resp, err := a.Validator.ValidatePlan(ctx, app.ValidateRequest{
				PlanID:    planID,
				ProjectID: projectID,
				Variant:   variant,
				Persist:   persist,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatValidationReport(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (validates the latest version)")
	cmd.Flags().StringVar(&variant, "variant", "", "Plan variant (working or baseline)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Write the corrected plan back when healing succeeded")

	return cmd
}

func newPlanScaleCmd(a *App) *cobra.Command {
	var planID, projectID, variant, start, end, freeze string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Scale a plan onto a new date span as a new version",
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

			newStart, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			newEnd, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			req := app.ScaleRequest{
				PlanID:    planID,
				ProjectID: projectID,
				Variant:   variant,
				NewStart:  newStart,
				NewEnd:    newEnd,
				DryRun:    dryRun,
			}
			if freeze != "" {
				freezeUntil, err := parseDateFlag("freeze", freeze)
				if err != nil {
					return err
				}
				req.FreezeUntil = &freezeUntil
			}

			resp, err := a.Scaler.ScalePlan(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatScaleResult(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (scales the latest version)")
	cmd.Flags().StringVar(&variant, "variant", "", "Plan variant (working or baseline)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&freeze, "freeze", "", "Keep recorded months up to this date unchanged (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the scaled plan without persisting it")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
