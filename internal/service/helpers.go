package service

import (
	"context"
	"fmt"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/jheinsohn/plantafel/internal/repository"
)

// resolvePlan loads the plan a request points at: by ID when given,
// otherwise the latest version of the project's plan in the given variant.
func resolvePlan(ctx context.Context, plans repository.PlanRepo, planID, projectID, variant string) (*domain.Plan, error) {
	if planID != "" {
		plan, err := plans.GetByID(ctx, planID)
		if err != nil {
			return nil, &app.PlanError{Code: app.ErrPlanNotFound, Message: fmt.Sprintf("plan %q: %v", planID, err)}
		}
		return plan, nil
	}

	if projectID == "" {
		return nil, &app.PlanError{Code: app.ErrInvalidInput, Message: "either a plan id or a project id is required"}
	}
	if variant == "" {
		variant = string(domain.VariantWorking)
	}
	if !domain.ValidVariants[variant] {
		return nil, &app.PlanError{Code: app.ErrInvalidVariant, Message: fmt.Sprintf("unknown variant %q", variant)}
	}

	plan, err := plans.Latest(ctx, projectID, variant)
	if err != nil {
		return nil, &app.PlanError{
			Code:    app.ErrPlanNotFound,
			Message: fmt.Sprintf("no %s plan for project %q: %v", variant, projectID, err),
		}
	}
	return plan, nil
}

// buildTimeline assembles the snapshot timeline covering the plan's span.
func buildTimeline(ctx context.Context, snapshots repository.SnapshotRepo, plan *domain.Plan) (*engine.Timeline, error) {
	snaps, err := snapshots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	if len(snaps) == 0 {
		return nil, &app.PlanError{Code: app.ErrNoSnapshots, Message: "no organisation snapshots imported"}
	}

	tl := engine.BuildTimeline(snaps, plan.StartDate, plan.EndDate)
	if tl == nil {
		return nil, &app.PlanError{
			Code:    app.ErrInternal,
			Message: fmt.Sprintf("could not build a timeline for %s .. %s", plan.StartDate.Format("2006-01-02"), plan.EndDate.Format("2006-01-02")),
		}
	}
	return tl, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return &app.PlanError{Code: app.ErrInvalidImport, Message: msg}
}
