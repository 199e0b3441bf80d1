package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type reportService struct {
	plans     repository.PlanRepo
	snapshots repository.SnapshotRepo
	overrides repository.CapacityOverrideRepo
	observer  UseCaseObserver
}

func NewReportService(
	plans repository.PlanRepo,
	snapshots repository.SnapshotRepo,
	overrides repository.CapacityOverrideRepo,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		plans:     plans,
		snapshots: snapshots,
		overrides: overrides,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Report(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"root_role": req.RootRoleUID,
		"team":      req.TeamUID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	plan, err := resolvePlan(ctx, s.plans, req.PlanID, req.ProjectID, req.Variant)
	if err != nil {
		return nil, err
	}
	fields["plan"] = plan.ID

	tl, err := buildTimeline(ctx, s.snapshots, plan)
	if err != nil {
		return nil, err
	}

	now := startedAt
	if req.Now != nil {
		now = *req.Now
	}
	tl.ResolveConcerning(req.RootRoleUID, req.TeamUID, now)

	overrides, err := s.overrides.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading capacity overrides: %w", err)
	}

	agg := engine.Aggregate(tl, plan, overrides)
	if agg == nil {
		return nil, &app.PlanError{Code: app.ErrInternal, Message: "aggregation produced no result"}
	}

	return &app.ReportResponse{
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		ProjectID:   plan.ProjectID,
		Variant:     plan.Variant,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		RootRoleUID: req.RootRoleUID,
		TeamUID:     req.TeamUID,
		Aggregation: agg,
		TotalCost:   agg.Total(),
	}, nil
}
