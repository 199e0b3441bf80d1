package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type validateService struct {
	plans    repository.PlanRepo
	observer UseCaseObserver
}

func NewValidateService(plans repository.PlanRepo, observers ...UseCaseObserver) ValidateService {
	return &validateService{
		plans:    plans,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *validateService) ValidatePlan(ctx context.Context, req app.ValidateRequest) (resp *app.ValidateResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "validate-plan",
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

	// Validate heals in place; the healed plan is only persisted on request.
	report := engine.Validate(plan)
	healed := len(report.Corrections()) > 0
	fields["valid"] = report.Valid
	fields["corrections"] = len(report.Corrections())
	fields["violations"] = len(report.Violations())

	if req.Persist && report.Valid && healed {
		if err := s.plans.Update(ctx, plan); err != nil {
			return nil, fmt.Errorf("persisting healed plan: %w", err)
		}
	}

	return &app.ValidateResponse{
		PlanID: plan.ID,
		Valid:  report.Valid,
		Healed: healed,
		Report: report,
	}, nil
}
