package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type scaleService struct {
	plans    repository.PlanRepo
	observer UseCaseObserver
}

func NewScaleService(plans repository.PlanRepo, observers ...UseCaseObserver) ScaleService {
	return &scaleService{
		plans:    plans,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scaleService) ScalePlan(ctx context.Context, req app.ScaleRequest) (resp *app.ScaleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"new_start": req.NewStart.Format("2006-01-02"),
		"new_end":   req.NewEnd.Format("2006-01-02"),
		"dry_run":   req.DryRun,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "scale-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.NewStart.IsZero() || req.NewEnd.IsZero() || req.NewEnd.Before(req.NewStart) {
		return nil, &app.PlanError{Code: app.ErrInvalidInput, Message: "the new span needs a start date before its end date"}
	}

	plan, err := resolvePlan(ctx, s.plans, req.PlanID, req.ProjectID, req.Variant)
	if err != nil {
		return nil, err
	}
	fields["plan"] = plan.ID

	scaled, report := engine.ScalePlan(plan, engine.ScaleOptions{
		NewStart:    req.NewStart,
		NewEnd:      req.NewEnd,
		FreezeUntil: req.FreezeUntil,
	})
	if scaled == nil {
		msg := "scaling produced an invalid plan"
		if report != nil && len(report.Violations()) > 0 {
			msg = fmt.Sprintf("%s: %s", msg, report.Violations()[0].Message)
		}
		return nil, &app.PlanError{Code: app.ErrValidationFailed, Message: msg}
	}

	factor := float64(domain.DaySpan(req.NewStart, req.NewEnd)) / float64(plan.ProjectDays())
	fields["factor"] = factor

	resp = &app.ScaleResponse{
		SourcePlanID: plan.ID,
		Factor:       factor,
		Plan:         scaled,
		Report:       report,
	}

	if req.DryRun {
		return resp, nil
	}

	// The scaled plan becomes a new version of the same project/variant.
	// Version timestamps have second precision; a scale within the same
	// second as the source version must still sort after it.
	scaled.ID = uuid.New().String()
	scaled.Timestamp = startedAt.Truncate(time.Second)
	if !scaled.Timestamp.After(plan.Timestamp) {
		scaled.Timestamp = plan.Timestamp.Add(time.Second)
	}
	if err := s.plans.Create(ctx, scaled); err != nil {
		return nil, fmt.Errorf("persisting scaled plan: %w", err)
	}
	resp.NewPlanID = scaled.ID
	resp.Persisted = true
	return resp, nil
}
