package service

import (
	"context"

	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type planService struct {
	plans repository.PlanRepo
}

func NewPlanService(plans repository.PlanRepo) PlanService {
	return &planService{plans: plans}
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) Latest(ctx context.Context, projectID, variant string) (*domain.Plan, error) {
	return resolvePlan(ctx, s.plans, "", projectID, variant)
}

func (s *planService) List(ctx context.Context) ([]repository.PlanSummary, error) {
	return s.plans.List(ctx)
}

func (s *planService) ListVersions(ctx context.Context, projectID, variant string) ([]repository.PlanSummary, error) {
	if variant == "" {
		variant = string(domain.VariantWorking)
	}
	return s.plans.ListVersions(ctx, projectID, variant)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}
