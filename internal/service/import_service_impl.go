package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/db"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/jheinsohn/plantafel/internal/importer"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type importService struct {
	snapshots repository.SnapshotRepo
	plans     repository.PlanRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewImportService(
	snapshots repository.SnapshotRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		snapshots: snapshots,
		plans:     plans,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportSnapshot(ctx context.Context, filePath string) (*app.SnapshotImportResult, error) {
	schema, err := importer.LoadSnapshotImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSnapshotFromSchema(ctx, schema)
}

func (s *importService) ImportSnapshotFromSchema(ctx context.Context, schema *importer.SnapshotImport) (result *app.SnapshotImportResult, err error) {
	defer s.observe(ctx, "import-snapshot", time.Now().UTC(), &err)

	if errs := importer.ValidateSnapshotImport(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	snapshot, err := importer.ConvertSnapshot(schema)
	if err != nil {
		return nil, fmt.Errorf("converting snapshot import: %w", err)
	}

	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	return &app.SnapshotImportResult{
		SnapshotID:    snapshot.ID,
		RoleCount:     len(snapshot.Roles),
		CostTypeCount: len(snapshot.CostTypes),
	}, nil
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*app.PlanImportResult, error) {
	schema, err := importer.LoadPlanImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportPlanFromSchema(ctx, schema)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.PlanImport) (result *app.PlanImportResult, err error) {
	defer s.observe(ctx, "import-plan", time.Now().UTC(), &err)

	if errs := importer.ValidatePlanImport(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	plan, err := importer.ConvertPlan(schema)
	if err != nil {
		return nil, fmt.Errorf("converting plan import: %w", err)
	}

	// Only structurally valid plans are persisted; healing corrections are
	// applied before the write so the stored version is already consistent.
	report := engine.Validate(plan)
	if !report.Valid {
		msg := "imported plan failed validation"
		if len(report.Violations()) > 0 {
			msg = fmt.Sprintf("%s: %s", msg, report.Violations()[0].Message)
		}
		return nil, &app.PlanError{Code: app.ErrValidationFailed, Message: msg}
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("creating plan: %w", err)
	}

	return &app.PlanImportResult{
		PlanID:     plan.ID,
		ProjectID:  plan.ProjectID,
		Variant:    plan.Variant,
		PhaseCount: len(plan.Phases),
		Valid:      report.Valid,
		Healed:     len(report.Corrections()) > 0,
	}, nil
}

func (s *importService) ImportCapacity(ctx context.Context, filePath string) (result *app.CapacityImportResult, err error) {
	defer s.observe(ctx, "import-capacity", time.Now().UTC(), &err)

	schema, err := importer.LoadCapacityImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	if errs := importer.ValidateCapacityImport(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	overrides, err := importer.ConvertCapacity(schema)
	if err != nil {
		return nil, fmt.Errorf("converting capacity import: %w", err)
	}

	// All overrides land atomically; a half-imported capacity file would
	// skew every later aggregation.
	roles := make(map[int]bool)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOverrides := repository.NewSQLiteCapacityOverrideRepo(tx)
		for i := range overrides {
			if err := txOverrides.Create(ctx, &overrides[i]); err != nil {
				return fmt.Errorf("creating override for role %d: %w", overrides[i].RoleUID, err)
			}
			roles[overrides[i].RoleUID] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &app.CapacityImportResult{
		OverrideCount: len(overrides),
		RoleCount:     len(roles),
	}, nil
}

func (s *importService) observe(ctx context.Context, name string, startedAt time.Time, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
	})
}
