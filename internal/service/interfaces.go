package service

import (
	"context"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/importer"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type SnapshotService interface {
	List(ctx context.Context) ([]*domain.Snapshot, error)
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type PlanService interface {
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	Latest(ctx context.Context, projectID, variant string) (*domain.Plan, error)
	List(ctx context.Context) ([]repository.PlanSummary, error)
	ListVersions(ctx context.Context, projectID, variant string) ([]repository.PlanSummary, error)
	Delete(ctx context.Context, id string) error
}

type ReportService interface {
	Report(ctx context.Context, req app.ReportRequest) (*app.ReportResponse, error)
}

type ValidateService interface {
	ValidatePlan(ctx context.Context, req app.ValidateRequest) (*app.ValidateResponse, error)
}

type ScaleService interface {
	ScalePlan(ctx context.Context, req app.ScaleRequest) (*app.ScaleResponse, error)
}

type ImportService interface {
	ImportSnapshot(ctx context.Context, filePath string) (*app.SnapshotImportResult, error)
	ImportSnapshotFromSchema(ctx context.Context, schema *importer.SnapshotImport) (*app.SnapshotImportResult, error)
	ImportPlan(ctx context.Context, filePath string) (*app.PlanImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.PlanImport) (*app.PlanImportResult, error)
	ImportCapacity(ctx context.Context, filePath string) (*app.CapacityImportResult, error)
}
