package app

import (
	"context"

	"github.com/jheinsohn/plantafel/internal/importer"
)

type ReportUseCase interface {
	Report(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type ValidateUseCase interface {
	ValidatePlan(ctx context.Context, req ValidateRequest) (*ValidateResponse, error)
}

type ScaleUseCase interface {
	ScalePlan(ctx context.Context, req ScaleRequest) (*ScaleResponse, error)
}

type SnapshotImportResult struct {
	SnapshotID    string
	RoleCount     int
	CostTypeCount int
}

type PlanImportResult struct {
	PlanID     string
	ProjectID  string
	Variant    string
	PhaseCount int
	Valid      bool
	Healed     bool
}

type CapacityImportResult struct {
	OverrideCount int
	RoleCount     int
}

type ImportUseCase interface {
	ImportSnapshot(ctx context.Context, filePath string) (*SnapshotImportResult, error)
	ImportSnapshotFromSchema(ctx context.Context, schema *importer.SnapshotImport) (*SnapshotImportResult, error)
	ImportPlan(ctx context.Context, filePath string) (*PlanImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.PlanImport) (*PlanImportResult, error)
	ImportCapacity(ctx context.Context, filePath string) (*CapacityImportResult, error)
}
