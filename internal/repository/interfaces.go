package repository

import (
	"context"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// PlanSummary is the key-column view of a stored plan version, used for
// listings that do not need the phase payload.
type PlanSummary struct {
	ID        string
	ProjectID string
	Variant   string
	Timestamp time.Time
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	// List returns all snapshots ordered by capture time, oldest first.
	List(ctx context.Context) ([]*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	// Latest returns the newest version of a project's plan in the given variant.
	Latest(ctx context.Context, projectID, variant string) (*domain.Plan, error)
	ListVersions(ctx context.Context, projectID, variant string) ([]PlanSummary, error)
	List(ctx context.Context) ([]PlanSummary, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type CapacityOverrideRepo interface {
	Create(ctx context.Context, o *domain.CapacityOverride) error
	ListByRole(ctx context.Context, roleUID int) ([]domain.CapacityOverride, error)
	ListAll(ctx context.Context) ([]domain.CapacityOverride, error)
	DeleteByRole(ctx context.Context, roleUID int) error
}
