package service

import (
	"context"

	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/repository"
)

type snapshotService struct {
	snapshots repository.SnapshotRepo
}

func NewSnapshotService(snapshots repository.SnapshotRepo) SnapshotService {
	return &snapshotService{snapshots: snapshots}
}

func (s *snapshotService) List(ctx context.Context) ([]*domain.Snapshot, error) {
	return s.snapshots.List(ctx)
}

func (s *snapshotService) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	return s.snapshots.GetByID(ctx, id)
}

func (s *snapshotService) Delete(ctx context.Context, id string) error {
	return s.snapshots.Delete(ctx, id)
}
