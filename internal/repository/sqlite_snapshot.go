package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/db"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

// snapshotPayload is the document half of a snapshot row. The key columns
// carry id and capture time; everything the engine walks lives here.
type snapshotPayload struct {
	Roles     []domain.Role
	CostTypes []domain.CostType
}

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	payload, err := marshalPayload(snapshotPayload{Roles: s.Roles, CostTypes: s.CostTypes})
	if err != nil {
		return err
	}
	query := `INSERT INTO snapshots (id, taken_at, payload, created_at) VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Timestamp.UTC().Format(time.RFC3339),
		payload,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT id, taken_at, payload FROM snapshots WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.Snapshot
	var takenAtStr, payload string
	if err := row.Scan(&s.ID, &takenAtStr, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found")
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return r.hydrate(&s, takenAtStr, payload)
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `SELECT id, taken_at, payload FROM snapshots ORDER BY taken_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var takenAtStr, payload string
		if err := rows.Scan(&s.ID, &takenAtStr, &payload); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		hydrated, err := r.hydrate(&s, takenAtStr, payload)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, hydrated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM snapshots WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) hydrate(s *domain.Snapshot, takenAtStr, payload string) (*domain.Snapshot, error) {
	takenAt, err := time.Parse(time.RFC3339, takenAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing taken_at: %w", err)
	}
	s.Timestamp = takenAt

	var doc snapshotPayload
	if err := unmarshalPayload(payload, &doc); err != nil {
		return nil, err
	}
	s.Roles = doc.Roles
	s.CostTypes = doc.CostTypes
	return s, nil
}
