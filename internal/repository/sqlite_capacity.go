package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jheinsohn/plantafel/internal/db"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// SQLiteCapacityOverrideRepo implements CapacityOverrideRepo using a SQLite database.
type SQLiteCapacityOverrideRepo struct {
	db db.DBTX
}

// NewSQLiteCapacityOverrideRepo creates a new SQLiteCapacityOverrideRepo.
func NewSQLiteCapacityOverrideRepo(conn db.DBTX) *SQLiteCapacityOverrideRepo {
	return &SQLiteCapacityOverrideRepo{db: conn}
}

func (r *SQLiteCapacityOverrideRepo) Create(ctx context.Context, o *domain.CapacityOverride) error {
	// Months holds twelve nullable values; nil entries mean "no override
	// for that month" and must survive the round trip.
	months, err := marshalPayload(o.Months)
	if err != nil {
		return err
	}
	query := `INSERT INTO capacity_overrides (id, role_uid, start_of_year, months, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		uuid.NewString(),
		o.RoleUID,
		o.StartOfYear.Format(dateLayout),
		months,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting capacity override: %w", err)
	}
	return nil
}

func (r *SQLiteCapacityOverrideRepo) ListByRole(ctx context.Context, roleUID int) ([]domain.CapacityOverride, error) {
	query := `SELECT role_uid, start_of_year, months FROM capacity_overrides
		WHERE role_uid = ? ORDER BY start_of_year, created_at`
	return r.queryOverrides(ctx, query, roleUID)
}

func (r *SQLiteCapacityOverrideRepo) ListAll(ctx context.Context) ([]domain.CapacityOverride, error) {
	query := `SELECT role_uid, start_of_year, months FROM capacity_overrides
		ORDER BY role_uid, start_of_year, created_at`
	return r.queryOverrides(ctx, query)
}

func (r *SQLiteCapacityOverrideRepo) DeleteByRole(ctx context.Context, roleUID int) error {
	query := `DELETE FROM capacity_overrides WHERE role_uid = ?`
	if _, err := r.db.ExecContext(ctx, query, roleUID); err != nil {
		return fmt.Errorf("deleting capacity overrides: %w", err)
	}
	return nil
}

func (r *SQLiteCapacityOverrideRepo) queryOverrides(ctx context.Context, query string, args ...any) ([]domain.CapacityOverride, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing capacity overrides: %w", err)
	}
	defer rows.Close()

	var overrides []domain.CapacityOverride
	for rows.Next() {
		var o domain.CapacityOverride
		var startStr, monthsRaw string
		if err := rows.Scan(&o.RoleUID, &startStr, &monthsRaw); err != nil {
			return nil, fmt.Errorf("scanning capacity override row: %w", err)
		}
		o.StartOfYear, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_of_year: %w", err)
		}
		if err := unmarshalPayload(monthsRaw, &o.Months); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capacity overrides: %w", err)
	}
	return overrides, nil
}
