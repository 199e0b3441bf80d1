package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/db"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const dateLayout = "2006-01-02"

// planPayload is the document half of a plan row: the full phase tree and the
// element hierarchy, stored as one JSON column.
type planPayload struct {
	Phases    []domain.Phase
	Hierarchy []domain.HierarchyNode
}

const planColumns = `id, project_id, variant, version_ts, name, start_date, end_date,
	duration_months, actual_data_until, strategic_fit, risk_score, payload`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	payload, err := marshalPayload(planPayload{Phases: p.Phases, Hierarchy: p.Hierarchy})
	if err != nil {
		return err
	}
	now := nowUTC()
	query := `INSERT INTO plans (id, project_id, variant, version_ts, name, start_date, end_date,
		duration_months, actual_data_until, strategic_fit, risk_score, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		p.Variant,
		p.Timestamp.UTC().Format(time.RFC3339),
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.DurationMonths,
		nullableTimeToString(p.ActualDataUntil, dateLayout),
		nullableFloatToValue(p.StrategicFit),
		nullableFloatToValue(p.RiskScore),
		payload,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) Latest(ctx context.Context, projectID, variant string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE project_id = ? AND variant = ?
		ORDER BY version_ts DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, projectID, variant)
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) ListVersions(ctx context.Context, projectID, variant string) ([]PlanSummary, error) {
	query := `SELECT id, project_id, variant, version_ts, name, start_date, end_date FROM plans
		WHERE project_id = ? AND variant = ?
		ORDER BY version_ts`
	return r.querySummaries(ctx, query, projectID, variant)
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]PlanSummary, error) {
	query := `SELECT id, project_id, variant, version_ts, name, start_date, end_date FROM plans
		ORDER BY project_id, variant, version_ts`
	return r.querySummaries(ctx, query)
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	payload, err := marshalPayload(planPayload{Phases: p.Phases, Hierarchy: p.Hierarchy})
	if err != nil {
		return err
	}
	query := `UPDATE plans SET name = ?, start_date = ?, end_date = ?, duration_months = ?,
		actual_data_until = ?, strategic_fit = ?, risk_score = ?, payload = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.DurationMonths,
		nullableTimeToString(p.ActualDataUntil, dateLayout),
		nullableFloatToValue(p.StrategicFit),
		nullableFloatToValue(p.RiskScore),
		payload,
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plans WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var versionStr, startStr, endStr, payload string
	var actualUntilStr sql.NullString
	var strategicFit, riskScore sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.ProjectID, &p.Variant, &versionStr, &p.Name,
		&startStr, &endStr, &p.DurationMonths,
		&actualUntilStr, &strategicFit, &riskScore, &payload,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan not found")
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	var parseErr error
	p.Timestamp, parseErr = time.Parse(time.RFC3339, versionStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing version_ts: %w", parseErr)
	}
	p.StartDate, parseErr = time.Parse(dateLayout, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.EndDate, parseErr = time.Parse(dateLayout, endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	p.ActualDataUntil = parseNullableTime(actualUntilStr, dateLayout)
	p.StrategicFit = parseNullableFloat(strategicFit)
	p.RiskScore = parseNullableFloat(riskScore)

	var doc planPayload
	if err := unmarshalPayload(payload, &doc); err != nil {
		return nil, err
	}
	p.Phases = doc.Phases
	p.Hierarchy = doc.Hierarchy
	return &p, nil
}

func (r *SQLitePlanRepo) querySummaries(ctx context.Context, query string, args ...any) ([]PlanSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var summaries []PlanSummary
	for rows.Next() {
		var s PlanSummary
		var versionStr, startStr, endStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Variant, &versionStr, &s.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		var parseErr error
		s.Timestamp, parseErr = time.Parse(time.RFC3339, versionStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing version_ts: %w", parseErr)
		}
		s.StartDate, parseErr = time.Parse(dateLayout, startStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing start_date: %w", parseErr)
		}
		s.EndDate, parseErr = time.Parse(dateLayout, endStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing end_date: %w", parseErr)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return summaries, nil
}
