package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

func WithRoles(roles ...domain.Role) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Roles = roles
	}
}

func WithCostTypes(costTypes ...domain.CostType) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.CostTypes = costTypes
	}
}

// NewTestSnapshot builds a snapshot with a minimal two-level organisation:
// one team (uid 10) with one member (uid 11) and a travel cost type.
func NewTestSnapshot(takenAt time.Time, opts ...SnapshotOption) *domain.Snapshot {
	s := &domain.Snapshot{
		ID:        uuid.New().String(),
		Timestamp: takenAt,
		Roles: []domain.Role{
			{
				UID: 10, Name: "Platform", Type: domain.RoleTeam,
				DailyRate: 900, DefaultCapacityPerMonth: 36,
				SubRoles: []domain.WeightedRef{{UID: 11, Weight: 1.0}},
			},
			{
				UID: 11, Name: "Ada", Type: domain.RolePerson,
				DailyRate: 1000, DefaultCapacityPerMonth: 18,
				Teams: []domain.WeightedRef{{UID: 10, Weight: 1.0}},
			},
		},
		CostTypes: []domain.CostType{{ID: 1, Name: "Travel"}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan options
type PlanOption func(*domain.Plan)

func WithVariant(v domain.Variant) PlanOption {
	return func(p *domain.Plan) {
		p.Variant = string(v)
	}
}

func WithVersion(ts time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.Timestamp = ts
	}
}

func WithActualDataUntil(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.ActualDataUntil = &d
	}
}

func WithScores(strategicFit, riskScore float64) PlanOption {
	return func(p *domain.Plan) {
		p.StrategicFit = &strategicFit
		p.RiskScore = &riskScore
	}
}

// NewTestPlan builds a structurally valid plan spanning the given number of
// whole months, with one working phase and the root phase, both covered by
// matching hierarchy nodes.
func NewTestPlan(projectID string, start time.Time, months int, opts ...PlanOption) *domain.Plan {
	end := start.AddDate(0, months, -1)
	days := domain.DaySpan(start, end)
	demand := make([]float64, months)
	for i := range demand {
		demand[i] = 2
	}

	p := &domain.Plan{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Variant:        string(domain.VariantWorking),
		Timestamp:      time.Now().UTC().Truncate(time.Second),
		Name:           "Test Plan",
		StartDate:      start,
		EndDate:        end,
		DurationMonths: months,
		Phases: []domain.Phase{
			{
				Name: "build", StartOffsetDays: 0, DurationDays: days,
				RelStart: 1, RelEnd: months,
				Roles: []domain.RoleDemand{{RoleUID: 11, TeamUID: -1, Demand: demand}},
			},
			{
				Name: domain.RootPhaseKey, StartOffsetDays: 0, DurationDays: days,
				RelStart: 1, RelEnd: months,
			},
		},
		Hierarchy: []domain.HierarchyNode{
			{Key: domain.RootPhaseKey, ChildKeys: []string{"build"}, ElementIndex: 1},
			{Key: "build", ParentKey: domain.RootPhaseKey, ElementIndex: 0},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestOverride builds a full-year capacity override with the same value
// for every month.
func NewTestOverride(roleUID int, year int, value float64) *domain.CapacityOverride {
	months := make([]*float64, 12)
	for i := range months {
		v := value
		months[i] = &v
	}
	return &domain.CapacityOverride{
		RoleUID:     roleUID,
		StartOfYear: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		Months:      months,
	}
}
