package engine

import (
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// threeLevelOrg builds a snapshot with a department summary role (uid 1)
// over two teams (10, 20), each with two members. Member 12 also belongs to
// team 20 with weight 0.5.
func threeLevelOrg(ts time.Time) *domain.Snapshot {
	return &domain.Snapshot{
		ID:        "snap-" + ts.Format("2006-01"),
		Timestamp: ts,
		Roles: []domain.Role{
			{
				UID: 1, Name: "Engineering", Type: domain.RoleTeam, IsSummary: true,
				SubRoles: []domain.WeightedRef{{UID: 10, Weight: 1}, {UID: 20, Weight: 1}},
			},
			{
				UID: 10, Name: "Platform", Type: domain.RoleTeam, DailyRate: 900,
				SubRoles:  []domain.WeightedRef{{UID: 11, Weight: 1}, {UID: 12, Weight: 1}},
				ParentUID: ptr(1),
			},
			{
				UID: 20, Name: "Delivery", Type: domain.RoleTeam, DailyRate: 800,
				SubRoles:  []domain.WeightedRef{{UID: 21, Weight: 1}, {UID: 22, Weight: 1}},
				ParentUID: ptr(1),
			},
			{
				UID: 11, Name: "Ada", Type: domain.RolePerson, DailyRate: 1000,
				DefaultCapacityPerMonth: 18,
				Teams:                   []domain.WeightedRef{{UID: 10, Weight: 1}},
				ParentUID:               ptr(10),
			},
			{
				UID: 12, Name: "Ben", Type: domain.RolePerson, DailyRate: 700,
				DefaultCapacityPerMonth: 20,
				Teams:                   []domain.WeightedRef{{UID: 10, Weight: 0.5}, {UID: 20, Weight: 0.5}},
				ParentUID:               ptr(10),
			},
			{
				UID: 21, Name: "Cleo", Type: domain.RolePerson, DailyRate: 850,
				DefaultCapacityPerMonth: 19,
				Teams:                   []domain.WeightedRef{{UID: 20, Weight: 1}},
				ParentUID:               ptr(20),
			},
			{
				UID: 22, Name: "Drew", Type: domain.RolePerson, DailyRate: 1200,
				DefaultCapacityPerMonth: 15, IsExternal: true,
				Teams:     []domain.WeightedRef{{UID: 20, Weight: 1}},
				ParentUID: ptr(20),
			},
		},
		CostTypes: []domain.CostType{{ID: 1, Name: "Travel"}, {ID: 2, Name: "Licenses"}},
	}
}

// validPlan builds a structurally consistent single-extra-phase plan over
// [start, start+months-1 month end], with the root phase and hierarchy in
// place.
func validPlan(start time.Time, months int) *domain.Plan {
	end := domain.MonthStart(domain.MonthIndex(start)+months).AddDate(0, 0, -1)
	days := domain.DaySpan(start, end)
	p := &domain.Plan{
		ID:             "plan-1",
		ProjectID:      "proj-1",
		Variant:        string(domain.VariantWorking),
		Timestamp:      start,
		Name:           "Test Plan",
		StartDate:      start,
		EndDate:        end,
		DurationMonths: months,
		Phases: []domain.Phase{
			{
				Name:            "build",
				StartOffsetDays: 0,
				DurationDays:    days,
				RelStart:        1,
				RelEnd:          months,
			},
			{
				Name:            domain.RootPhaseKey,
				StartOffsetDays: 0,
				DurationDays:    days,
				RelStart:        1,
				RelEnd:          months,
			},
		},
		Hierarchy: []domain.HierarchyNode{
			{Key: "build", ParentKey: domain.RootPhaseKey, ElementIndex: 0},
			{Key: domain.RootPhaseKey, ElementIndex: 1},
		},
	}
	return p
}

func constantDemand(months int, v float64) []float64 {
	out := make([]float64, months)
	for i := range out {
		out[i] = v
	}
	return out
}
