package formatter

import (
	"testing"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/repository"
	"github.com/stretchr/testify/assert"
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		ID:             "eeee5555-0000-0000-0000-000000000000",
		ProjectID:      "proj-1",
		Variant:        "working",
		Timestamp:      time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		Name:           "Rollout",
		StartDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		DurationMonths: 6,
		Phases: []domain.Phase{
			{
				Name: "build", StartOffsetDays: 0, DurationDays: 181, RelStart: 1, RelEnd: 6,
				Roles: []domain.RoleDemand{{RoleUID: 11, TeamUID: -1, Demand: []float64{2, 2, 2, 2, 2, 2}}},
				Milestones: []domain.Milestone{
					{Name: "go-live", OffsetDays: 180, Invoice: &domain.Invoice{Amount: 50}},
				},
			},
			{Name: domain.RootPhaseKey, StartOffsetDays: 0, DurationDays: 181, RelStart: 1, RelEnd: 6},
		},
		Hierarchy: []domain.HierarchyNode{
			{Key: domain.RootPhaseKey, ChildKeys: []string{"build"}, ElementIndex: 1},
			{Key: "build", ParentKey: domain.RootPhaseKey, ChildKeys: []string{"go-live"}, ElementIndex: 0},
			{Key: "go-live", ParentKey: "build", ElementIndex: 0},
		},
	}
}

func TestFormatPlanList_RendersSummaries(t *testing.T) {
	plans := []repository.PlanSummary{
		{
			ID:        "ffff6666-0000-0000-0000-000000000000",
			ProjectID: "proj-1",
			Variant:   "baseline",
			Timestamp: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
			Name:      "Rollout",
			StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	out := FormatPlanList(plans)

	assert.Contains(t, out, "ffff6666")
	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "Rollout")
	assert.Contains(t, out, "2025-01-01")
	assert.Contains(t, out, "2025-06-30")
}

func TestFormatPlanShow_RendersMetadataAndTree(t *testing.T) {
	out := FormatPlanShow(testPlan())

	assert.Contains(t, out, "Rollout")
	assert.Contains(t, out, "proj-1")
	assert.Contains(t, out, "6 months")
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "go-live")
	assert.Contains(t, out, "day 180")
	assert.NotContains(t, out, domain.RootPhaseKey)
}

func TestFormatPlanShow_WithoutHierarchy(t *testing.T) {
	p := testPlan()
	p.Hierarchy = nil

	out := FormatPlanShow(p)

	assert.Contains(t, out, "No structure tree")
}

func TestFormatScaleResult_Persisted(t *testing.T) {
	resp := &app.ScaleResponse{
		SourcePlanID: "eeee5555-0000-0000-0000-000000000000",
		NewPlanID:    "abab7777-0000-0000-0000-000000000000",
		Factor:       2.0166,
		Persisted:    true,
		Plan:         testPlan(),
	}

	out := FormatScaleResult(resp)

	assert.Contains(t, out, "2.0166")
	assert.Contains(t, out, "persisted")
	assert.Contains(t, out, "abab7777")
}

func TestFormatScaleResult_DryRun(t *testing.T) {
	resp := &app.ScaleResponse{
		SourcePlanID: "eeee5555-0000-0000-0000-000000000000",
		Factor:       0.5,
		Plan:         testPlan(),
	}

	out := FormatScaleResult(resp)

	assert.Contains(t, out, "dry run")
}
