package service

import (
	"context"
	"testing"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/repository"
	"github.com/jheinsohn/plantafel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScaleFixture(t *testing.T) (ScaleService, *repository.SQLitePlanRepo, context.Context) {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	return NewScaleService(plans), plans, context.Background()
}

func TestScaleService_PersistsNewVersion(t *testing.T) {
	svc, plans, ctx := newScaleFixture(t)

	plan := testutil.NewTestPlan("proj-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6)
	require.NoError(t, plans.Create(ctx, plan))

	resp, err := svc.ScalePlan(ctx, app.ScaleRequest{
		PlanID:   plan.ID,
		NewStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NewEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, resp.Persisted)
	assert.Equal(t, plan.ID, resp.SourcePlanID)
	assert.NotEqual(t, plan.ID, resp.NewPlanID)
	assert.InDelta(t, 365.0/181.0, resp.Factor, 1e-9)

	versions, err := plans.ListVersions(ctx, "proj-1", string(domain.VariantWorking))
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	stored, err := plans.GetByID(ctx, resp.NewPlanID)
	require.NoError(t, err)
	assert.True(t, stored.EndDate.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	// Demand volume grows with the span.
	total := domain.Sum(stored.Phases[0].Roles[0].Demand)
	assert.InDelta(t, 12.0*365.0/181.0, total, 0.01)
}

func TestScaleService_DryRunDoesNotPersist(t *testing.T) {
	svc, plans, ctx := newScaleFixture(t)

	plan := testutil.NewTestPlan("proj-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6)
	require.NoError(t, plans.Create(ctx, plan))

	resp, err := svc.ScalePlan(ctx, app.ScaleRequest{
		PlanID:   plan.ID,
		NewStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		NewEnd:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		DryRun:   true,
	})
	require.NoError(t, err)
	assert.False(t, resp.Persisted)
	assert.Empty(t, resp.NewPlanID)
	require.NotNil(t, resp.Plan)

	versions, err := plans.ListVersions(ctx, "proj-1", string(domain.VariantWorking))
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestScaleService_RejectsBadSpan(t *testing.T) {
	svc, plans, ctx := newScaleFixture(t)

	plan := testutil.NewTestPlan("proj-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6)
	require.NoError(t, plans.Create(ctx, plan))

	_, err := svc.ScalePlan(ctx, app.ScaleRequest{
		PlanID:   plan.ID,
		NewStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		NewEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.ErrInvalidInput, planErr.Code)
}

func TestScaleService_FreezeCarriesThrough(t *testing.T) {
	svc, plans, ctx := newScaleFixture(t)

	plan := testutil.NewTestPlan("proj-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6)
	require.NoError(t, plans.Create(ctx, plan))

	freeze := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ScalePlan(ctx, app.ScaleRequest{
		PlanID:      plan.ID,
		NewStart:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NewEnd:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		FreezeUntil: &freeze,
		DryRun:      true,
	})
	require.NoError(t, err)

	// January and February demand stays exactly as planned.
	demand := resp.Plan.Phases[0].Roles[0].Demand
	assert.Equal(t, 2.0, demand[0])
	assert.Equal(t, 2.0, demand[1])
}
