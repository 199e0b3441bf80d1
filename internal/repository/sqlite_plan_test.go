package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plan := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithScores(7.5, 3.0))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "proj-1", fetched.ProjectID)
	assert.Equal(t, string(domain.VariantWorking), fetched.Variant)
	assert.True(t, start.Equal(fetched.StartDate))
	assert.Equal(t, 6, fetched.DurationMonths)
	require.NotNil(t, fetched.StrategicFit)
	assert.Equal(t, 7.5, *fetched.StrategicFit)

	// Payload round trip: phases, demand series and hierarchy survive intact.
	require.Len(t, fetched.Phases, 2)
	assert.Equal(t, "build", fetched.Phases[0].Name)
	require.Len(t, fetched.Phases[0].Roles, 1)
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2}, fetched.Phases[0].Roles[0].Demand)
	assert.NotNil(t, fetched.RootPhase())
	require.Len(t, fetched.Hierarchy, 2)
	assert.Equal(t, domain.RootPhaseKey, fetched.Hierarchy[0].Key)
}

func TestPlanRepo_NullableColumns(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	actuals := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	plan := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithActualDataUntil(actuals))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ActualDataUntil)
	assert.True(t, actuals.Equal(*fetched.ActualDataUntil))
	assert.Nil(t, fetched.StrategicFit)
	assert.Nil(t, fetched.RiskScore)
}

func TestPlanRepo_Latest_PicksNewestVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v1 := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithVersion(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	v2 := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithVersion(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	baseline := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithVariant(domain.VariantBaseline),
		testutil.WithVersion(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Create(ctx, v1))
	require.NoError(t, repo.Create(ctx, v2))
	require.NoError(t, repo.Create(ctx, baseline))

	latest, err := repo.Latest(ctx, "proj-1", string(domain.VariantWorking))
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)

	latestBaseline, err := repo.Latest(ctx, "proj-1", string(domain.VariantBaseline))
	require.NoError(t, err)
	assert.Equal(t, baseline.ID, latestBaseline.ID)
}

func TestPlanRepo_Latest_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)

	_, err := repo.Latest(context.Background(), "ghost", string(domain.VariantWorking))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPlanRepo_ListVersions(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v2 := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithVersion(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	v1 := testutil.NewTestPlan("proj-1", start, 6,
		testutil.WithVersion(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	other := testutil.NewTestPlan("proj-2", start, 6)
	require.NoError(t, repo.Create(ctx, v2))
	require.NoError(t, repo.Create(ctx, v1))
	require.NoError(t, repo.Create(ctx, other))

	versions, err := repo.ListVersions(ctx, "proj-1", string(domain.VariantWorking))
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, v1.ID, versions[0].ID)
	assert.Equal(t, v2.ID, versions[1].ID)
}

func TestPlanRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plan := testutil.NewTestPlan("proj-1", start, 6)
	require.NoError(t, repo.Create(ctx, plan))

	plan.Name = "Renamed"
	plan.Phases[0].Roles[0].Demand[0] = 9
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.Equal(t, 9.0, fetched.Phases[0].Roles[0].Demand[0])
}

func TestPlanRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan("proj-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6)
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	_, err := repo.GetByID(ctx, plan.ID)
	assert.Error(t, err)
}
