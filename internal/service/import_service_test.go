package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/importer"
	"github.com/jheinsohn/plantafel/internal/repository"
	"github.com/jheinsohn/plantafel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportFixture(t *testing.T) (ImportService, *repository.SQLiteSnapshotRepo, *repository.SQLitePlanRepo, *repository.SQLiteCapacityOverrideRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	overrides := repository.NewSQLiteCapacityOverrideRepo(database)
	svc := NewImportService(snapshots, plans, testutil.NewTestUoW(database))
	return svc, snapshots, plans, overrides
}

func snapshotSchema() *importer.SnapshotImport {
	return &importer.SnapshotImport{
		TakenAt: "2024-12-01T00:00:00Z",
		Roles: []importer.RoleImport{
			{UID: 10, Name: "Platform", Type: 2, DailyRate: 900, DefaultCapacityPerMonth: 36,
				SubRoles: []importer.WeightedRefImport{{UID: 11}}},
			{UID: 11, Name: "Ada", Type: 1, DailyRate: 1000, DefaultCapacityPerMonth: 18,
				Teams: []importer.WeightedRefImport{{UID: 10}}},
		},
		CostTypes: []importer.CostTypeImport{{ID: 1, Name: "Travel"}},
	}
}

func planSchema() *importer.PlanImport {
	return &importer.PlanImport{
		ProjectID: "proj-1",
		Name:      "Rollout",
		StartDate: "2025-01-01",
		EndDate:   "2025-06-30",
		Phases: []importer.PhaseImport{
			{Name: "build", StartOffsetDays: 0, DurationDays: 181,
				Roles: []importer.RoleDemandImport{{RoleUID: 11, Demand: []float64{2, 2, 2, 2, 2, 2}}}},
			{Name: "__project__", StartOffsetDays: 0, DurationDays: 181},
		},
	}
}

func TestImportService_Snapshot(t *testing.T) {
	svc, snapshots, _, _ := newImportFixture(t)
	ctx := context.Background()

	result, err := svc.ImportSnapshotFromSchema(ctx, snapshotSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, result.RoleCount)
	assert.Equal(t, 1, result.CostTypeCount)

	stored, err := snapshots.GetByID(ctx, result.SnapshotID)
	require.NoError(t, err)
	assert.NotNil(t, stored.RoleByUID(11))
}

func TestImportService_Snapshot_ValidationErrors(t *testing.T) {
	svc, _, _, _ := newImportFixture(t)

	schema := snapshotSchema()
	schema.Roles[1].UID = 10 // duplicate

	_, err := svc.ImportSnapshotFromSchema(context.Background(), schema)
	require.Error(t, err)
	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.ErrInvalidImport, planErr.Code)
	assert.Contains(t, planErr.Message, "duplicate uid")
}

func TestImportService_Plan_PersistsHealedVersion(t *testing.T) {
	svc, _, plans, _ := newImportFixture(t)
	ctx := context.Background()

	// No explicit duration: conversion derives and validation confirms it.
	result, err := svc.ImportPlanFromSchema(ctx, planSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "proj-1", result.ProjectID)
	assert.Equal(t, 2, result.PhaseCount)

	stored, err := plans.GetByID(ctx, result.PlanID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.DurationMonths)
	assert.NotNil(t, stored.RootPhase())
}

func TestImportService_Plan_RejectsUnhealable(t *testing.T) {
	svc, _, plans, _ := newImportFixture(t)
	ctx := context.Background()

	schema := planSchema()
	schema.Phases[0].Roles[0].Demand = []float64{2, -3, 2, 2, 2, 2}

	_, err := svc.ImportPlanFromSchema(ctx, schema)
	require.Error(t, err)
	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.ErrValidationFailed, planErr.Code)

	list, err := plans.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "invalid plan must not be persisted")
}

func TestImportService_Capacity(t *testing.T) {
	svc, _, _, overrides := newImportFixture(t)
	ctx := context.Background()

	ten := 10.0
	schema := &importer.CapacityImport{Overrides: []importer.OverrideImport{
		{RoleUID: 11, StartOfYear: "2025-01-01", Months: []*float64{&ten, &ten}},
		{RoleUID: 21, StartOfYear: "2025-01-01", Months: []*float64{nil, &ten}},
	}}
	path := writeImportFile(t, schema)

	result, err := svc.ImportCapacity(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.OverrideCount)
	assert.Equal(t, 2, result.RoleCount)

	stored, err := overrides.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestImportService_Capacity_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	overrides := repository.NewSQLiteCapacityOverrideRepo(database)

	failing := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    errors.New("disk full"),
	}
	svc := NewImportService(snapshots, plans, failing)

	ten := 10.0
	schema := &importer.CapacityImport{Overrides: []importer.OverrideImport{
		{RoleUID: 11, StartOfYear: "2025-01-01", Months: []*float64{&ten}},
		{RoleUID: 21, StartOfYear: "2025-01-01", Months: []*float64{&ten}},
	}}
	path := writeImportFile(t, schema)

	_, err := svc.ImportCapacity(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	stored, err := overrides.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored, "partial capacity import must be rolled back")
}

func TestImportService_LoadsFromFile(t *testing.T) {
	svc, _, _, _ := newImportFixture(t)

	path := writeImportFile(t, snapshotSchema())
	result, err := svc.ImportSnapshot(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RoleCount)

	_, err = svc.ImportSnapshot(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func writeImportFile(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), fmt.Sprintf("import-%d.json", time.Now().UnixNano()))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
