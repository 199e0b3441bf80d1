package importer

import (
	"testing"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSnapshot(t *testing.T) {
	entry := "2025-02-01"
	half := 0.5
	schema := &SnapshotImport{
		TakenAt: "2025-03-01T08:00:00Z",
		Roles: []RoleImport{
			{UID: 10, Name: "Platform", Type: 2, DailyRate: 900,
				SubRoles: []WeightedRefImport{{UID: 11}, {UID: 12, Weight: &half}}},
			{UID: 11, Name: "Ada", Type: 1, DailyRate: 1000, EntryDate: &entry,
				Teams: []WeightedRefImport{{UID: 10}}},
			{UID: 12, Name: "Ben", Type: 1, DailyRate: 700,
				Teams: []WeightedRefImport{{UID: 10, Weight: &half}}},
		},
		CostTypes: []CostTypeImport{{ID: 1, Name: "Travel"}},
	}

	snap, err := ConvertSnapshot(schema)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), snap.Timestamp)
	require.Len(t, snap.Roles, 3)

	team := snap.RoleByUID(10)
	require.NotNil(t, team)
	assert.Equal(t, domain.RoleTeam, team.Type)
	require.Len(t, team.SubRoles, 2)
	// Missing weights default to full allocation.
	assert.Equal(t, 1.0, team.SubRoles[0].Weight)
	assert.Equal(t, 0.5, team.SubRoles[1].Weight)

	ada := snap.RoleByUID(11)
	require.NotNil(t, ada)
	require.NotNil(t, ada.EntryDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *ada.EntryDate)

	require.Len(t, snap.CostTypes, 1)
	assert.Equal(t, "Travel", snap.CostTypes[0].Name)
}

func TestConvertPlan_DerivesMonthColumns(t *testing.T) {
	schema := validPlanImport()
	schema.Phases[0].StartOffsetDays = 31 // February
	schema.Phases[0].DurationDays = 59    // through March

	plan, err := ConvertPlan(schema)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, string(domain.VariantWorking), plan.Variant)
	assert.Equal(t, 6, plan.DurationMonths)
	require.Len(t, plan.Phases, 1)
	assert.Equal(t, 2, plan.Phases[0].RelStart)
	assert.Equal(t, 3, plan.Phases[0].RelEnd)
	// Unattributed demand carries the no-team sentinel.
	assert.Equal(t, -1, plan.Phases[0].Roles[0].TeamUID)
}

func TestConvertPlan_ExplicitVersionAndVariant(t *testing.T) {
	version := "2025-04-01T12:00:00Z"
	schema := validPlanImport()
	schema.Variant = string(domain.VariantBaseline)
	schema.Version = &version

	plan, err := ConvertPlan(schema)
	require.NoError(t, err)
	assert.Equal(t, string(domain.VariantBaseline), plan.Variant)
	assert.Equal(t, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC), plan.Timestamp)
}

func TestConvertPlan_SynthesizesHierarchy(t *testing.T) {
	schema := validPlanImport()
	schema.Phases = append(schema.Phases, PhaseImport{
		Name: domain.RootPhaseKey, StartOffsetDays: 0, DurationDays: 181,
	})
	schema.Phases[0].Milestones = []MilestoneImport{
		{Name: "go-live", OffsetDays: 170},
	}

	plan, err := ConvertPlan(schema)
	require.NoError(t, err)

	// Root, build and the milestone each get a node.
	assert.Equal(t, plan.ElementCount(), len(plan.Hierarchy))

	root := plan.FindNode(domain.RootPhaseKey)
	require.NotNil(t, root)
	assert.Equal(t, 1, root.ElementIndex)
	assert.Equal(t, []string{"build"}, root.ChildKeys)

	build := plan.FindNode("build")
	require.NotNil(t, build)
	assert.Equal(t, domain.RootPhaseKey, build.ParentKey)
	assert.Equal(t, []string{"go-live"}, build.ChildKeys)

	milestone := plan.FindNode("go-live")
	require.NotNil(t, milestone)
	assert.Equal(t, "build", milestone.ParentKey)
	assert.Equal(t, 0, milestone.ElementIndex)
}

func TestConvertPlan_NoRootPhaseEmitsNoRootNode(t *testing.T) {
	plan, err := ConvertPlan(validPlanImport())
	require.NoError(t, err)

	// Validation synthesizes the root phase and node as a pair; emitting a
	// lone root node here would desync the hierarchy count.
	assert.Nil(t, plan.FindNode(domain.RootPhaseKey))
	assert.Equal(t, plan.ElementCount(), len(plan.Hierarchy))
}

func TestConvertPlan_KeepsExplicitHierarchy(t *testing.T) {
	schema := validPlanImport()
	schema.Hierarchy = []HierarchyNodeImport{
		{Key: "build", ElementIndex: 0},
	}

	plan, err := ConvertPlan(schema)
	require.NoError(t, err)
	require.Len(t, plan.Hierarchy, 1)
	assert.Equal(t, "build", plan.Hierarchy[0].Key)
}

func TestConvertPlan_Milestones(t *testing.T) {
	amount := 120.0
	schema := validPlanImport()
	schema.Phases[0].Milestones = []MilestoneImport{
		{Name: "go-live", OffsetDays: 170, InvoiceAmount: &amount,
			Penalty: 10, PercentDone: 0.25, Deliverables: []string{"handbook"}},
	}

	plan, err := ConvertPlan(schema)
	require.NoError(t, err)
	require.Len(t, plan.Phases[0].Milestones, 1)
	m := plan.Phases[0].Milestones[0]
	require.NotNil(t, m.Invoice)
	assert.Equal(t, 120.0, m.Invoice.Amount)
	assert.Equal(t, 10.0, m.Penalty)
	assert.Equal(t, []string{"handbook"}, m.Deliverables)
}

func TestConvertCapacity(t *testing.T) {
	ten := 10.0
	schema := &CapacityImport{Overrides: []OverrideImport{
		{RoleUID: 11, StartOfYear: "2025-01-01", Months: []*float64{&ten, nil, &ten}},
	}}

	overrides, err := ConvertCapacity(schema)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, 11, overrides[0].RoleUID)
	assert.Equal(t, 2025, overrides[0].StartOfYear.Year())
	require.Len(t, overrides[0].Months, 3)
	assert.Nil(t, overrides[0].Months[1])
}
