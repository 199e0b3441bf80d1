package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// ConvertSnapshot transforms a validated SnapshotImport into a domain
// snapshot ready for persistence. Call ValidateSnapshotImport first;
// ConvertSnapshot assumes the schema is valid.
func ConvertSnapshot(schema *SnapshotImport) (*domain.Snapshot, error) {
	takenAt, err := time.Parse(time.RFC3339, schema.TakenAt)
	if err != nil {
		return nil, fmt.Errorf("parsing taken_at: %w", err)
	}

	roles := make([]domain.Role, 0, len(schema.Roles))
	for _, r := range schema.Roles {
		roles = append(roles, domain.Role{
			UID:                     r.UID,
			Name:                    r.Name,
			Type:                    domain.RoleType(r.Type),
			IsSummary:               r.IsSummary,
			DailyRate:               r.DailyRate,
			DefaultCapacityPerDay:   r.DefaultCapacityPerDay,
			DefaultCapacityPerMonth: r.DefaultCapacityPerMonth,
			EntryDate:               parseOptionalDate(r.EntryDate),
			ExitDate:                parseOptionalDate(r.ExitDate),
			IsExternal:              r.IsExternal,
			SubRoles:                convertRefs(r.SubRoles),
			Teams:                   convertRefs(r.Teams),
			ParentUID:               r.ParentUID,
			AggregationUID:          r.AggregationUID,
		})
	}

	costTypes := make([]domain.CostType, 0, len(schema.CostTypes))
	for _, ct := range schema.CostTypes {
		costTypes = append(costTypes, domain.CostType{ID: ct.ID, Name: ct.Name})
	}

	return &domain.Snapshot{
		ID:        uuid.New().String(),
		Timestamp: takenAt,
		Roles:     roles,
		CostTypes: costTypes,
	}, nil
}

// ConvertPlan transforms a validated PlanImport into a domain plan. The
// month-column range of each phase is derived from its day offsets; a
// missing hierarchy is synthesized as a flat tree under the root phase.
func ConvertPlan(schema *PlanImport) (*domain.Plan, error) {
	startDate, err := time.Parse("2006-01-02", schema.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", schema.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}

	version := time.Now().UTC().Truncate(time.Second)
	if schema.Version != nil {
		version, err = time.Parse(time.RFC3339, *schema.Version)
		if err != nil {
			return nil, fmt.Errorf("parsing version: %w", err)
		}
	}

	variant := domain.CoalesceStr(schema.Variant, string(domain.VariantWorking))
	durationMonths := domain.IntFromPtrWithDefault(domain.MonthSpan(startDate, endDate), schema.DurationMonths)

	plan := &domain.Plan{
		ID:              uuid.New().String(),
		ProjectID:       schema.ProjectID,
		Variant:         variant,
		Timestamp:       version,
		Name:            schema.Name,
		StartDate:       startDate,
		EndDate:         endDate,
		DurationMonths:  durationMonths,
		ActualDataUntil: parseOptionalDate(schema.ActualDataUntil),
		StrategicFit:    schema.StrategicFit,
		RiskScore:       schema.RiskScore,
	}

	for _, ph := range schema.Phases {
		phase := domain.Phase{
			Name:            ph.Name,
			StartOffsetDays: ph.StartOffsetDays,
			DurationDays:    ph.DurationDays,
		}
		phase.RelStart, phase.RelEnd = phase.RelRange(startDate)

		for _, rd := range ph.Roles {
			phase.Roles = append(phase.Roles, domain.RoleDemand{
				RoleUID: rd.RoleUID,
				TeamUID: domain.IntFromPtrWithDefault(-1, rd.TeamUID),
				Demand:  append([]float64(nil), rd.Demand...),
			})
		}
		for _, cd := range ph.Costs {
			phase.Costs = append(phase.Costs, domain.CostDemand{
				CostTypeID: cd.CostTypeID,
				Demand:     append([]float64(nil), cd.Demand...),
			})
		}
		for _, m := range ph.Milestones {
			milestone := domain.Milestone{
				Name:         m.Name,
				OffsetDays:   m.OffsetDays,
				Penalty:      m.Penalty,
				PercentDone:  m.PercentDone,
				Deliverables: append([]string(nil), m.Deliverables...),
			}
			if m.InvoiceAmount != nil {
				milestone.Invoice = &domain.Invoice{Amount: *m.InvoiceAmount}
			}
			phase.Milestones = append(phase.Milestones, milestone)
		}

		plan.Phases = append(plan.Phases, phase)
	}

	if len(schema.Hierarchy) > 0 {
		for _, n := range schema.Hierarchy {
			plan.Hierarchy = append(plan.Hierarchy, domain.HierarchyNode{
				Key:          n.Key,
				ParentKey:    n.ParentKey,
				ChildKeys:    append([]string(nil), n.ChildKeys...),
				ElementIndex: n.ElementIndex,
			})
		}
	} else {
		plan.Hierarchy = synthesizeHierarchy(plan)
	}

	return plan, nil
}

// ConvertCapacity transforms a validated CapacityImport into domain
// capacity overrides.
func ConvertCapacity(schema *CapacityImport) ([]domain.CapacityOverride, error) {
	overrides := make([]domain.CapacityOverride, 0, len(schema.Overrides))
	for _, o := range schema.Overrides {
		start, err := time.Parse("2006-01-02", o.StartOfYear)
		if err != nil {
			return nil, fmt.Errorf("parsing start_of_year: %w", err)
		}
		overrides = append(overrides, domain.CapacityOverride{
			RoleUID:     o.RoleUID,
			StartOfYear: start,
			Months:      append([]*float64(nil), o.Months...),
		})
	}
	return overrides, nil
}

// synthesizeHierarchy builds a flat structure tree: every phase hangs off
// the root phase and every milestone off its phase. When the import carries
// no root phase, no root node is emitted either; validation synthesizes the
// pair together.
func synthesizeHierarchy(plan *domain.Plan) []domain.HierarchyNode {
	var nodes []domain.HierarchyNode

	if plan.RootPhase() != nil {
		root := domain.HierarchyNode{Key: domain.RootPhaseKey}
		for i := range plan.Phases {
			if plan.Phases[i].Name == domain.RootPhaseKey {
				root.ElementIndex = i
				continue
			}
			root.ChildKeys = append(root.ChildKeys, plan.Phases[i].Name)
		}
		nodes = append(nodes, root)
	}

	for i := range plan.Phases {
		ph := &plan.Phases[i]

		if ph.Name != domain.RootPhaseKey {
			node := domain.HierarchyNode{
				Key: ph.Name, ParentKey: domain.RootPhaseKey, ElementIndex: i,
			}
			for j := range ph.Milestones {
				node.ChildKeys = append(node.ChildKeys, ph.Milestones[j].Name)
			}
			nodes = append(nodes, node)
		} else {
			for j := range ph.Milestones {
				nodes[0].ChildKeys = append(nodes[0].ChildKeys, ph.Milestones[j].Name)
			}
		}

		for j := range ph.Milestones {
			nodes = append(nodes, domain.HierarchyNode{
				Key: ph.Milestones[j].Name, ParentKey: ph.Name, ElementIndex: j,
			})
		}
	}

	return nodes
}

func convertRefs(refs []WeightedRefImport) []domain.WeightedRef {
	if len(refs) == 0 {
		return nil
	}
	out := make([]domain.WeightedRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, domain.WeightedRef{
			UID:    ref.UID,
			Weight: domain.Float64FromPtrWithDefault(1.0, ref.Weight),
		})
	}
	return out
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
