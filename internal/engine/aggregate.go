package engine

import (
	"github.com/jheinsohn/plantafel/internal/domain"
)

// CostMonth is one month of the aggregated cost series. Personnel figures
// are bucketed into exactly one of Actual (before the actual-data boundary),
// OtherActivity (concerning role working outside the queried team context)
// or Planned. OtherCost and Invoice are summed independently of role
// resolution. All currency figures are in display units; demand figures in
// person-days.
type CostMonth struct {
	Month int // absolute month column

	Actual        float64
	Planned       float64
	OtherActivity float64

	ActualDays        float64
	PlannedDays       float64
	OtherActivityDays float64

	OtherCost float64
	Invoice   float64
}

// CapacityMonth is one month of the capacity-versus-need series for the
// concerning role set, split by internal/external staffing.
type CapacityMonth struct {
	Month int

	InternalDays float64
	ExternalDays float64
	InternalCost float64
	ExternalCost float64

	// DemandDays is the total person-day need attributed to concerning
	// roles that month, for capacity-versus-need comparison.
	DemandDays float64
}

// Aggregation is the full monthly result of a cost/capacity query.
type Aggregation struct {
	Costs    []CostMonth
	Capacity []CapacityMonth
}

// Total returns the summed personnel cost across all buckets and months.
func (a *Aggregation) Total() float64 {
	var t float64
	for _, m := range a.Costs {
		t += m.Actual + m.Planned + m.OtherActivity
	}
	return t
}

// Aggregate converts the plan's phase-relative demand arrays into absolute
// monthly cost and capacity series over the timeline's covered span.
// ResolveConcerning must have run on the timeline for the queried root.
// Months outside the timeline window are clipped, not reported.
func Aggregate(tl *Timeline, plan *domain.Plan, overrides []domain.CapacityOverride) *Aggregation {
	if tl == nil || plan == nil {
		return nil
	}

	agg := &Aggregation{
		Costs:    make([]CostMonth, tl.Months),
		Capacity: make([]CapacityMonth, tl.Months),
	}
	for i := range agg.Costs {
		agg.Costs[i].Month = tl.StartMonth + i
		agg.Capacity[i].Month = tl.StartMonth + i
	}

	actualUntil := -1
	if plan.ActualDataUntil != nil {
		actualUntil = domain.MonthIndex(*plan.ActualDataUntil)
	}
	planStartMonth := domain.MonthIndex(plan.StartDate)

	for pi := range plan.Phases {
		ph := &plan.Phases[pi]
		phaseStart := planStartMonth + ph.RelStart - 1

		for _, rd := range ph.Roles {
			aggregateRoleDemand(tl, agg, rd, phaseStart, actualUntil)
		}

		for _, cd := range ph.Costs {
			for i, v := range cd.Demand {
				m := phaseStart + i
				if !tl.Covers(m) {
					continue
				}
				// Cost types are defined per snapshot; a demand whose type
				// is unknown to the governing snapshot cannot be booked.
				if tl.CostTypeAt(m, cd.CostTypeID) == nil {
					continue
				}
				agg.Costs[m-tl.StartMonth].OtherCost += v
			}
		}

		for _, ms := range ph.Milestones {
			if ms.Invoice == nil {
				continue
			}
			m := domain.MonthIndex(plan.StartDate.AddDate(0, 0, ms.OffsetDays))
			if !tl.Covers(m) {
				continue
			}
			agg.Costs[m-tl.StartMonth].Invoice += ms.Invoice.Amount
		}
	}

	capacityIndex := buildCapacityIndex(overrides)
	aggregateCapacity(tl, agg, capacityIndex)

	return agg
}

// aggregateRoleDemand walks one demand array month by month, resolves the
// role against the concerning set governing that month and books the value
// into exactly one cost bucket.
func aggregateRoleDemand(tl *Timeline, agg *Aggregation, rd domain.RoleDemand, phaseStart, actualUntil int) {
	for i, days := range rd.Demand {
		if days == 0 {
			continue
		}
		m := phaseStart + i
		if !tl.Covers(m) {
			continue
		}

		entry := tl.ConcerningAt(m, rd.RoleUID)
		if entry == nil && rd.TeamUID >= 0 {
			// The person is not directly concerning but the demand names a
			// team that is: attribute the demand via the team.
			entry = tl.ConcerningAt(m, rd.TeamUID)
		}
		if entry == nil {
			continue
		}

		cost := days * tl.dailyRate(m, entry.Role, rd.TeamUID) / 1000

		row := &agg.Costs[m-tl.StartMonth]
		capRow := &agg.Capacity[m-tl.StartMonth]
		capRow.DemandDays += days

		switch {
		case actualUntil >= 0 && m < actualUntil:
			row.Actual += cost
			row.ActualDays += days
		case rd.TeamUID >= 0 && !entry.inTeamContext(rd.TeamUID):
			// Concerning role, but the recorded team assignment is not part
			// of the queried team context: work done elsewhere.
			row.OtherActivity += cost
			row.OtherActivityDays += days
		default:
			row.Planned += cost
			row.PlannedDays += days
		}
	}
}

// inTeamContext reports whether the entry's resolution covers the given team
// id, either as the traversal context or via a recorded back-reference.
func (e *ConcernEntry) inTeamContext(teamUID int) bool {
	if e.TeamUID == teamUID || e.Role.UID == teamUID {
		return true
	}
	_, ok := e.TeamWeights[teamUID]
	return ok
}

// dailyRate resolves the rate for a role in a given month via the active
// snapshot. Individual (non-summary) people always bill their own rate; for
// teams and summary nodes an explicit team rate wins when a team context is
// given.
func (tl *Timeline) dailyRate(monthIdx int, role *domain.Role, teamUID int) float64 {
	cur := tl.RoleAt(monthIdx, role.UID)
	if cur == nil {
		cur = role
	}
	if cur.Type == domain.RolePerson && !cur.IsSummary {
		return cur.DailyRate
	}
	if teamUID >= 0 {
		if team := tl.RoleAt(monthIdx, teamUID); team != nil && team.DailyRate > 0 {
			return team.DailyRate
		}
	}
	return cur.DailyRate
}

// aggregateCapacity sums, per month, the effective capacity of every
// concerning role governing that month, split internal/external. Summary
// roles are aggregation nodes and carry no capacity of their own.
func aggregateCapacity(tl *Timeline, agg *Aggregation, index map[int]capacitySeries) {
	for i := 0; i < tl.Months; i++ {
		m := tl.StartMonth + i
		row := &agg.Capacity[i]

		for _, entry := range tl.ConcerningRoles(m) {
			role := entry.Role
			if role.IsSummary || role.Type != domain.RolePerson {
				continue
			}
			days := tl.effectiveCapacity(role, m, index)
			if days == 0 {
				continue
			}
			cost := days * role.DailyRate / 1000
			if role.IsExternal {
				row.ExternalDays += days
				row.ExternalCost += cost
			} else {
				row.InternalDays += days
				row.InternalCost += cost
			}
		}
	}
}
