package engine

import (
	"math"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// ScaleOptions describes a timeline change for ScalePlan. FreezeUntil, when
// set, marks the actual-data boundary: months before it hold recorded
// figures and are carried over untouched.
type ScaleOptions struct {
	NewStart    time.Time
	NewEnd      time.Time
	FreezeUntil *time.Time
}

// ScalePlan produces a new plan for the shifted or resized timeline. Phase
// offsets and durations are rescaled by the global time factor
// newDays/oldDays, demand arrays are redistributed sum-proportionally by the
// same factor, milestone offsets and invoice amounts scale along so every
// invoice keeps its share of total plan revenue. A frozen prefix (recorded
// actuals) is left byte-for-byte as it was. The result is re-validated;
// when validation fails no plan is returned, only the report.
func ScalePlan(plan *domain.Plan, opts ScaleOptions) (*domain.Plan, *ValidationReport) {
	if plan == nil || opts.NewStart.IsZero() || opts.NewEnd.IsZero() || opts.NewEnd.Before(opts.NewStart) {
		return nil, nil
	}
	oldDays := plan.ProjectDays()
	if oldDays <= 0 {
		return nil, nil
	}
	newDays := domain.DaySpan(opts.NewStart, opts.NewEnd)
	factor := float64(newDays) / float64(oldDays)

	out := clonePlan(plan)
	out.StartDate = opts.NewStart
	out.EndDate = opts.NewEnd
	out.DurationMonths = domain.MonthSpan(opts.NewStart, opts.NewEnd)

	freezeCol := -1
	freezeDay := -1
	if opts.FreezeUntil != nil {
		freezeCol = domain.MonthIndex(*opts.FreezeUntil)
		freezeDay = domain.DaySpan(opts.NewStart, *opts.FreezeUntil) - 1
	}

	for i := range out.Phases {
		oldPh := &plan.Phases[i]
		ph := &out.Phases[i]

		oldPhaseStart := plan.StartDate.AddDate(0, 0, oldPh.StartOffsetDays)
		oldPhaseEnd := oldPhaseStart.AddDate(0, 0, maxInt(oldPh.DurationDays-1, 0))

		frozenStart := opts.FreezeUntil != nil && oldPhaseStart.Before(*opts.FreezeUntil)
		frozenWhole := opts.FreezeUntil != nil && oldPhaseEnd.Before(*opts.FreezeUntil)

		switch {
		case ph.Name == domain.RootPhaseKey:
			ph.StartOffsetDays = 0
			ph.DurationDays = newDays
		case frozenWhole:
			// Entirely inside the recorded span: nothing moves.
		case frozenStart:
			ph.DurationDays = int(math.Round(float64(oldPh.DurationDays) * factor))
			// A shrinking phase must still reach the end of the boundary's
			// month, or its recorded months would fall off the plan.
			minEnd := domain.DaySpan(opts.NewStart, endOfMonth(freezeCol))
			if ph.StartOffsetDays+ph.DurationDays < minEnd {
				ph.DurationDays = minEnd - ph.StartOffsetDays
			}
		default:
			ph.StartOffsetDays = int(math.Round(float64(oldPh.StartOffsetDays) * factor))
			ph.DurationDays = int(math.Round(float64(oldPh.DurationDays) * factor))
		}
		// Rounding both offset and duration up can overshoot the plan end by
		// a day; clamp so the scaled plan stays self-consistent.
		if ph.StartOffsetDays+ph.DurationDays > newDays {
			ph.DurationDays = maxInt(newDays-ph.StartOffsetDays, 0)
		}
		ph.RelStart, ph.RelEnd = ph.RelRange(out.StartDate)

		scalePhaseDemands(oldPh, ph, plan.StartDate, out.StartDate, factor, freezeCol)

		for j := range ph.Milestones {
			ms := &ph.Milestones[j]
			ms.OffsetDays = int(math.Round(float64(plan.Phases[i].Milestones[j].OffsetDays) * factor))
			if freezeDay >= 0 && ms.OffsetDays < freezeDay {
				ms.OffsetDays = freezeDay
			}
			if ms.Invoice != nil {
				ms.Invoice.Amount = round3(ms.Invoice.Amount * factor)
			}
		}
	}

	report := Validate(out)
	if !report.Valid {
		return nil, report
	}
	return out, report
}

// scalePhaseDemands redistributes every demand array of the phase onto its
// new month window, freezing the months before the actual-data boundary.
func scalePhaseDemands(oldPh, ph *domain.Phase, oldPlanStart, newPlanStart time.Time, factor float64, freezeCol int) {
	oldSpanStart := oldPlanStart.AddDate(0, 0, oldPh.StartOffsetDays)
	oldSpanEnd := oldSpanStart.AddDate(0, 0, maxInt(oldPh.DurationDays-1, 0))
	newSpanStart := newPlanStart.AddDate(0, 0, ph.StartOffsetDays)
	newSpanEnd := newSpanStart.AddDate(0, 0, maxInt(ph.DurationDays-1, 0))

	freeze := 0
	if freezeCol >= 0 {
		freeze = freezeCol - domain.MonthIndex(newSpanStart)
		if freeze < 0 {
			freeze = 0
		}
	}

	for j := range ph.Roles {
		ph.Roles[j].Demand = Redistribute(oldPh.Roles[j].Demand, oldSpanStart, oldSpanEnd, newSpanStart, newSpanEnd, factor, freeze)
	}
	for j := range ph.Costs {
		ph.Costs[j].Demand = Redistribute(oldPh.Costs[j].Demand, oldSpanStart, oldSpanEnd, newSpanStart, newSpanEnd, factor, freeze)
	}
}

func clonePlan(p *domain.Plan) *domain.Plan {
	out := *p
	if p.ActualDataUntil != nil {
		t := *p.ActualDataUntil
		out.ActualDataUntil = &t
	}
	if p.StrategicFit != nil {
		v := *p.StrategicFit
		out.StrategicFit = &v
	}
	if p.RiskScore != nil {
		v := *p.RiskScore
		out.RiskScore = &v
	}

	out.Phases = make([]domain.Phase, len(p.Phases))
	for i := range p.Phases {
		src := &p.Phases[i]
		dst := *src
		dst.Roles = make([]domain.RoleDemand, len(src.Roles))
		for j, rd := range src.Roles {
			rd.Demand = append([]float64(nil), rd.Demand...)
			dst.Roles[j] = rd
		}
		dst.Costs = make([]domain.CostDemand, len(src.Costs))
		for j, cd := range src.Costs {
			cd.Demand = append([]float64(nil), cd.Demand...)
			dst.Costs[j] = cd
		}
		dst.Milestones = make([]domain.Milestone, len(src.Milestones))
		for j, ms := range src.Milestones {
			if ms.Invoice != nil {
				inv := *ms.Invoice
				ms.Invoice = &inv
			}
			ms.Deliverables = append([]string(nil), ms.Deliverables...)
			dst.Milestones[j] = ms
		}
		out.Phases[i] = dst
	}

	out.Hierarchy = make([]domain.HierarchyNode, len(p.Hierarchy))
	for i, n := range p.Hierarchy {
		n.ChildKeys = append([]string(nil), n.ChildKeys...)
		out.Hierarchy[i] = n
	}
	return &out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
