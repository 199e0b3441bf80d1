package engine

import (
	"math"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// criteria is the ordered battery evaluated by Validate. Order matters: the
// date criteria normalize the span the later criteria measure against, and
// the root-phase criterion computes the scaling correction the phase and
// milestone criteria consume.
var criteria = []criterion{
	{id: "date-order", stop: false, apply: healDateOrder},
	{id: "duration", stop: false, apply: healDuration},
	{id: "root-phase", stop: false, apply: healRootPhase},
	{id: "phase-structure", stop: true, apply: checkPhases},
	{id: "role-demand", stop: true, apply: checkRoleDemand},
	{id: "cost-demand", stop: true, apply: checkCostDemand},
	{id: "scores", stop: false, apply: healScores},
	{id: "milestones", stop: true, apply: checkMilestones},
	{id: "hierarchy-count", stop: true, apply: checkHierarchyCount},
}

// checkMinimumShape is the hard-abort gate: without a plan, both dates and a
// name there is nothing left to heal.
func checkMinimumShape(plan *domain.Plan, report *ValidationReport) bool {
	if plan == nil {
		report.add("shape", SeverityViolation, false, "no plan supplied")
		return false
	}
	ok := true
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() {
		report.add("shape", SeverityViolation, false, "plan %q is missing start or end date", plan.Name)
		ok = false
	}
	if plan.Name == "" {
		report.add("shape", SeverityViolation, false, "plan has no name")
		ok = false
	}
	return ok
}

func healDateOrder(hc *healContext) bool {
	p := hc.plan
	if p.EndDate.Before(p.StartDate) {
		p.StartDate, p.EndDate = p.EndDate, p.StartDate
		hc.report.add("date-order", SeverityCorrected, true, "start and end dates were reversed, swapped")
	}
	if p.StartDate.Before(domain.Epoch) {
		shift := domain.DaySpan(p.StartDate, domain.Epoch) - 1
		p.StartDate = p.StartDate.AddDate(0, 0, shift)
		p.EndDate = p.EndDate.AddDate(0, 0, shift)
		hc.report.add("date-order", SeverityCorrected, true, "start date preceded the calendar epoch, shifted both dates forward by %d days", shift)
	}
	return true
}

func healDuration(hc *healContext) bool {
	p := hc.plan
	want := domain.MonthSpan(p.StartDate, p.EndDate)
	if p.DurationMonths != want {
		hc.report.add("duration", SeverityCorrected, true, "duration was %d months, recomputed to %d", p.DurationMonths, want)
		p.DurationMonths = want
	}
	return true
}

// healRootPhase ensures the sentinel root phase exists and spans the full
// plan. A day-span mismatch on an existing root produces the scaling
// correction factor consumed by the later criteria.
func healRootPhase(hc *healContext) bool {
	p := hc.plan
	projectDays := p.ProjectDays()

	root := p.RootPhase()
	if root == nil {
		relEnd := domain.MonthSpan(p.StartDate, p.EndDate)
		p.Phases = append(p.Phases, domain.Phase{
			Name:            domain.RootPhaseKey,
			StartOffsetDays: 0,
			DurationDays:    projectDays,
			RelStart:        1,
			RelEnd:          relEnd,
		})
		p.Hierarchy = append(p.Hierarchy, domain.HierarchyNode{
			Key:          domain.RootPhaseKey,
			ElementIndex: len(p.Phases) - 1,
		})
		hc.report.add("root-phase", SeverityCorrected, true, "root phase was missing, synthesized spanning the full plan")
		return true
	}

	if root.DurationDays > 0 && root.DurationDays != projectDays {
		hc.scaleCorrection = float64(projectDays) / float64(root.DurationDays)
		hc.report.add("root-phase", SeverityCorrected, true,
			"root phase covers %d days against a %d-day plan, phases will be rescaled by %.4f",
			root.DurationDays, projectDays, hc.scaleCorrection)
	}
	return true
}

func checkPhases(hc *healContext) bool {
	p := hc.plan
	projectDays := p.ProjectDays()
	ok := true

	for i := range p.Phases {
		ph := &p.Phases[i]

		node := p.FindNode(ph.Name)
		if node == nil {
			hc.report.add("phase-structure", SeverityViolation, false, "phase %q has no hierarchy node", ph.Name)
			ok = false
			continue
		}
		if node.ElementIndex != i {
			hc.report.add("phase-structure", SeverityViolation, false,
				"phase %q hierarchy index %d does not match position %d", ph.Name, node.ElementIndex, i)
			ok = false
		}

		if ph.StartOffsetDays < 0 {
			hc.report.add("phase-structure", SeverityViolation, false,
				"phase %q starts %d days before the plan", ph.Name, -ph.StartOffsetDays)
			ok = false
		}

		if hc.scaleCorrection > 0 {
			if ph.Name == domain.RootPhaseKey {
				// The root defines the correction; snap it exactly so a
				// second validator pass is a no-op.
				ph.StartOffsetDays = 0
				ph.DurationDays = projectDays
			} else {
				ph.StartOffsetDays = int(math.Round(float64(ph.StartOffsetDays) * hc.scaleCorrection))
				ph.DurationDays = int(math.Round(float64(ph.DurationDays) * hc.scaleCorrection))
			}
			hc.report.add("phase-structure", SeverityCorrected, true,
				"phase %q rescaled to offset %d, duration %d", ph.Name, ph.StartOffsetDays, ph.DurationDays)
		}

		if ph.StartOffsetDays+ph.DurationDays > projectDays {
			hc.report.add("phase-structure", SeverityViolation, false,
				"phase %q ends %d days past the plan end", ph.Name, ph.StartOffsetDays+ph.DurationDays-projectDays)
			ok = false
		}

		relStart, relEnd := ph.RelRange(p.StartDate)
		if ph.RelStart != relStart || ph.RelEnd != relEnd {
			hc.report.add("phase-structure", SeverityCorrected, true,
				"phase %q month range drifted to %d..%d, recomputed as %d..%d", ph.Name, ph.RelStart, ph.RelEnd, relStart, relEnd)
			ph.RelStart = relStart
			ph.RelEnd = relEnd
		}
	}
	return ok
}

func checkRoleDemand(hc *healContext) bool {
	ok := true
	for i := range hc.plan.Phases {
		ph := &hc.plan.Phases[i]
		for j := range ph.Roles {
			if !checkDemandArray(hc, ph, &ph.Roles[j].Demand, "role-demand",
				"role %d demand", ph.Roles[j].RoleUID) {
				ok = false
			}
		}
	}
	return ok
}

func checkCostDemand(hc *healContext) bool {
	ok := true
	for i := range hc.plan.Phases {
		ph := &hc.plan.Phases[i]
		for j := range ph.Costs {
			if !checkDemandArray(hc, ph, &ph.Costs[j].Demand, "cost-demand",
				"cost type %d demand", ph.Costs[j].CostTypeID) {
				ok = false
			}
		}
	}
	return ok
}

// checkDemandArray enforces length (healed by sum-preserving redistribution
// when no recorded actuals forbid it) and non-negativity (reported only) on
// one demand series.
func checkDemandArray(hc *healContext, ph *domain.Phase, values *[]float64, criterionID, what string, id int) bool {
	ok := true
	want := ph.Months()

	if len(*values) != want && want > 0 {
		if hc.lengthHealAllowed {
			oldLen := len(*values)
			startCol := domain.MonthIndex(hc.plan.StartDate) + ph.RelStart - 1
			spanStart := domain.MonthStart(startCol)
			oldEnd := endOfMonth(startCol + oldLen - 1)
			if oldLen == 0 {
				oldEnd = endOfMonth(startCol)
			}
			newEnd := endOfMonth(startCol + want - 1)

			before := domain.Sum(*values)
			healed := Redistribute(*values, spanStart, oldEnd, spanStart, newEnd, 1.0, 0)
			*values = healed
			hc.report.add(criterionID, SeverityCorrected, true,
				"phase %q "+what+" had %d entries for %d months, redistributed", ph.Name, id, oldLen, want)
			if !SumsMatch(before, domain.Sum(healed)) {
				hc.report.add(criterionID, SeveritySevere, false,
					"phase %q "+what+" total drifted from %.3f to %.3f during redistribution", ph.Name, id, before, domain.Sum(healed))
			}
		} else {
			hc.report.add(criterionID, SeverityViolation, false,
				"phase %q "+what+" has %d entries for %d months and recorded actuals forbid redistribution", ph.Name, id, len(*values), want)
			ok = false
		}
	}

	for _, v := range *values {
		if v < 0 {
			hc.report.add(criterionID, SeverityViolation, false,
				"phase %q "+what+" contains a negative value %.3f", ph.Name, id, v)
			ok = false
			break
		}
	}
	return ok
}

func healScores(hc *healContext) bool {
	p := hc.plan
	if p.StrategicFit != nil && (*p.StrategicFit < 0 || *p.StrategicFit > 10) {
		hc.report.add("scores", SeverityCorrected, true, "strategic fit %.2f outside 0..10, reset to 0", *p.StrategicFit)
		*p.StrategicFit = 0
	}
	if p.RiskScore != nil && (*p.RiskScore < 0 || *p.RiskScore > 10) {
		hc.report.add("scores", SeverityCorrected, true, "risk score %.2f outside 0..10, reset to 0", *p.RiskScore)
		*p.RiskScore = 0
	}
	return true
}

func checkMilestones(hc *healContext) bool {
	p := hc.plan
	ok := true

	for i := range p.Phases {
		ph := &p.Phases[i]
		for j := range ph.Milestones {
			ms := &ph.Milestones[j]

			node := p.FindNode(ms.Name)
			if node == nil {
				hc.report.add("milestones", SeverityViolation, false,
					"milestone %q has no hierarchy node", ms.Name)
				ok = false
			} else {
				if node.ElementIndex != j {
					hc.report.add("milestones", SeverityInfo, false,
						"milestone %q hierarchy index %d does not match position %d", ms.Name, node.ElementIndex, j)
				}
				if node.ParentKey != "" && node.ParentKey != ph.Name {
					hc.report.add("milestones", SeverityInfo, false,
						"milestone %q hierarchy parent %q does not match phase %q", ms.Name, node.ParentKey, ph.Name)
				}
			}

			// Milestone-within-phase-limits stays informational by design
			// history: tightening it would reject previously accepted plans.

			if hc.scaleCorrection > 0 {
				ms.OffsetDays = int(math.Round(float64(ms.OffsetDays) * hc.scaleCorrection))
				hc.report.add("milestones", SeverityCorrected, true,
					"milestone %q offset rescaled to %d days", ms.Name, ms.OffsetDays)
			}
		}
	}
	return ok
}

func checkHierarchyCount(hc *healContext) bool {
	p := hc.plan
	if len(p.Hierarchy) != p.ElementCount() {
		hc.report.add("hierarchy-count", SeverityViolation, false,
			"hierarchy holds %d nodes for %d plan elements", len(p.Hierarchy), p.ElementCount())
		return false
	}
	return true
}

func endOfMonth(monthIdx int) time.Time {
	return domain.MonthStart(monthIdx+1).AddDate(0, 0, -1)
}
