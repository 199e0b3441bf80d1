package domain

import "time"

// RootPhaseKey is the sentinel name of the synthetic phase spanning the whole
// plan. Validation synthesizes it when missing.
const RootPhaseKey = "__project__"

// Plan is one time-phased version of a project's resource and cost plan,
// identified by (ProjectID, Variant, Timestamp).
type Plan struct {
	ID        string
	ProjectID string
	Variant   string
	Timestamp time.Time

	Name           string
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths int

	// ActualDataUntil marks the boundary between recorded actuals and
	// forecast. Months before it must never be redistributed or rescaled.
	ActualDataUntil *time.Time

	StrategicFit *float64 // 0..10
	RiskScore    *float64 // 0..10

	Phases    []Phase
	Hierarchy []HierarchyNode
}

// ProjectDays returns the plan's day span, inclusive of both boundary dates.
func (p *Plan) ProjectDays() int {
	return DaySpan(p.StartDate, p.EndDate)
}

// RootPhase returns the sentinel root phase, or nil when it is missing.
func (p *Plan) RootPhase() *Phase {
	for i := range p.Phases {
		if p.Phases[i].Name == RootPhaseKey {
			return &p.Phases[i]
		}
	}
	return nil
}

// Phase is a time-bounded segment of a plan holding resource demand, cost
// demand and milestones. Offsets and durations are counted in days from the
// plan start; RelStart/RelEnd are the derived 1-based month-column range.
type Phase struct {
	Name            string
	StartOffsetDays int
	DurationDays    int
	RelStart        int
	RelEnd          int
	Roles           []RoleDemand
	Costs           []CostDemand
	Milestones      []Milestone
}

// Months returns the phase length in month columns.
func (ph *Phase) Months() int {
	if ph.RelEnd < ph.RelStart {
		return 0
	}
	return ph.RelEnd - ph.RelStart + 1
}

// RelRange recomputes the 1-based month-column range of the phase from its
// day offset and duration against the given plan start date.
func (ph *Phase) RelRange(planStart time.Time) (relStart, relEnd int) {
	start := planStart.AddDate(0, 0, ph.StartOffsetDays)
	end := planStart.AddDate(0, 0, ph.StartOffsetDays+ph.DurationDays-1)
	if ph.DurationDays <= 0 {
		end = start
	}
	relStart = MonthIndex(start) - MonthIndex(planStart) + 1
	relEnd = MonthIndex(end) - MonthIndex(planStart) + 1
	return relStart, relEnd
}

// RoleDemand is a per-month person-day requirement for one role within a
// phase. TeamUID < 0 means the demand is not attributed to a team context.
// The Demand slice length must equal the phase length in months.
type RoleDemand struct {
	RoleUID int
	TeamUID int
	Demand  []float64
}

// CostDemand is a per-month non-personnel cost requirement, in currency
// units, shaped like RoleDemand.
type CostDemand struct {
	CostTypeID int
	Demand     []float64
}

// Milestone marks a dated event within a phase; OffsetDays counts from the
// plan start.
type Milestone struct {
	Name         string
	OffsetDays   int
	Invoice      *Invoice
	Penalty      float64
	PercentDone  float64
	Deliverables []string
}

// Invoice is the billable amount attached to a milestone.
type Invoice struct {
	Amount float64
}

// Sum returns the total of a demand series.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
