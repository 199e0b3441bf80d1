package engine

import (
	"fmt"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// Severity classifies a validation log entry.
type Severity string

const (
	// SeverityInfo is a purely informational observation.
	SeverityInfo Severity = "info"
	// SeverityCorrected marks a healable violation that was fixed in place.
	SeverityCorrected Severity = "corrected"
	// SeverityViolation marks a stop-criterion violation; the plan is invalid.
	SeverityViolation Severity = "violation"
	// SeveritySevere marks a numeric-consistency failure after a best-effort
	// correction (redistributed sum off beyond rounding tolerance).
	SeveritySevere Severity = "severe"
)

// LogEntry is one structured correction or violation record.
type LogEntry struct {
	Criterion string
	Severity  Severity
	Healed    bool
	Message   string
}

// ValidationReport is the outcome of a validator run: overall validity (the
// logical AND of all stop-criterion outcomes) plus every correction and
// violation recorded along the way. Healable criteria contribute true once
// corrected.
type ValidationReport struct {
	Valid   bool
	Entries []LogEntry
}

func (r *ValidationReport) add(criterion string, sev Severity, healed bool, format string, args ...any) {
	r.Entries = append(r.Entries, LogEntry{
		Criterion: criterion,
		Severity:  sev,
		Healed:    healed,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Corrections returns only the entries describing in-place corrections.
func (r *ValidationReport) Corrections() []LogEntry {
	var out []LogEntry
	for _, e := range r.Entries {
		if e.Healed {
			out = append(out, e)
		}
	}
	return out
}

// Violations returns only the stop-criterion violation entries.
func (r *ValidationReport) Violations() []LogEntry {
	var out []LogEntry
	for _, e := range r.Entries {
		if e.Severity == SeverityViolation {
			out = append(out, e)
		}
	}
	return out
}

// healContext threads order-dependent state through the criterion battery,
// most notably the root-phase scaling correction computed by the root-phase
// criterion and consumed by the phase and milestone criteria.
type healContext struct {
	plan   *domain.Plan
	report *ValidationReport

	// scaleCorrection rescales phase offsets/durations when the root phase's
	// day span disagrees with the plan's; 0 means inactive.
	scaleCorrection float64

	// lengthHealAllowed disables demand-array length healing when the plan
	// carries recorded actuals that must not be silently redistributed.
	lengthHealAllowed bool
}

// criterion is one named consistency check. Stop criteria flip overall
// validity on failure; healable criteria correct the plan in place and
// always pass.
type criterion struct {
	id    string
	stop  bool
	apply func(*healContext) bool
}

// Validate evaluates the plan against the ordered criterion battery, healing
// recoverable violations in place. The returned report carries the overall
// validity and every correction/violation; a structurally hopeless plan
// (missing dates or name) aborts after the first criterion.
func Validate(plan *domain.Plan) *ValidationReport {
	report := &ValidationReport{Valid: true}

	if !checkMinimumShape(plan, report) {
		report.Valid = false
		return report
	}

	hc := &healContext{
		plan:              plan,
		report:            report,
		lengthHealAllowed: plan.ActualDataUntil == nil,
	}
	for _, c := range criteria {
		if ok := c.apply(hc); c.stop && !ok {
			report.Valid = false
		}
	}
	return report
}
