package formatter

import (
	"testing"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestFormatValidationReport_ValidWithoutFindings(t *testing.T) {
	resp := &app.ValidateResponse{
		PlanID: "bbbb2222-0000-0000-0000-000000000000",
		Valid:  true,
		Report: &engine.ValidationReport{Valid: true},
	}

	out := FormatValidationReport(resp)

	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "No findings")
	assert.Contains(t, out, "bbbb2222")
}

func TestFormatValidationReport_ListsEntries(t *testing.T) {
	resp := &app.ValidateResponse{
		PlanID: "cccc3333-0000-0000-0000-000000000000",
		Valid:  false,
		Report: &engine.ValidationReport{
			Valid: false,
			Entries: []engine.LogEntry{
				{Criterion: "duration", Severity: engine.SeverityCorrected, Healed: true, Message: "duration corrected to 6 months"},
				{Criterion: "demand", Severity: engine.SeverityViolation, Message: "negative demand in phase build"},
			},
		},
	}

	out := FormatValidationReport(resp)

	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "duration corrected to 6 months")
	assert.Contains(t, out, "negative demand in phase build")
	assert.Contains(t, out, "1 corrections, 1 violations")
}

func TestFormatValidationReport_HealedVerdict(t *testing.T) {
	resp := &app.ValidateResponse{
		PlanID: "dddd4444-0000-0000-0000-000000000000",
		Valid:  true,
		Healed: true,
		Report: &engine.ValidationReport{
			Valid: true,
			Entries: []engine.LogEntry{
				{Criterion: "root-phase", Severity: engine.SeverityCorrected, Healed: true, Message: "root phase stretched to plan span"},
			},
		},
	}

	out := FormatValidationReport(resp)

	assert.Contains(t, out, "after corrections")
}
