package formatter

import (
	"fmt"
	"strings"

	"github.com/jheinsohn/plantafel/internal/app"
)

// FormatValidationReport renders the outcome of a validator run: a verdict
// line followed by every correction and violation the battery recorded.
func FormatValidationReport(resp *app.ValidateResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", Verdict(resp.Valid, resp.Healed), TruncID(resp.PlanID)))

	if len(resp.Report.Entries) == 0 {
		b.WriteString("\n" + Dim("No findings."))
		return RenderBox("Validation", b.String())
	}

	headers := []string{"SEVERITY", "CRITERION", "MESSAGE"}
	rows := make([][]string, 0, len(resp.Report.Entries))
	for _, e := range resp.Report.Entries {
		rows = append(rows, []string{
			SeverityIndicator(e.Severity),
			StylePurple.Render(e.Criterion),
			SeverityColor(e.Severity).Render(e.Message),
		})
	}

	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))

	corrections := resp.Report.Corrections()
	violations := resp.Report.Violations()
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d corrections, %d violations", len(corrections), len(violations))))

	return RenderBox("Validation", b.String())
}
