package formatter

import (
	"fmt"
	"strings"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/engine"
)

// FormatReport renders the full cost/capacity report: a metadata header,
// the monthly cost series and the monthly capacity-versus-need series.
func FormatReport(resp *app.ReportResponse) string {
	var b strings.Builder

	b.WriteString(formatReportHeader(resp))
	b.WriteString("\n\n")
	b.WriteString(Header("Costs"))
	b.WriteString("\n")
	b.WriteString(formatCostTable(resp.Aggregation.Costs))
	b.WriteString("\n")
	b.WriteString(Header("Capacity"))
	b.WriteString("\n")
	b.WriteString(formatCapacityTable(resp.Aggregation.Capacity))

	return RenderBox("Report", b.String())
}

func formatReportHeader(resp *app.ReportResponse) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(resp.PlanName) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("PLAN   "), StylePurple.Render(resp.Variant), TruncID(resp.PlanID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT"), StyleFg.Render(resp.ProjectID)))
	b.WriteString(fmt.Sprintf("%s  %s %s %s\n", StyleDim.Render("SPAN   "),
		StyleFg.Render(Date(resp.StartDate)), Dim("to"), StyleFg.Render(Date(resp.EndDate))))

	viewpoint := fmt.Sprintf("role %d", resp.RootRoleUID)
	if resp.TeamUID >= 0 {
		viewpoint += fmt.Sprintf(", team %d", resp.TeamUID)
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VIEW   "), StyleFg.Render(viewpoint)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOTAL  "), StyleBold.Render(fmt.Sprintf("%.2f", resp.TotalCost))))

	return b.String()
}

func formatCostTable(months []engine.CostMonth) string {
	headers := []string{"MONTH", "ACTUAL", "PLANNED", "OTHER", "OTHER COST", "INVOICE", "TOTAL"}
	rows := make([][]string, 0, len(months)+1)

	var sum engine.CostMonth
	for _, m := range months {
		total := m.Actual + m.Planned + m.OtherActivity
		rows = append(rows, []string{
			MonthLabel(m.Month),
			Money(m.Actual),
			Money(m.Planned),
			Money(m.OtherActivity),
			Money(m.OtherCost),
			Money(m.Invoice),
			Bold(fmt.Sprintf("%.2f", total)),
		})
		sum.Actual += m.Actual
		sum.Planned += m.Planned
		sum.OtherActivity += m.OtherActivity
		sum.OtherCost += m.OtherCost
		sum.Invoice += m.Invoice
	}

	rows = append(rows, []string{
		Bold("TOTAL"),
		Bold(fmt.Sprintf("%.2f", sum.Actual)),
		Bold(fmt.Sprintf("%.2f", sum.Planned)),
		Bold(fmt.Sprintf("%.2f", sum.OtherActivity)),
		Bold(fmt.Sprintf("%.2f", sum.OtherCost)),
		Bold(fmt.Sprintf("%.2f", sum.Invoice)),
		Bold(fmt.Sprintf("%.2f", sum.Actual+sum.Planned+sum.OtherActivity)),
	})

	return RenderNumericTable(headers, rows)
}

func formatCapacityTable(months []engine.CapacityMonth) string {
	headers := []string{"MONTH", "INTERNAL", "EXTERNAL", "DEMAND", "GAP"}
	rows := make([][]string, 0, len(months))

	for _, m := range months {
		gap := m.InternalDays + m.ExternalDays - m.DemandDays
		gapCell := StyleGreen.Render(fmt.Sprintf("%+.1f", gap))
		if gap < 0 {
			gapCell = StyleRed.Render(fmt.Sprintf("%+.1f", gap))
		}
		rows = append(rows, []string{
			MonthLabel(m.Month),
			Days(m.InternalDays),
			Days(m.ExternalDays),
			Days(m.DemandDays),
			gapCell,
		})
	}

	return RenderNumericTable(headers, rows)
}
