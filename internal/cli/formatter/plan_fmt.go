package formatter

import (
	"fmt"
	"strings"

	"github.com/jheinsohn/plantafel/internal/app"
	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/repository"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FormatPlanList renders plan version summaries inside a bordered box.
func FormatPlanList(plans []repository.PlanSummary) string {
	headers := []string{"ID", "PROJECT", "VARIANT", "VERSION", "NAME", "START", "END"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			StyleFg.Render(p.ProjectID),
			StylePurple.Render(p.Variant),
			Dim(VersionStamp(p.Timestamp)),
			Bold(p.Name),
			Date(p.StartDate),
			Date(p.EndDate),
		})
	}

	return RenderBox("Plans", RenderTable(headers, rows))
}

// FormatPlanShow renders one plan version: metadata, the phase/milestone
// tree and the per-phase demand totals.
func FormatPlanShow(p *domain.Plan) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("PLAN   "), StylePurple.Render(p.Variant), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT"), StyleFg.Render(p.ProjectID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VERSION"), Dim(VersionStamp(p.Timestamp))))
	b.WriteString(fmt.Sprintf("%s  %s %s %s %s\n", StyleDim.Render("SPAN   "),
		StyleFg.Render(Date(p.StartDate)), Dim("to"), StyleFg.Render(Date(p.EndDate)),
		Dim(fmt.Sprintf("(%d months)", p.DurationMonths))))
	if p.ActualDataUntil != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ACTUALS"), StyleYellow.Render(Date(*p.ActualDataUntil))))
	}
	if p.StrategicFit != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FIT    "), StyleFg.Render(fmt.Sprintf("%.1f", *p.StrategicFit))))
	}
	if p.RiskScore != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RISK   "), StyleFg.Render(fmt.Sprintf("%.1f", *p.RiskScore))))
	}

	b.WriteString("\n" + Header("Structure") + "\n")
	b.WriteString(formatPlanTree(p))

	return RenderBox("Plan", b.String())
}

// formatPlanTree renders the hierarchy as an indented tree. Phases carry a
// demand-total badge; milestones are dimmed leaves with their day offset.
func formatPlanTree(p *domain.Plan) string {
	root := p.FindNode(domain.RootPhaseKey)
	if root == nil {
		return Dim("No structure tree")
	}

	var b strings.Builder
	b.WriteString(Bold(p.Name) + "\n")

	var walk func(keys []string, depth int)
	walk = func(keys []string, depth int) {
		for i, key := range keys {
			prefix := strings.Repeat(treePipe, depth)
			if i == len(keys)-1 {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}

			node := p.FindNode(key)
			line := StyleFg.Render(key)
			if ph := phaseByName(p, key); ph != nil {
				line = StyleFg.Render(key) + " " + Dim(fmt.Sprintf("(%s pd, months %d..%d)",
					Days(phaseDemandTotal(ph)), ph.RelStart, ph.RelEnd))
			} else if ms := milestoneByName(p, key); ms != nil {
				line = StyleBlue.Render("◆ "+key) + " " + Dim(fmt.Sprintf("(day %d)", ms.OffsetDays))
			}
			b.WriteString(prefix + line + "\n")

			if node != nil {
				walk(node.ChildKeys, depth+1)
			}
		}
	}
	walk(root.ChildKeys, 0)

	return b.String()
}

func phaseByName(p *domain.Plan, name string) *domain.Phase {
	for i := range p.Phases {
		if p.Phases[i].Name == name {
			return &p.Phases[i]
		}
	}
	return nil
}

func milestoneByName(p *domain.Plan, name string) *domain.Milestone {
	for i := range p.Phases {
		for j := range p.Phases[i].Milestones {
			if p.Phases[i].Milestones[j].Name == name {
				return &p.Phases[i].Milestones[j]
			}
		}
	}
	return nil
}

func phaseDemandTotal(ph *domain.Phase) float64 {
	var total float64
	for _, rd := range ph.Roles {
		total += domain.Sum(rd.Demand)
	}
	return total
}

// FormatScaleResult renders the outcome of a plan scale: the factor, the new
// span and whether a new version was persisted.
func FormatScaleResult(resp *app.ScaleResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SOURCE "), TruncID(resp.SourcePlanID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FACTOR "), StyleBold.Render(fmt.Sprintf("%.4f", resp.Factor))))
	if resp.Plan != nil {
		b.WriteString(fmt.Sprintf("%s  %s %s %s %s\n", StyleDim.Render("SPAN   "),
			StyleFg.Render(Date(resp.Plan.StartDate)), Dim("to"), StyleFg.Render(Date(resp.Plan.EndDate)),
			Dim(fmt.Sprintf("(%d months)", resp.Plan.DurationMonths))))
	}
	if resp.Persisted {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("VERSION"), StyleGreen.Render("persisted"), TruncID(resp.NewPlanID)))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VERSION"), StyleYellow.Render("dry run, not persisted")))
	}

	if resp.Report != nil && len(resp.Report.Corrections()) > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d corrections applied during re-validation", len(resp.Report.Corrections()))))
	}

	return RenderBox("Scale", b.String())
}
