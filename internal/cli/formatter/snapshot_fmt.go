package formatter

import (
	"fmt"
	"strings"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// FormatSnapshotList renders organisation snapshot summaries inside a
// bordered box.
func FormatSnapshotList(snapshots []*domain.Snapshot) string {
	headers := []string{"ID", "TAKEN", "ROLES", "COST TYPES"}
	rows := make([][]string, 0, len(snapshots))

	for _, s := range snapshots {
		rows = append(rows, []string{
			TruncID(s.ID),
			StyleFg.Render(Date(s.Timestamp)),
			fmt.Sprintf("%d", len(s.Roles)),
			fmt.Sprintf("%d", len(s.CostTypes)),
		})
	}

	return RenderBox("Snapshots", RenderTable(headers, rows))
}

// FormatSnapshotShow renders one snapshot with its full role table.
func FormatSnapshotShow(s *domain.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID   "), TruncID(s.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TAKEN"), StyleFg.Render(Date(s.Timestamp))))
	b.WriteString("\n" + Header("Roles") + "\n")

	headers := []string{"UID", "NAME", "TYPE", "RATE", "CAP/MONTH", "STAFFING"}
	rows := make([][]string, 0, len(s.Roles))
	for i := range s.Roles {
		r := &s.Roles[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.UID),
			Bold(r.Name),
			roleTypeBadge(r),
			fmt.Sprintf("%.0f", r.DailyRate),
			fmt.Sprintf("%.1f", r.DefaultCapacityPerMonth),
			staffingBadge(r),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(s.CostTypes) > 0 {
		b.WriteString("\n" + Header("Cost Types") + "\n")
		ctHeaders := []string{"ID", "NAME"}
		ctRows := make([][]string, 0, len(s.CostTypes))
		for _, ct := range s.CostTypes {
			ctRows = append(ctRows, []string{fmt.Sprintf("%d", ct.ID), StyleFg.Render(ct.Name)})
		}
		b.WriteString(RenderTable(ctHeaders, ctRows))
	}

	return RenderBox("Snapshot", b.String())
}

func roleTypeBadge(r *domain.Role) string {
	switch {
	case r.IsSummary:
		return StylePurple.Render("Summary")
	case r.Type == domain.RoleTeam:
		return StyleBlue.Render("Team")
	default:
		return StyleFg.Render("Person")
	}
}

func staffingBadge(r *domain.Role) string {
	if r.IsExternal {
		return StyleYellow.Render("external")
	}
	return StyleGreen.Render("internal")
}
