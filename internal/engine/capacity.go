package engine

import (
	"github.com/jheinsohn/plantafel/internal/domain"
)

// capacitySeries is one role's merged override series, anchored at an
// absolute month column.
type capacitySeries struct {
	startMonth int
	months     []*float64
}

// buildCapacityIndex merges all overrides per role into one continuous
// series each (gaps stay nil, meaning "use the default").
func buildCapacityIndex(overrides []domain.CapacityOverride) map[int]capacitySeries {
	byRole := make(map[int][]domain.CapacityOverride)
	for _, o := range overrides {
		byRole[o.RoleUID] = append(byRole[o.RoleUID], o)
	}

	out := make(map[int]capacitySeries, len(byRole))
	for uid, list := range byRole {
		start, months := domain.MergeOverrides(list)
		if len(months) == 0 {
			continue
		}
		out[uid] = capacitySeries{startMonth: domain.MonthIndex(start), months: months}
	}
	return out
}

// effectiveCapacity returns a role's capacity in person-days for the given
// absolute month: the override value when one exists, the snapshot default
// otherwise, and zero outside the role's validity window.
func (tl *Timeline) effectiveCapacity(role *domain.Role, monthIdx int, index map[int]capacitySeries) float64 {
	if !role.ActiveIn(domain.MonthStart(monthIdx)) {
		return 0
	}
	if series, ok := index[role.UID]; ok {
		off := monthIdx - series.startMonth
		if off >= 0 && off < len(series.months) && series.months[off] != nil {
			return *series.months[off]
		}
	}
	return role.DefaultCapacityPerMonth
}
