package domain

import "time"

// CapacityOverride replaces a role's default monthly capacity for a stretch
// of months starting at StartOfYear. A nil entry means "no override for this
// month", distinct from an explicit zero, which means the role has no
// capacity that month.
type CapacityOverride struct {
	RoleUID     int
	StartOfYear time.Time
	Months      []*float64
}

// MergeOverrides concatenates all overrides for one role into a single
// continuous series anchored at the earliest StartOfYear, chronologically
// ordered, with gaps left as nil. Later entries win on overlap.
func MergeOverrides(overrides []CapacityOverride) (start time.Time, months []*float64) {
	if len(overrides) == 0 {
		return time.Time{}, nil
	}
	first := overrides[0]
	startIdx := MonthIndex(first.StartOfYear)
	endIdx := startIdx + len(first.Months)
	for _, o := range overrides[1:] {
		if o.StartOfYear.Before(first.StartOfYear) {
			first = o
		}
		idx := MonthIndex(o.StartOfYear)
		if idx < startIdx {
			startIdx = idx
		}
		if idx+len(o.Months) > endIdx {
			endIdx = idx + len(o.Months)
		}
	}
	months = make([]*float64, endIdx-startIdx)
	for _, o := range overrides {
		off := MonthIndex(o.StartOfYear) - startIdx
		for i, v := range o.Months {
			if v == nil {
				continue
			}
			months[off+i] = v
		}
	}
	return first.StartOfYear, months
}
