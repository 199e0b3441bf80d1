package engine

import (
	"sort"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// Timeline is the per-call working structure for planning calculations: a
// date range partitioned into month columns, each governed by exactly one
// organisation snapshot. It is built fresh for every engine invocation and
// holds no state across calls.
type Timeline struct {
	Start time.Time
	End   time.Time

	// StartMonth is the month column of Start; the timeline covers Months
	// consecutive columns from there.
	StartMonth int
	Months     int

	// Snapshots is the chronological subset of snapshots relevant to the
	// range: the latest one active before Start plus every one superseding
	// it inside the range.
	Snapshots []*domain.Snapshot

	// MonthSnapshot maps each covered month (0-based from StartMonth) to an
	// index into Snapshots.
	MonthSnapshot []int

	// Merged aggregates every role seen in any relevant snapshot,
	// first-seen-per-uid wins.
	Merged map[int]*domain.Role

	// CurrentRoot is the today-relative resolution of the last root passed
	// to ResolveConcerning, used as a display anchor independent of
	// historical variation.
	CurrentRoot *ConcernEntry

	roles      []map[int]*domain.Role
	costTypes  []map[int]*domain.CostType
	concerning []map[int]*ConcernEntry
}

// BuildTimeline partitions [start, end] into month columns governed by the
// given snapshots. A snapshot governs month m when its timestamp's month is
// at or before m and no later relevant snapshot's is. When no snapshot
// precedes start, the earliest available one covers the preceding span.
// Returns nil when no snapshots are supplied or the dates are invalid.
func BuildTimeline(snapshots []*domain.Snapshot, start, end time.Time) *Timeline {
	if len(snapshots) == 0 || start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	sorted := make([]*domain.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	startMonth := domain.MonthIndex(start)
	endMonth := domain.MonthIndex(end)

	// Latest snapshot active at or before the start month anchors the subset.
	first := 0
	for i, s := range sorted {
		if domain.MonthIndex(s.Timestamp) <= startMonth {
			first = i
		}
	}
	var relevant []*domain.Snapshot
	for i := first; i < len(sorted); i++ {
		if domain.MonthIndex(sorted[i].Timestamp) > endMonth {
			break
		}
		relevant = append(relevant, sorted[i])
	}
	if len(relevant) == 0 {
		// Every snapshot postdates the range; the earliest one governs it all.
		relevant = sorted[:1]
	}

	months := endMonth - startMonth + 1
	monthSnapshot := make([]int, months)
	cur := 0
	for m := 0; m < months; m++ {
		for cur+1 < len(relevant) && domain.MonthIndex(relevant[cur+1].Timestamp) <= startMonth+m {
			cur++
		}
		monthSnapshot[m] = cur
	}

	tl := &Timeline{
		Start:         start,
		End:           end,
		StartMonth:    startMonth,
		Months:        months,
		Snapshots:     relevant,
		MonthSnapshot: monthSnapshot,
		Merged:        make(map[int]*domain.Role),
		roles:         make([]map[int]*domain.Role, len(relevant)),
		costTypes:     make([]map[int]*domain.CostType, len(relevant)),
		concerning:    make([]map[int]*ConcernEntry, len(relevant)),
	}

	for i, snap := range relevant {
		roleMap := make(map[int]*domain.Role, len(snap.Roles))
		for j := range snap.Roles {
			r := &snap.Roles[j]
			roleMap[r.UID] = r
			if _, seen := tl.Merged[r.UID]; !seen {
				tl.Merged[r.UID] = r
			}
		}
		tl.roles[i] = roleMap

		costMap := make(map[int]*domain.CostType, len(snap.CostTypes))
		for j := range snap.CostTypes {
			c := &snap.CostTypes[j]
			costMap[c.ID] = c
		}
		tl.costTypes[i] = costMap
	}

	return tl
}

// Covers reports whether the absolute month column lies inside the timeline.
func (tl *Timeline) Covers(monthIdx int) bool {
	return monthIdx >= tl.StartMonth && monthIdx < tl.StartMonth+tl.Months
}

func (tl *Timeline) snapIndexFor(monthIdx int) int {
	if !tl.Covers(monthIdx) {
		return -1
	}
	return tl.MonthSnapshot[monthIdx-tl.StartMonth]
}

// SnapshotFor returns the snapshot governing the absolute month column, or
// nil when the column lies outside the timeline.
func (tl *Timeline) SnapshotFor(monthIdx int) *domain.Snapshot {
	i := tl.snapIndexFor(monthIdx)
	if i < 0 {
		return nil
	}
	return tl.Snapshots[i]
}

// RoleAt resolves a role uid against the snapshot governing the month.
func (tl *Timeline) RoleAt(monthIdx, uid int) *domain.Role {
	i := tl.snapIndexFor(monthIdx)
	if i < 0 {
		return nil
	}
	return tl.roles[i][uid]
}

// CostTypeAt resolves a cost type id against the snapshot governing the month.
func (tl *Timeline) CostTypeAt(monthIdx, id int) *domain.CostType {
	i := tl.snapIndexFor(monthIdx)
	if i < 0 {
		return nil
	}
	return tl.costTypes[i][id]
}
