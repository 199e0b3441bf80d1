package engine

import (
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// ConcernEntry is one role inside a concerning-role closure: the resolved
// role, the team context it was reached through (-1 for none), the weights of
// its back-references into traversed teams, and the allocation factor taken
// from the back-reference into the traversal root.
//
// Factor is carried for reporting; it does not weight cost figures.
type ConcernEntry struct {
	Role        *domain.Role
	TeamUID     int
	TeamWeights map[int]float64
	Factor      float64
}

// ResolveConcerning computes, for every snapshot segment of the timeline,
// the closure of the root role and its transitive sub-roles. Organisational
// structure can differ per snapshot, so closures are recomputed per snapshot
// rather than assumed stable across the plan's duration.
//
// It also records the current (now-relative) resolution of the root on the
// timeline as a display anchor.
func (tl *Timeline) ResolveConcerning(rootUID, teamUID int, now time.Time) {
	for i := range tl.Snapshots {
		tl.concerning[i] = resolveClosure(tl.roles[i], rootUID, teamUID)
	}

	cur := 0
	for i, snap := range tl.Snapshots {
		if !snap.Timestamp.After(now) {
			cur = i
		}
	}
	tl.CurrentRoot = tl.concerning[cur][rootUID]
}

// ConcerningAt returns the concern entry for uid in the month's closure, or
// nil when the uid is not concerning that month. ResolveConcerning must have
// run first.
func (tl *Timeline) ConcerningAt(monthIdx, uid int) *ConcernEntry {
	i := tl.snapIndexFor(monthIdx)
	if i < 0 || tl.concerning[i] == nil {
		return nil
	}
	return tl.concerning[i][uid]
}

// ConcerningRoles returns the full closure map governing the month, keyed by
// role uid. Callers must not mutate it.
func (tl *Timeline) ConcerningRoles(monthIdx int) map[int]*ConcernEntry {
	i := tl.snapIndexFor(monthIdx)
	if i < 0 {
		return nil
	}
	return tl.concerning[i]
}

// resolveClosure walks the sub-role tree under rootUID within one snapshot's
// role map. Each descendant appears exactly once; recursion terminates on the
// first revisit. When the walk passes through a team into a team member, the
// member's allocation factor comes from its back-reference weight into that
// team; everything else defaults to 1.0.
func resolveClosure(roles map[int]*domain.Role, rootUID, teamUID int) map[int]*ConcernEntry {
	out := make(map[int]*ConcernEntry)
	root := roles[rootUID]
	if root == nil {
		return out
	}

	var walk func(r *domain.Role, viaTeam int)
	walk = func(r *domain.Role, viaTeam int) {
		if _, seen := out[r.UID]; seen {
			return
		}
		entry := &ConcernEntry{
			Role:        r,
			TeamUID:     viaTeam,
			TeamWeights: make(map[int]float64),
			Factor:      1.0,
		}
		if viaTeam >= 0 {
			if w := r.TeamWeight(viaTeam); w != nil {
				entry.TeamWeights[viaTeam] = *w
				entry.Factor = *w
			}
		}
		out[r.UID] = entry

		for _, ref := range r.SubRoles {
			child := roles[ref.UID]
			if child == nil {
				continue
			}
			nextTeam := viaTeam
			if r.Type == domain.RoleTeam {
				nextTeam = r.UID
			}
			walk(child, nextTeam)
		}
	}

	rootTeam := teamUID
	if root.Type == domain.RoleTeam {
		rootTeam = root.UID
	}
	walk(root, rootTeam)
	return out
}
