package domain

import "time"

// WeightedRef points at another role in the same snapshot together with an
// allocation weight (1.0 = fully allocated).
type WeightedRef struct {
	UID    int
	Weight float64
}

// Role is one entry in an organisation snapshot: a person or a team.
// Summary roles are pure aggregation nodes (departments, cost centers) that
// never carry demand themselves.
type Role struct {
	UID                     int
	Name                    string
	Type                    RoleType
	IsSummary               bool
	DailyRate               float64 // thousandths of the display currency per person-day
	DefaultCapacityPerDay   float64
	DefaultCapacityPerMonth float64
	EntryDate               *time.Time // person validity window; nil = always
	ExitDate                *time.Time
	IsExternal              bool
	SubRoles                []WeightedRef // children (teams: members, summaries: sub-units)
	Teams                   []WeightedRef // teams this person belongs to
	ParentUID               *int
	AggregationUID          *int // nearest ancestor flagged as aggregation point
}

// ActiveIn reports whether the role's validity window overlaps the month
// containing t. Roles without entry/exit dates are always active.
func (r *Role) ActiveIn(t time.Time) bool {
	if r.EntryDate != nil && MonthIndex(t) < MonthIndex(*r.EntryDate) {
		return false
	}
	if r.ExitDate != nil && MonthIndex(t) > MonthIndex(*r.ExitDate) {
		return false
	}
	return true
}

// TeamWeight returns the weight of this role's membership in the given team,
// or nil if the role does not reference that team.
func (r *Role) TeamWeight(teamUID int) *float64 {
	for _, ref := range r.Teams {
		if ref.UID == teamUID {
			w := ref.Weight
			return &w
		}
	}
	return nil
}

// CostType is a non-personnel cost category defined per snapshot.
type CostType struct {
	ID   int
	Name string
}

// Snapshot is a dated, complete description of the organisation, valid from
// its timestamp until superseded by a later snapshot.
type Snapshot struct {
	ID        string
	Timestamp time.Time
	Roles     []Role
	CostTypes []CostType
}

// RoleByUID returns the role with the given uid, or nil.
func (s *Snapshot) RoleByUID(uid int) *Role {
	for i := range s.Roles {
		if s.Roles[i].UID == uid {
			return &s.Roles[i]
		}
	}
	return nil
}
