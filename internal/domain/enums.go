package domain

// RoleType distinguishes people from teams in a snapshot. The numeric values
// match the organisation import format.
type RoleType int

const (
	RolePerson RoleType = 1
	RoleTeam   RoleType = 2
)

// Variant names the flavour of a plan version. The working variant is the
// one being edited; a baseline is frozen for comparison.
type Variant string

const (
	VariantWorking  Variant = "working"
	VariantBaseline Variant = "baseline"
)

// ValidVariants is the canonical set of accepted plan variant strings.
var ValidVariants = map[string]bool{
	string(VariantWorking): true, string(VariantBaseline): true,
}
