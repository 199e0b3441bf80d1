package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// SnapshotImport is the top-level JSON structure for an organisation
// snapshot import file.
type SnapshotImport struct {
	TakenAt   string           `json:"taken_at"`
	Roles     []RoleImport     `json:"roles"`
	CostTypes []CostTypeImport `json:"cost_types,omitempty"`
}

// RoleImport defines one organisation role (person, team or summary node).
type RoleImport struct {
	UID                     int                 `json:"uid"`
	Name                    string              `json:"name"`
	Type                    int                 `json:"type"`
	IsSummary               bool                `json:"is_summary,omitempty"`
	DailyRate               float64             `json:"daily_rate,omitempty"`
	DefaultCapacityPerDay   float64             `json:"default_capacity_per_day,omitempty"`
	DefaultCapacityPerMonth float64             `json:"default_capacity_per_month,omitempty"`
	EntryDate               *string             `json:"entry_date,omitempty"`
	ExitDate                *string             `json:"exit_date,omitempty"`
	IsExternal              bool                `json:"is_external,omitempty"`
	SubRoles                []WeightedRefImport `json:"sub_roles,omitempty"`
	Teams                   []WeightedRefImport `json:"teams,omitempty"`
	ParentUID               *int                `json:"parent_uid,omitempty"`
	AggregationUID          *int                `json:"aggregation_uid,omitempty"`
}

// WeightedRefImport is a uid reference with an allocation weight.
type WeightedRefImport struct {
	UID    int      `json:"uid"`
	Weight *float64 `json:"weight,omitempty"`
}

// CostTypeImport defines a non-personnel cost category.
type CostTypeImport struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PlanImport is the top-level JSON structure for a plan import file.
type PlanImport struct {
	ProjectID       string                `json:"project_id"`
	Variant         string                `json:"variant,omitempty"`
	Version         *string               `json:"version,omitempty"`
	Name            string                `json:"name"`
	StartDate       string                `json:"start_date"`
	EndDate         string                `json:"end_date"`
	DurationMonths  *int                  `json:"duration_months,omitempty"`
	ActualDataUntil *string               `json:"actual_data_until,omitempty"`
	StrategicFit    *float64              `json:"strategic_fit,omitempty"`
	RiskScore       *float64              `json:"risk_score,omitempty"`
	Phases          []PhaseImport         `json:"phases"`
	Hierarchy       []HierarchyNodeImport `json:"hierarchy,omitempty"`
}

// PhaseImport defines a plan phase with its demand series and milestones.
type PhaseImport struct {
	Name            string             `json:"name"`
	StartOffsetDays int                `json:"start_offset_days"`
	DurationDays    int                `json:"duration_days"`
	Roles           []RoleDemandImport `json:"roles,omitempty"`
	Costs           []CostDemandImport `json:"costs,omitempty"`
	Milestones      []MilestoneImport  `json:"milestones,omitempty"`
}

// RoleDemandImport defines per-month person-day demand for one role.
type RoleDemandImport struct {
	RoleUID int       `json:"role_uid"`
	TeamUID *int      `json:"team_uid,omitempty"`
	Demand  []float64 `json:"demand"`
}

// CostDemandImport defines per-month cost demand for one cost type.
type CostDemandImport struct {
	CostTypeID int       `json:"cost_type_id"`
	Demand     []float64 `json:"demand"`
}

// MilestoneImport defines a dated event within a phase.
type MilestoneImport struct {
	Name          string   `json:"name"`
	OffsetDays    int      `json:"offset_days"`
	InvoiceAmount *float64 `json:"invoice_amount,omitempty"`
	Penalty       float64  `json:"penalty,omitempty"`
	PercentDone   float64  `json:"percent_done,omitempty"`
	Deliverables  []string `json:"deliverables,omitempty"`
}

// HierarchyNodeImport defines one entry of the plan's structure tree.
type HierarchyNodeImport struct {
	Key          string   `json:"key"`
	ParentKey    string   `json:"parent_key,omitempty"`
	ChildKeys    []string `json:"child_keys,omitempty"`
	ElementIndex int      `json:"element_index"`
}

// CapacityImport is the top-level JSON structure for a capacity override
// import file.
type CapacityImport struct {
	Overrides []OverrideImport `json:"overrides"`
}

// OverrideImport replaces one role's monthly capacity starting at a date.
type OverrideImport struct {
	RoleUID     int        `json:"role_uid"`
	StartOfYear string     `json:"start_of_year"`
	Months      []*float64 `json:"months"`
}

// LoadSnapshotImport reads and parses a snapshot import JSON file.
func LoadSnapshotImport(path string) (*SnapshotImport, error) {
	var schema SnapshotImport
	if err := loadJSON(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadPlanImport reads and parses a plan import JSON file.
func LoadPlanImport(path string) (*PlanImport, error) {
	var schema PlanImport
	if err := loadJSON(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadCapacityImport reads and parses a capacity override import JSON file.
func LoadCapacityImport(path string) (*CapacityImport, error) {
	var schema CapacityImport
	if err := loadJSON(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}
	return nil
}
