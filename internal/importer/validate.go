package importer

import (
	"fmt"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

var validRoleTypes = map[int]bool{
	int(domain.RolePerson): true,
	int(domain.RoleTeam):   true,
}

// ValidateSnapshotImport checks a snapshot import for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateSnapshotImport(schema *SnapshotImport) []error {
	var errs []error

	if schema.TakenAt == "" {
		errs = append(errs, fmt.Errorf("taken_at is required"))
	} else if _, err := time.Parse(time.RFC3339, schema.TakenAt); err != nil {
		errs = append(errs, fmt.Errorf("taken_at: invalid timestamp %q (expected RFC3339)", schema.TakenAt))
	}
	if len(schema.Roles) == 0 {
		errs = append(errs, fmt.Errorf("roles must not be empty"))
	}

	uids := make(map[int]bool)
	for i, r := range schema.Roles {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("roles[%d]: name is required", i))
		}
		if !validRoleTypes[r.Type] {
			errs = append(errs, fmt.Errorf("roles[%d] %q: invalid type %d", i, r.Name, r.Type))
		}
		if uids[r.UID] {
			errs = append(errs, fmt.Errorf("roles[%d] %q: duplicate uid %d", i, r.Name, r.UID))
		}
		uids[r.UID] = true
		if r.DailyRate < 0 {
			errs = append(errs, fmt.Errorf("roles[%d] %q: daily_rate must not be negative", i, r.Name))
		}
		errs = append(errs, validateDateField(fmt.Sprintf("roles[%d].entry_date", i), r.EntryDate)...)
		errs = append(errs, validateDateField(fmt.Sprintf("roles[%d].exit_date", i), r.ExitDate)...)
	}

	// References must resolve within the same snapshot.
	for i, r := range schema.Roles {
		for _, ref := range r.SubRoles {
			if !uids[ref.UID] {
				errs = append(errs, fmt.Errorf("roles[%d] %q: sub_roles references unknown uid %d", i, r.Name, ref.UID))
			}
		}
		for _, ref := range r.Teams {
			if !uids[ref.UID] {
				errs = append(errs, fmt.Errorf("roles[%d] %q: teams references unknown uid %d", i, r.Name, ref.UID))
			}
		}
		if r.ParentUID != nil && !uids[*r.ParentUID] {
			errs = append(errs, fmt.Errorf("roles[%d] %q: parent_uid references unknown uid %d", i, r.Name, *r.ParentUID))
		}
	}

	costIDs := make(map[int]bool)
	for i, ct := range schema.CostTypes {
		if ct.Name == "" {
			errs = append(errs, fmt.Errorf("cost_types[%d]: name is required", i))
		}
		if costIDs[ct.ID] {
			errs = append(errs, fmt.Errorf("cost_types[%d] %q: duplicate id %d", i, ct.Name, ct.ID))
		}
		costIDs[ct.ID] = true
	}

	return errs
}

// ValidatePlanImport checks a plan import for errors before conversion.
// Structural plan consistency (phase bounds, demand lengths, hierarchy) is
// the validation engine's job; this only rejects files that cannot be
// converted at all.
func ValidatePlanImport(schema *PlanImport) []error {
	var errs []error

	if schema.ProjectID == "" {
		errs = append(errs, fmt.Errorf("project_id is required"))
	}
	if schema.Variant != "" && !domain.ValidVariants[schema.Variant] {
		errs = append(errs, fmt.Errorf("variant: invalid value %q", schema.Variant))
	}
	if schema.Version != nil {
		if _, err := time.Parse(time.RFC3339, *schema.Version); err != nil {
			errs = append(errs, fmt.Errorf("version: invalid timestamp %q (expected RFC3339)", *schema.Version))
		}
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if schema.StartDate == "" {
		errs = append(errs, fmt.Errorf("start_date is required"))
	} else if _, err := time.Parse("2006-01-02", schema.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("start_date: invalid date format %q (expected YYYY-MM-DD)", schema.StartDate))
	}
	if schema.EndDate == "" {
		errs = append(errs, fmt.Errorf("end_date is required"))
	} else if _, err := time.Parse("2006-01-02", schema.EndDate); err != nil {
		errs = append(errs, fmt.Errorf("end_date: invalid date format %q (expected YYYY-MM-DD)", schema.EndDate))
	}
	errs = append(errs, validateDateField("actual_data_until", schema.ActualDataUntil)...)
	if len(schema.Phases) == 0 {
		errs = append(errs, fmt.Errorf("phases must not be empty"))
	}

	names := make(map[string]bool)
	for i, ph := range schema.Phases {
		if ph.Name == "" {
			errs = append(errs, fmt.Errorf("phases[%d]: name is required", i))
		}
		if names[ph.Name] {
			errs = append(errs, fmt.Errorf("phases[%d]: duplicate name %q", i, ph.Name))
		}
		names[ph.Name] = true
		for j, rd := range ph.Roles {
			if len(rd.Demand) == 0 {
				errs = append(errs, fmt.Errorf("phases[%d].roles[%d]: demand must not be empty", i, j))
			}
		}
	}

	return errs
}

// ValidateCapacityImport checks a capacity override import for errors.
func ValidateCapacityImport(schema *CapacityImport) []error {
	var errs []error

	if len(schema.Overrides) == 0 {
		errs = append(errs, fmt.Errorf("overrides must not be empty"))
	}
	for i, o := range schema.Overrides {
		if o.StartOfYear == "" {
			errs = append(errs, fmt.Errorf("overrides[%d]: start_of_year is required", i))
		} else if _, err := time.Parse("2006-01-02", o.StartOfYear); err != nil {
			errs = append(errs, fmt.Errorf("overrides[%d]: invalid date format %q (expected YYYY-MM-DD)", i, o.StartOfYear))
		}
		if len(o.Months) == 0 {
			errs = append(errs, fmt.Errorf("overrides[%d]: months must not be empty", i))
		}
		for j, m := range o.Months {
			if m != nil && *m < 0 {
				errs = append(errs, fmt.Errorf("overrides[%d].months[%d] must not be negative", i, j))
			}
		}
	}

	return errs
}

func validateDateField(name string, v *string) []error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *v); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", name, *v)}
	}
	return nil
}
