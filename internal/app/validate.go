package app

import "github.com/jheinsohn/plantafel/internal/engine"

// ValidateRequest selects the plan to validate. With Persist set, a plan
// that only needed healing is written back as the corrected version.
type ValidateRequest struct {
	PlanID    string
	ProjectID string
	Variant   string
	Persist   bool
}

type ValidateResponse struct {
	PlanID string
	Valid  bool
	Healed bool
	Report *engine.ValidationReport
}
