package app

import (
	"time"

	"github.com/jheinsohn/plantafel/internal/engine"
)

// ReportRequest selects the plan and the organisational viewpoint for a
// cost/capacity aggregation. PlanID wins over ProjectID+Variant when both
// are set. TeamUID < 0 queries without a team context.
type ReportRequest struct {
	PlanID    string
	ProjectID string
	Variant   string

	RootRoleUID int
	TeamUID     int
	Now         *time.Time
}

func NewReportRequest(projectID string, rootRoleUID int) ReportRequest {
	return ReportRequest{
		ProjectID:   projectID,
		Variant:     "working",
		RootRoleUID: rootRoleUID,
		TeamUID:     -1,
	}
}

type ReportResponse struct {
	PlanID      string
	PlanName    string
	ProjectID   string
	Variant     string
	StartDate   time.Time
	EndDate     time.Time
	RootRoleUID int
	TeamUID     int

	Aggregation *engine.Aggregation
	TotalCost   float64
}
