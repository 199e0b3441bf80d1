package app

type PlanErrorCode string

const (
	ErrPlanNotFound     PlanErrorCode = "PLAN_NOT_FOUND"
	ErrNoSnapshots      PlanErrorCode = "NO_SNAPSHOTS"
	ErrInvalidVariant   PlanErrorCode = "INVALID_VARIANT"
	ErrInvalidImport    PlanErrorCode = "INVALID_IMPORT"
	ErrValidationFailed PlanErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     PlanErrorCode = "INVALID_INPUT"
	ErrInternal         PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is the typed error returned by the planning use cases; the CLI
// switches on Code for exit behaviour and phrasing.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
