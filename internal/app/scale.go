package app

import (
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
	"github.com/jheinsohn/plantafel/internal/engine"
)

// ScaleRequest moves and stretches a plan onto a new date span. FreezeUntil
// protects everything up to and including that month from change. With
// DryRun set, the scaled plan is returned but not persisted.
type ScaleRequest struct {
	PlanID    string
	ProjectID string
	Variant   string

	NewStart    time.Time
	NewEnd      time.Time
	FreezeUntil *time.Time
	DryRun      bool
}

type ScaleResponse struct {
	SourcePlanID string
	NewPlanID    string
	Factor       float64
	Persisted    bool

	Plan   *domain.Plan
	Report *engine.ValidationReport
}
