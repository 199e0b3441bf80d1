package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhase_RelRange(t *testing.T) {
	planStart := date(2021, time.January, 1)

	tests := []struct {
		name      string
		offset    int
		duration  int
		wantStart int
		wantEnd   int
	}{
		{"first month only", 0, 20, 1, 1},
		{"spans two months", 20, 20, 1, 2},
		{"starts mid-plan", 59, 31, 3, 3},
		{"full quarter", 0, 90, 1, 4},
		{"zero duration collapses to start month", 31, 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := Phase{StartOffsetDays: tt.offset, DurationDays: tt.duration}
			relStart, relEnd := ph.RelRange(planStart)
			assert.Equal(t, tt.wantStart, relStart)
			assert.Equal(t, tt.wantEnd, relEnd)
		})
	}
}

func TestPlan_ElementCount(t *testing.T) {
	p := Plan{
		Phases: []Phase{
			{Name: RootPhaseKey},
			{Name: "build", Milestones: []Milestone{{Name: "m1"}, {Name: "m2"}}},
		},
	}
	assert.Equal(t, 4, p.ElementCount())
}

func TestRole_ActiveIn(t *testing.T) {
	entry := date(2021, time.March, 15)
	exit := date(2021, time.August, 1)
	r := Role{EntryDate: &entry, ExitDate: &exit}

	assert.False(t, r.ActiveIn(date(2021, time.February, 28)))
	assert.True(t, r.ActiveIn(date(2021, time.March, 1)), "entry month counts as active")
	assert.True(t, r.ActiveIn(date(2021, time.August, 31)), "exit month counts as active")
	assert.False(t, r.ActiveIn(date(2021, time.September, 1)))

	unbounded := Role{}
	assert.True(t, unbounded.ActiveIn(date(1999, time.December, 1)))
}
