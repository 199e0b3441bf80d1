package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestMergeOverrides_Empty(t *testing.T) {
	start, months := MergeOverrides(nil)

	assert.True(t, start.IsZero())
	assert.Nil(t, months)
}

func TestMergeOverrides_OutOfOrderEntries(t *testing.T) {
	a := CapacityOverride{RoleUID: 7, StartOfYear: date(2021, time.January, 1), Months: []*float64{ptr(10), ptr(12), nil}}
	b := CapacityOverride{RoleUID: 7, StartOfYear: date(2021, time.June, 1), Months: []*float64{ptr(5), ptr(5)}}

	start, months := MergeOverrides([]CapacityOverride{b, a})
	require.Equal(t, date(2021, time.January, 1), start)
	require.Len(t, months, 7)

	assert.Equal(t, 10.0, *months[0])
	assert.Equal(t, 12.0, *months[1])
	assert.Nil(t, months[2], "gap inside an override stays open")
	assert.Nil(t, months[3])
	assert.Nil(t, months[4])
	assert.Equal(t, 5.0, *months[5])
	assert.Equal(t, 5.0, *months[6])
}

func TestMergeOverrides_SingleEntry(t *testing.T) {
	start, months := MergeOverrides([]CapacityOverride{
		{RoleUID: 11, StartOfYear: date(2021, time.January, 1), Months: []*float64{ptr(10), nil, ptr(12)}},
	})

	assert.Equal(t, date(2021, time.January, 1), start)
	require.Len(t, months, 3)
	assert.Equal(t, 10.0, *months[0])
	assert.Nil(t, months[1])
	assert.Equal(t, 12.0, *months[2])
}

func TestMergeOverrides_GapBetweenYearsStaysNil(t *testing.T) {
	start, months := MergeOverrides([]CapacityOverride{
		{RoleUID: 11, StartOfYear: date(2020, time.January, 1), Months: []*float64{ptr(10)}},
		{RoleUID: 11, StartOfYear: date(2021, time.January, 1), Months: []*float64{ptr(20)}},
	})

	assert.Equal(t, date(2020, time.January, 1), start)
	require.Len(t, months, 13)
	assert.Equal(t, 10.0, *months[0])
	for i := 1; i < 12; i++ {
		assert.Nil(t, months[i])
	}
	assert.Equal(t, 20.0, *months[12])
}

func TestMergeOverrides_LongEarlyEntryKeepsItsTail(t *testing.T) {
	long := make([]*float64, 24)
	for i := range long {
		long[i] = ptr(float64(i + 1))
	}

	start, months := MergeOverrides([]CapacityOverride{
		{RoleUID: 11, StartOfYear: date(2020, time.January, 1), Months: long},
		{RoleUID: 11, StartOfYear: date(2020, time.June, 1), Months: []*float64{ptr(99)}},
	})

	assert.Equal(t, date(2020, time.January, 1), start)
	require.Len(t, months, 24)
	assert.Equal(t, 99.0, *months[5])
	assert.Equal(t, 24.0, *months[23])
}

func TestMergeOverrides_LaterEntryWinsOnOverlap(t *testing.T) {
	_, months := MergeOverrides([]CapacityOverride{
		{RoleUID: 11, StartOfYear: date(2021, time.January, 1), Months: []*float64{ptr(10), ptr(10)}},
		{RoleUID: 11, StartOfYear: date(2021, time.February, 1), Months: []*float64{ptr(20)}},
	})

	require.Len(t, months, 2)
	assert.Equal(t, 10.0, *months[0])
	assert.Equal(t, 20.0, *months[1])
}
