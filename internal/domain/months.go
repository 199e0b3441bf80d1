package domain

import "time"

// Epoch is the calendar origin for month-column arithmetic. Every plan and
// snapshot date is mapped to a column counted in whole months since this
// date; dates before it are rejected by plan validation.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// MonthIndex returns the zero-based month column of t relative to Epoch.
func MonthIndex(t time.Time) int {
	return (t.Year()-Epoch.Year())*12 + int(t.Month()) - int(Epoch.Month())
}

// MonthStart returns the first day of the month identified by column idx.
func MonthStart(idx int) time.Time {
	return Epoch.AddDate(0, idx, 0)
}

// MonthSpan returns the number of month columns covered by [start, end],
// inclusive on both ends. A plan running 15 Jan to 10 Mar spans 3 months.
func MonthSpan(start, end time.Time) int {
	return MonthIndex(end) - MonthIndex(start) + 1
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// DaySpan returns the number of calendar days covered by [start, end],
// inclusive on both ends.
func DaySpan(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
