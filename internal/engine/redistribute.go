package engine

import (
	"math"
	"time"

	"github.com/jheinsohn/plantafel/internal/domain"
)

// shapeToleranceDays is the maximum start/end day-of-month drift under which
// two spans of equal month count are considered shape-similar, allowing a
// cheap element-wise rescale instead of a full redistribution.
const shapeToleranceDays = 3

// Redistribute maps a monthly series anchored to [oldStart, oldEnd] onto
// [newStart, newEnd], scaled by factor. The first freeze entries are copied
// through untouched (recorded actuals). When the spans are shape-similar the
// relative distribution is preserved element-wise; otherwise the scaled
// total, minus the frozen prefix, is spread across the remaining new months
// in proportion to the calendar days each contributes to the span, with the
// rounding remainder pushed into the final month so the sum lands exactly on
// the scaled total.
func Redistribute(values []float64, oldStart, oldEnd, newStart, newEnd time.Time, factor float64, freeze int) []float64 {
	newMonths := domain.MonthSpan(newStart, newEnd)
	if newMonths <= 0 {
		return nil
	}
	out := make([]float64, newMonths)
	if len(values) == 0 {
		return out
	}

	if freeze < 0 {
		freeze = 0
	}
	if freeze > newMonths {
		freeze = newMonths
	}
	if freeze > len(values) {
		freeze = len(values)
	}
	copy(out[:freeze], values[:freeze])

	if similarShape(values, oldStart, oldEnd, newStart, newEnd) {
		for i := freeze; i < newMonths; i++ {
			out[i] = round3(values[i] * factor)
		}
		return out
	}

	target := round3(domain.Sum(values)*factor) - domain.Sum(out[:freeze])
	weights := monthWeights(newStart, newEnd)

	var weightTotal float64
	for i := freeze; i < newMonths; i++ {
		weightTotal += weights[i]
	}
	if weightTotal == 0 {
		if freeze < newMonths {
			out[newMonths-1] += round3(target)
		}
		return out
	}

	allocated := 0.0
	for i := freeze; i < newMonths-1; i++ {
		v := round3(target * weights[i] / weightTotal)
		out[i] = v
		allocated += v
	}
	if freeze < newMonths {
		out[newMonths-1] = round3(target - allocated)
	}
	return out
}

// SumsMatch reports whether two series totals agree within the engine's
// rounding tolerance. A mismatch after redistribution is a severe condition
// the caller should log; the redistributed series is still usable.
func SumsMatch(a, b float64) bool {
	return round3(a) == round3(b)
}

// similarShape reports whether old and new spans cover the same number of
// months with start/end day-of-month offsets within tolerance.
func similarShape(values []float64, oldStart, oldEnd, newStart, newEnd time.Time) bool {
	if domain.MonthSpan(newStart, newEnd) != len(values) {
		return false
	}
	if domain.MonthSpan(oldStart, oldEnd) != len(values) {
		return false
	}
	if abs(oldStart.Day()-newStart.Day()) > shapeToleranceDays {
		return false
	}
	return abs(oldEnd.Day()-newEnd.Day()) <= shapeToleranceDays
}

// monthWeights returns, per month column of [start, end], the number of
// calendar days that month contributes to the span.
func monthWeights(start, end time.Time) []float64 {
	n := domain.MonthSpan(start, end)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		monthStart := domain.MonthStart(domain.MonthIndex(start) + i)
		days := float64(domain.DaysInMonth(monthStart))
		if i == 0 {
			days = float64(domain.DaysInMonth(start) - start.Day() + 1)
		}
		if i == n-1 {
			last := float64(end.Day())
			if i == 0 {
				last = float64(end.Day() - start.Day() + 1)
			}
			days = last
		}
		weights[i] = days
	}
	return weights
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
