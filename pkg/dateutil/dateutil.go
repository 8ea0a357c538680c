package dateutil

import (
	"time"
)

// ProjectionYearWindow returns the calendar window covered by a projection
// year. Year 1 runs from the as-of date to December 31 of the same calendar
// year; later years cover the full calendar year asOf.Year()+year-1.
func ProjectionYearWindow(asOf time.Time, year int) (time.Time, time.Time) {
	if year <= 1 {
		end := time.Date(asOf.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
		return asOf, end
	}
	y := asOf.Year() + year - 1
	start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// Overlap clamps [aStart, aEnd] to [bStart, bEnd]. The boolean is false when
// the ranges do not intersect.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
