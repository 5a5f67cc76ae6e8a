// Package dates recognizes absolute and relative date expressions in free
// text (Russian, English, Hebrew) and does the calendar arithmetic the rest
// of the system needs: month/year advancement with month-end clipping, date
// differences and Russian pluralization of day/week counts.
//
// All Gregorian arithmetic here is proleptic-Gregorian via the time package.
// Hebrew calendar arithmetic never happens in this package.
package dates

import "time"

// StartOfDay truncates t to midnight UTC. Every extracted date is a pure
// calendar day, so results are normalized to UTC midnights regardless of the
// anchor's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months (n may be negative), preserving
// the day of month where possible and clipping at the target month's end:
// Jan 31 plus one month is Feb 28 (or Feb 29 in a leap year), not Mar 2.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, n, 0)

	day := t.Day()
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears advances t by n calendar years with the same clipping rule
// (Feb 29 plus one year is Feb 28).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// daysInMonth returns the length of the given month.
func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysBetween returns the signed number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}
