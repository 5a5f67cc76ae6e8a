package dates

import (
	"time"

	"sefariabot/internal/domain"
)

// Diff computes the difference between two dates. The inputs are ordered
// internally, so the result is symmetric in magnitude.
//
// The calendar decomposition advances the earlier date by whole years and
// months (with month-end clipping, so Jan 31 → Feb 28/29 borrows cleanly)
// and counts the leftover days. The week split is a plain remainder of the
// absolute day count and is independent of the year/month decomposition.
func Diff(a, b time.Time) domain.DateDiffResult {
	a, b = StartOfDay(a), StartOfDay(b)
	if b.Before(a) {
		a, b = b, a
	}

	total := daysBetween(a, b)

	years := b.Year() - a.Year()
	months := int(b.Month()) - int(a.Month())
	if months < 0 {
		years--
		months += 12
	}
	if b.Day() < a.Day() {
		months--
		if months < 0 {
			months += 12
			years--
		}
	}
	advanced := AddMonths(a, 12*years+months)

	return domain.DateDiffResult{
		Days:                total,
		Years:               years,
		Months:              months,
		RemainingDays:       daysBetween(advanced, b),
		Weeks:               total / 7,
		RemainingAfterWeeks: total % 7,
	}
}
