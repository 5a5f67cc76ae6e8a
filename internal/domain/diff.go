package domain

// DateDiffResult is the difference between two dates in several views.
// Days is the absolute calendar-accurate day count. Years/Months/RemainingDays
// is the calendar-aware decomposition with month-end clipping. Weeks and
// RemainingAfterWeeks are a plain remainder split of Days; the two
// decompositions are independent views and are never reconciled.
type DateDiffResult struct {
	Days                int
	Years               int
	Months              int
	RemainingDays       int
	Weeks               int
	RemainingAfterWeeks int
}
