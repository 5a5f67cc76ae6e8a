package domain

import "time"

// HolidayOccurrence is one occurrence of a holiday in a specific year,
// as returned by the holiday listing service.
type HolidayOccurrence struct {
	Title       string // service title, e.g. "Песах I"
	Canonical   string // canonical holiday key the title matched
	Date        time.Time
	HebrewLabel string
	Description string
	Year        int // the Gregorian year the occurrence was searched under
}
