package domain

import (
	"fmt"
	"time"
)

// GregorianDate is a civil calendar date.
type GregorianDate struct {
	Year  int
	Month time.Month
	Day   int
}

// GregorianFromTime truncates t to its date components.
func GregorianFromTime(t time.Time) GregorianDate {
	return GregorianDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the date at midnight UTC.
func (g GregorianDate) Time() time.Time {
	return time.Date(g.Year, g.Month, g.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, int(g.Month), g.Day)
}

// HebrewDate is a Hebrew calendar date. Month is one of the canonical
// transliterated month names (12 months plus Adar I / Adar II in leap years).
// A zero Year, empty Month or zero Day means the field was not supplied.
type HebrewDate struct {
	Year  int
	Month string
	Day   int
}

func (h HebrewDate) String() string {
	return fmt.Sprintf("%d %s %d", h.Day, h.Month, h.Year)
}

// CalendarDate is a single point in time in both calendar systems at once.
// Both representations always denote the same instant; the Hebrew side comes
// exclusively from the conversion service, never from local arithmetic.
type CalendarDate struct {
	Gregorian   GregorianDate
	Hebrew      HebrewDate
	HebrewLabel string // the service's rendered Hebrew date, e.g. "15 Нисана 5784"
	Weekday     string // localized weekday name
}
