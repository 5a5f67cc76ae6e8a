// Package calendar bridges between the Gregorian and Hebrew calendar
// representations. Conversion arithmetic is delegated entirely to the
// external converter; the bridge only validates shapes, normalizes month
// spellings and assembles CalendarDate values.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/domain"
)

// Converter is the external conversion oracle. Implemented by the hebcal
// client; tests substitute a stub with a known conversion table.
type Converter interface {
	GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (hebcal.ConvertResult, error)
	HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (hebcal.ConvertResult, error)
}

// MissingFieldsError reports which required Hebrew date fields were absent.
// Missing fields are never silently defaulted.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Bridge converts dates between the two calendar systems through a Converter.
type Bridge struct {
	converter Converter
}

// NewBridge creates a Bridge backed by the given converter.
func NewBridge(converter Converter) *Bridge {
	return &Bridge{converter: converter}
}

// ToHebrew resolves the Hebrew representation of a Gregorian date.
func (b *Bridge) ToHebrew(ctx context.Context, t time.Time) (domain.CalendarDate, error) {
	result, err := b.converter.GregorianToHebrew(ctx, t.Year(), t.Month(), t.Day())
	if err != nil {
		return domain.CalendarDate{}, fmt.Errorf("convert to hebrew: %w", err)
	}

	return domain.CalendarDate{
		Gregorian: domain.GregorianFromTime(t),
		Hebrew: domain.HebrewDate{
			Year:  result.HebrewYear,
			Month: hebcal.NormalizeMonth(result.HebrewMonth),
			Day:   result.HebrewDay,
		},
		HebrewLabel: result.Hebrew,
		Weekday:     WeekdayRu(t.Weekday()),
	}, nil
}

// ToGregorian resolves the Gregorian representation of a Hebrew date.
// All three of year, month and day are required; the error names exactly the
// fields that are missing.
func (b *Bridge) ToGregorian(ctx context.Context, h domain.HebrewDate) (domain.CalendarDate, error) {
	var missing []string
	if h.Year == 0 {
		missing = append(missing, "year")
	}
	if h.Month == "" {
		missing = append(missing, "month")
	}
	if h.Day == 0 {
		missing = append(missing, "day")
	}
	if len(missing) > 0 {
		return domain.CalendarDate{}, &MissingFieldsError{Fields: missing}
	}

	month := hebcal.NormalizeMonth(h.Month)
	result, err := b.converter.HebrewToGregorian(ctx, h.Year, month, h.Day)
	if err != nil {
		return domain.CalendarDate{}, fmt.Errorf("convert to gregorian: %w", err)
	}

	g := domain.GregorianDate{
		Year:  result.GregorianYear,
		Month: time.Month(result.GregorianMonth),
		Day:   result.GregorianDay,
	}
	return domain.CalendarDate{
		Gregorian:   g,
		Hebrew:      domain.HebrewDate{Year: h.Year, Month: month, Day: h.Day},
		HebrewLabel: result.Hebrew,
		Weekday:     WeekdayRu(g.Time().Weekday()),
	}, nil
}
