// Package holiday resolves "when is X" questions about Jewish holidays:
// it matches the holiday named in a query, picks the Gregorian years worth
// searching and filters the listing feed down to upcoming occurrences.
package holiday

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/dates"
	"sefariabot/internal/domain"
)

// HolidayLister serves the holiday feed for one Gregorian year. Implemented
// by the hebcal client.
type HolidayLister interface {
	HolidaysInYear(ctx context.Context, year int) (hebcal.HolidayList, error)
}

// Resolver answers holiday date questions against a listing service.
type Resolver struct {
	lister HolidayLister
	log    *logrus.Entry
}

// NewResolver creates a Resolver backed by the given lister.
func NewResolver(lister HolidayLister) *Resolver {
	return &Resolver{
		lister: lister,
		log:    logrus.WithField("component", "holiday"),
	}
}

var explicitYearRe = regexp.MustCompile(`(?:^|[^\d])(\d{4})(?:[^\d]|$)`)

// YearScope is which Gregorian years a query asks about and why.
type YearScope struct {
	Explicit int  // non-zero when the query carries a 4-digit year
	NextYear bool // "следующий"/"будущий" qualifier
	ThisYear bool // "этот"/"текущий"/"нынешний" qualifier
	Years    []int
}

// Scope picks which Gregorian years to search. An explicit 4-digit year wins;
// "следующий"/"будущий" means next year only, "этот" and friends mean the
// current year only. With no qualifier both the current and the next year are
// searched, so a holiday already past still resolves forward.
func Scope(query string, anchor time.Time) YearScope {
	if m := explicitYearRe.FindStringSubmatch(query); m != nil {
		year, _ := strconv.Atoi(m[1])
		return YearScope{Explicit: year, Years: []int{year}}
	}
	q := strings.ToLower(query)
	cur := anchor.Year()
	if strings.Contains(q, "следующ") || strings.Contains(q, "будущ") {
		return YearScope{NextYear: true, Years: []int{cur + 1}}
	}
	if strings.Contains(q, "этот") || strings.Contains(q, "этом") ||
		strings.Contains(q, "текущ") || strings.Contains(q, "нынешн") {
		return YearScope{ThisYear: true, Years: []int{cur}}
	}
	return YearScope{Years: []int{cur, cur + 1}}
}

// Resolve finds the occurrences of the holiday named in query. Occurrences
// are returned in the order the feed lists them, current year first. When
// the search spans more than one year, occurrences already past relative to
// anchor are dropped; a single explicitly requested year is returned as-is
// even if it is entirely in the past. ok is false when the query names no
// known holiday.
func (r *Resolver) Resolve(ctx context.Context, query string, anchor time.Time) ([]domain.HolidayOccurrence, bool, error) {
	canonical, aliases, ok := Match(query)
	if !ok {
		return nil, false, nil
	}

	scope := Scope(query, anchor)
	today := dates.StartOfDay(anchor)

	var occurrences []domain.HolidayOccurrence
	var lastErr error
	for _, year := range scope.Years {
		list, err := r.lister.HolidaysInYear(ctx, year)
		if err != nil {
			r.log.WithError(err).WithField("year", year).Error("holiday listing failed")
			lastErr = err
			continue
		}
		if list.Error != "" {
			lastErr = fmt.Errorf("holiday listing for %d: %s", year, list.Error)
			continue
		}
		for _, item := range list.Items {
			if !item.TitleMatches(aliases) {
				continue
			}
			date, err := item.ParseDate()
			if err != nil {
				continue
			}
			if len(scope.Years) > 1 && date.Before(today) {
				continue
			}
			occurrences = append(occurrences, domain.HolidayOccurrence{
				Title:       item.Title,
				Canonical:   canonical,
				Date:        date,
				HebrewLabel: item.Hebrew,
				Description: item.Description,
				Year:        year,
			})
		}
	}

	if len(occurrences) == 0 && lastErr != nil {
		return nil, true, lastErr
	}
	return occurrences, true, nil
}

// DaysUntilText formats the distance from anchor to the occurrence date as a
// declined Russian phrase.
func DaysUntilText(occ domain.HolidayOccurrence, anchor time.Time) string {
	days := int(occ.Date.Sub(dates.StartOfDay(anchor)).Hours() / 24)
	switch {
	case days == 0:
		return "Праздник сегодня."
	case days < 0:
		return fmt.Sprintf("Праздник прошел %d %s назад.", -days, dates.PluralDays(-days))
	default:
		return fmt.Sprintf("До праздника осталось %d %s.", days, dates.PluralDays(days))
	}
}
