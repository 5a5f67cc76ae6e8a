package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

// RE2 has no lookbehind, so the "not preceded/followed by a digit" anchors
// are spelled as non-capturing (?:^|[^\d]) / (?:[^\d]|$) groups. That keeps a
// 2-digit day from being carved out of a 4-digit year.
var (
	fullDateRe = regexp.MustCompile(`(\d{4})[-/. ](\d{1,2})[-/. ](\d{1,2})`)
	dayMonthRe = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})[-/. ]?\s*([а-яА-Яa-zA-Z]+)`)
	yearRe     = regexp.MustCompile(`(?:^|[^\d])(\d{4})(?:[^\d]|$)`)
)

// monthStems maps spelled-out month name stems to month numbers. Substring
// containment, scanned in declared order; the first hit wins, so full stems
// precede their prefixes ("март" before "мар", "мар" before "ма").
var monthStems = []struct {
	stem  string
	month time.Month
}{
	// Russian, full and short forms covering declined endings
	{"январ", time.January}, {"янв", time.January},
	{"феврал", time.February}, {"фев", time.February},
	{"март", time.March}, {"мар", time.March},
	{"апрел", time.April}, {"апр", time.April},
	{"ма", time.May}, {"май", time.May},
	{"июн", time.June},
	{"июл", time.July},
	{"август", time.August}, {"авг", time.August},
	{"сентябр", time.September}, {"сен", time.September},
	{"октябр", time.October}, {"окт", time.October},
	{"ноябр", time.November}, {"ноя", time.November},
	{"декабр", time.December}, {"дек", time.December},
	// English, full and short forms
	{"january", time.January}, {"jan", time.January},
	{"february", time.February}, {"feb", time.February},
	{"march", time.March}, {"mar", time.March},
	{"april", time.April}, {"apr", time.April},
	{"may", time.May},
	{"june", time.June}, {"jun", time.June},
	{"july", time.July}, {"jul", time.July},
	{"august", time.August}, {"aug", time.August},
	{"september", time.September}, {"sep", time.September},
	{"october", time.October}, {"oct", time.October},
	{"november", time.November}, {"nov", time.November},
	{"december", time.December}, {"dec", time.December},
}

// fallbackParser is the strategy-6 general-purpose parser (English and
// Russian rule sets plus common numeric formats). Process-wide and read-only.
var fallbackParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(ru.All...)
	w.Add(common.All...)
	return w
}()

// Extract finds a date expressed anywhere in query, resolved against anchor.
// Strategies are tried in order, first match wins:
//
//  1. numeric date YYYY-M-D (also / . or space separated)
//  2. numeric day + spelled month + optional explicit year
//  3. relative offset "(marker) N (unit)" in Russian, English or Hebrew
//  4. fixed day-words (today/yesterday/… in three languages)
//  5. bare "через N" / "in N" defaulting to days
//  6. general-purpose multilingual parser
//
// The second return is false when nothing matched; that is "no date
// recognized", not an error.
func Extract(query string, anchor time.Time) (time.Time, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return time.Time{}, false
	}
	anchorDay := StartOfDay(anchor)

	if t, ok := ExtractAbsolute(q, anchor); ok {
		return t, true
	}
	if expr, ok := ParseRelative(q); ok {
		return ResolveRelative(expr, anchorDay), true
	}
	if offset, ok := matchDayWord(q); ok {
		return anchorDay.AddDate(0, 0, offset), true
	}
	if n, ok := matchBareOffset(q); ok {
		return anchorDay.AddDate(0, 0, n), true
	}
	return parseFallback(query, anchor)
}

// ExtractAbsolute runs only the absolute-date strategies (numeric date and
// day + spelled month). Used directly by the conversion path, which must not
// treat "завтра" as a convertible date.
func ExtractAbsolute(query string, anchor time.Time) (time.Time, bool) {
	q := strings.ToLower(query)
	if t, ok := matchNumericDate(q); ok {
		return t, true
	}
	return matchDayMonth(q, anchor)
}

// ExtractAllNumeric finds every explicit YYYY-M-D token in query, in order of
// appearance, skipping tokens that are not valid calendar dates.
func ExtractAllNumeric(query string) []time.Time {
	var out []time.Time
	for _, m := range fullDateRe.FindAllStringSubmatch(query, -1) {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(y, mo, d); ok {
			out = append(out, t)
		}
	}
	return out
}

// matchNumericDate parses an explicit YYYY-M-D token. Invalid calendar values
// (month 13, Feb 30) make the strategy a non-match rather than an error.
func matchNumericDate(query string) (time.Time, bool) {
	m := fullDateRe.FindStringSubmatch(query)
	if m == nil {
		return time.Time{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return makeDate(y, mo, d)
}

// matchDayMonth parses "15 июля", "12 dec 2025" and similar. A missing year
// defaults to the anchor's year.
func matchDayMonth(query string, anchor time.Time) (time.Time, bool) {
	m := dayMonthRe.FindStringSubmatch(query)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	word := m[2]

	var month time.Month
	for _, s := range monthStems {
		if strings.Contains(word, s.stem) {
			month = s.month
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}

	year := anchor.Year()
	if ym := yearRe.FindStringSubmatch(query); ym != nil {
		if y, err := strconv.Atoi(ym[1]); err == nil {
			year = y
		}
	}
	return makeDate(year, int(month), day)
}

// makeDate builds a UTC midnight date, rejecting values the calendar
// normalizes away.
func makeDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// pastMarkers are the words that make a past result deliberate. The
// prefer-future push must leave "прошлая пятница" / "last friday" alone;
// it exists only for ambiguous year-less dates.
var pastMarkers = []string{"прошл", "last", "ago", "назад", "שעבר", "לפני"}

func hasPastMarker(query string) bool {
	for _, m := range pastMarkers {
		if strings.Contains(query, m) {
			return true
		}
	}
	return false
}

// parseFallback hands the raw query to the general-purpose parser. An
// ambiguous year-less result in the past is pushed one year forward
// (prefer-future bias); results the parser resolved as deliberate past
// expressions stay in the past.
func parseFallback(query string, anchor time.Time) (time.Time, bool) {
	result, err := fallbackParser.Parse(query, anchor)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	t := StartOfDay(result.Time)
	if t.Before(StartOfDay(anchor)) &&
		yearRe.FindStringSubmatch(query) == nil &&
		!hasPastMarker(strings.ToLower(query)) {
		t = AddYears(t, 1)
	}
	return t, true
}
