package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"sefariabot/internal/domain"
)

// relRule binds one language's pattern for "(marker) (number) (unit)" to its
// unit and direction. The number is always the first capture group.
type relRule struct {
	re        *regexp.Regexp
	unit      domain.DateUnit
	direction domain.Direction
}

// Rules are tried in declared order (Russian, English, Hebrew), future form
// before past form for every unit.
var relRules = []relRule{
	// Russian
	{regexp.MustCompile(`(?:через|спустя)\s*(\d+)\s*(?:дн[яейь]|день|дня|дней)`), domain.UnitDay, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:дн[яейь]|день|дня|дней)\s*(?:тому назад|назад)`), domain.UnitDay, domain.DirectionPast},
	{regexp.MustCompile(`(?:через|спустя)\s*(\d+)\s*(?:недел[ьию]|недели|недель)`), domain.UnitWeek, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:недел[ьию]|недели|недель)\s*(?:тому назад|назад)`), domain.UnitWeek, domain.DirectionPast},
	{regexp.MustCompile(`(?:через|спустя)\s*(\d+)\s*(?:месяц[аев]*|мес\.?)`), domain.UnitMonth, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:месяц[аев]*|мес\.?)\s*(?:тому назад|назад)`), domain.UnitMonth, domain.DirectionPast},
	{regexp.MustCompile(`(?:через|спустя)\s*(\d+)\s*(?:год[ауы]?|лет|года)`), domain.UnitYear, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:год[ауы]?|лет|года)\s*(?:тому назад|назад)`), domain.UnitYear, domain.DirectionPast},

	// English
	{regexp.MustCompile(`\bin\s*(\d+)\s*days?\b`), domain.UnitDay, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*days?\s*ago\b`), domain.UnitDay, domain.DirectionPast},
	{regexp.MustCompile(`\bin\s*(\d+)\s*weeks?\b`), domain.UnitWeek, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*weeks?\s*ago\b`), domain.UnitWeek, domain.DirectionPast},
	{regexp.MustCompile(`\bin\s*(\d+)\s*months?\b`), domain.UnitMonth, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*months?\s*ago\b`), domain.UnitMonth, domain.DirectionPast},
	{regexp.MustCompile(`\bin\s*(\d+)\s*years?\b`), domain.UnitYear, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*years?\s*ago\b`), domain.UnitYear, domain.DirectionPast},

	// Hebrew
	{regexp.MustCompile(`בעוד\s*(\d+)\s*(?:ימים|יום)`), domain.UnitDay, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:ימים|יום)\s*(?:לפני|אחורה)`), domain.UnitDay, domain.DirectionPast},
	{regexp.MustCompile(`בעוד\s*(\d+)\s*(?:שבועות|שבוע)`), domain.UnitWeek, domain.DirectionFuture},
	{regexp.MustCompile(`(\d+)\s*(?:שבועות|שבוע)\s*(?:לפני|אחורה)`), domain.UnitWeek, domain.DirectionPast},
}

// ParseRelative matches query against the relative-offset pattern sets.
// query must already be lower-cased.
func ParseRelative(query string) (domain.RelativeExpression, bool) {
	for _, rule := range relRules {
		m := rule.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return domain.RelativeExpression{
			Magnitude: n,
			Unit:      rule.unit,
			Direction: rule.direction,
		}, true
	}
	return domain.RelativeExpression{}, false
}

// ResolveRelative applies expr to the anchor date. Day and week offsets are
// fixed durations; month and year offsets advance the calendar with
// month-end clipping.
func ResolveRelative(expr domain.RelativeExpression, anchor time.Time) time.Time {
	n := expr.Offset()
	switch expr.Unit {
	case domain.UnitWeek:
		return anchor.AddDate(0, 0, 7*n)
	case domain.UnitMonth:
		return AddMonths(anchor, n)
	case domain.UnitYear:
		return AddYears(anchor, n)
	default:
		return anchor.AddDate(0, 0, n)
	}
}

// dayWords maps fixed day expressions to day offsets. Longer phrases come
// before their substrings ("послезавтра" before "завтра").
var dayWords = []struct {
	phrase string
	offset int
}{
	// Russian
	{"позавчера", -2},
	{"послезавтра", 2},
	{"вчера", -1},
	{"завтра", 1},
	{"сегодня", 0},
	// English
	{"day before yesterday", -2},
	{"day after tomorrow", 2},
	{"yesterday", -1},
	{"tomorrow", 1},
	{"today", 0},
	// Hebrew
	{"שלשום", -2},
	{"מחרתיים", 2},
	{"אתמול", -1},
	{"מחר", 1},
	{"היום", 0},
}

// matchDayWord finds a fixed day-word (today/yesterday/…) in the query.
func matchDayWord(query string) (int, bool) {
	for _, w := range dayWords {
		if strings.Contains(query, w.phrase) {
			return w.offset, true
		}
	}
	return 0, false
}

// Bare "через N" / "in N" / "בעוד N" without a unit defaults to days.
var bareOffsetRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:через|спустя)\s*(\d+)`),
	regexp.MustCompile(`\bin\s*(\d+)`),
	regexp.MustCompile(`בעוד\s*(\d+)`),
}

// unitStopWords block the bare-number default: if any week/month/year word of
// any supported language appears in the query, the number is not a day count.
var unitStopWords = []string{
	"week", "month", "year",
	"недел", "месяц", "год",
	"שבוע", "חודש", "שנה",
}

// matchBareOffset handles unit-less offsets such as "через 5".
func matchBareOffset(query string) (int, bool) {
	for _, stop := range unitStopWords {
		if strings.Contains(query, stop) {
			return 0, false
		}
	}
	for _, re := range bareOffsetRes {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}
