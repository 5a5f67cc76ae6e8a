// Package service orchestrates a query end to end: routing, calendar fact
// gathering, text grounding and the final completion. Handlers assemble
// factual blocks in Telegram HTML and the model is only ever asked to talk
// around facts it was given, never to compute calendar data itself.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/clients/sefaria"
	"sefariabot/internal/dates"
	"sefariabot/internal/domain"
	"sefariabot/internal/holiday"
	"sefariabot/internal/router"
)

// CompletionClient generates an answer for a prompt under a system context.
type CompletionClient interface {
	Complete(ctx context.Context, prompt, systemContext string) (string, error)
}

// TextSource serves text search and retrieval for grounding.
type TextSource interface {
	Search(ctx context.Context, query string, limit int) []sefaria.SearchHit
	GetText(ctx context.Context, ref string) (sefaria.TextResult, error)
}

// DayLister serves the holiday feed for one specific date.
type DayLister interface {
	HolidaysOnDate(ctx context.Context, t time.Time) (hebcal.HolidayList, error)
}

// ChatService answers user queries.
type ChatService struct {
	router      *router.Router
	bridge      *calendar.Bridge
	resolver    *holiday.Resolver
	completion  CompletionClient
	texts       TextSource
	dayHolidays DayLister
	now         func() time.Time
	log         *logrus.Entry
}

// NewChatService creates the query pipeline. A nil now defaults to time.Now;
// tests inject a fixed clock.
func NewChatService(
	rt *router.Router,
	bridge *calendar.Bridge,
	resolver *holiday.Resolver,
	completion CompletionClient,
	texts TextSource,
	dayHolidays DayLister,
	now func() time.Time,
) *ChatService {
	if now == nil {
		now = time.Now
	}
	return &ChatService{
		router:      rt,
		bridge:      bridge,
		resolver:    resolver,
		completion:  completion,
		texts:       texts,
		dayHolidays: dayHolidays,
		now:         now,
		log:         logrus.WithField("component", "chat"),
	}
}

// HandleQuery classifies the query and runs its handler. The returned text is
// ready for Telegram HTML parse mode.
func (s *ChatService) HandleQuery(ctx context.Context, query string) string {
	decision := s.router.Classify(ctx, query)
	s.log.WithField("category", decision.Category).Debug("query routed")

	switch decision.Category {
	case router.CategoryCalendarToday:
		return s.handleCalendarToday(ctx, query)
	case router.CategoryCalendarInfo:
		if decision.Convert {
			return s.handleDateConversion(ctx, query)
		}
		return s.handleCalendarEvent(ctx, query, decision.DaysUntil)
	case router.CategoryCalendarDiff:
		return s.handleDateDiff(ctx, query)
	case router.CategoryCalendarWithContext:
		block := s.calendarContext(ctx, query)
		return s.complete(ctx, query, systemPrompt+"\n\n"+block)
	default:
		return s.groundedAnswer(ctx, query)
	}
}

func (s *ChatService) handleCalendarToday(ctx context.Context, query string) string {
	block := s.calendarContext(ctx, query)
	return s.complete(ctx, query, systemPrompt+"\n\n"+block)
}

// calendarContext builds the factual block for the date the query talks
// about: both calendar representations, the weekday, the day's holidays and
// an explicit relative-day prefix so the model cannot confuse today with
// tomorrow.
func (s *ChatService) calendarContext(ctx context.Context, query string) string {
	today := dates.StartOfDay(s.now())
	target, ok := dates.Extract(query, s.now())
	if !ok {
		target = today
	}
	daysDiff := int(target.Sub(today).Hours() / 24)

	cal, err := s.bridge.ToHebrew(ctx, target)
	if err != nil {
		s.log.WithError(err).Error("hebrew conversion failed")
	}

	var holidayLines []string
	if list, err := s.dayHolidays.HolidaysOnDate(ctx, target); err == nil {
		for _, item := range list.Items {
			line := fmt.Sprintf("• %s — %s (%s)", item.Title, item.Date, item.Hebrew)
			if item.Description != "" {
				line += ": " + item.Description
			}
			holidayLines = append(holidayLines, line)
		}
	}

	q := strings.ToLower(query)
	var prefix string
	switch {
	case strings.Contains(q, "послезавтра"):
		prefix = "Послезавтра будет: "
	case strings.Contains(q, "завтра"):
		prefix = "Завтра будет: "
	case daysDiff > 0:
		prefix = fmt.Sprintf("Через %d %s будет: ", daysDiff, dates.PluralDays(daysDiff))
	case daysDiff < 0:
		prefix = fmt.Sprintf("%d %s назад было: ", -daysDiff, dates.PluralDays(-daysDiff))
	}

	holidaysText := "Нет известных праздников в эту дату."
	if len(holidayLines) > 0 {
		holidaysText = strings.Join(holidayLines, "\n")
	}

	return fmt.Sprintf(
		"<b>Фактическая дата:</b>\n"+
			"%s%s (соответствует %s).\n"+
			"<b>День недели:</b> %s\n\n"+
			"<b>Праздники:</b>\n%s"+
			"\n\n<b>О еврейском календаре:</b>\nЕврейский календарь основан на лунно‑солнечном цикле. Год по еврейскому летоисчислению: %d",
		prefix, cal.HebrewLabel, cal.Gregorian, cal.Weekday, holidaysText, cal.Hebrew.Year,
	)
}

// handleCalendarEvent answers holiday date questions. When the query names no
// known holiday, or nothing is found in the searched years, it degrades to
// the plain calendar context.
func (s *ChatService) handleCalendarEvent(ctx context.Context, query string, daysUntil bool) string {
	occurrences, matched, err := s.resolver.Resolve(ctx, query, s.now())
	if err != nil {
		s.log.WithError(err).Error("holiday resolution failed")
	}
	if !matched || len(occurrences) == 0 {
		return s.handleCalendarToday(ctx, query)
	}

	lines := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		line := fmt.Sprintf("<b>%s</b> — %s (%s)",
			occ.Title, occ.Date.Format("2006-01-02"), occ.HebrewLabel)
		if daysUntil {
			line += "\n" + holiday.DaysUntilText(occ, s.now())
		}
		if occ.Description != "" {
			line += ": " + occ.Description
		}
		lines = append(lines, line)
	}

	scope := holiday.Scope(query, s.now())
	var yearInfo string
	switch {
	case scope.Explicit != 0:
		yearInfo = fmt.Sprintf(" в %d году", scope.Explicit)
	case scope.NextYear:
		yearInfo = fmt.Sprintf(" в %d году (следующий год)", scope.Years[0])
	case scope.ThisYear:
		yearInfo = fmt.Sprintf(" в %d году (текущий год)", scope.Years[0])
	}

	block := fmt.Sprintf("\n\n<b>Информация о празднике%s:</b>\n%s", yearInfo, strings.Join(lines, "\n"))
	return s.complete(ctx, query, systemPrompt+block)
}

// toHebrewPhrases and toGregorianPhrases pin the conversion direction. When
// neither occurs, a Hebrew month name in the query implies Hebrew→Gregorian,
// otherwise Gregorian→Hebrew.
var (
	toHebrewPhrases = []string{
		"по еврейски", "в еврейский", "на иврите", "на еврейском", "в еврейскую",
	}
	toGregorianPhrases = []string{
		"по григориански", "в григорианский", "в григорианскую",
	}
	hebrewDayRe  = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})(?:[^\d]|$)`)
	hebrewYearRe = regexp.MustCompile(`(?:^|[^\d])(\d{4,5})(?:[^\d]|$)`)
)

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

func (s *ChatService) handleDateConversion(ctx context.Context, query string) string {
	q := strings.ToLower(query)

	toHebrew := containsAny(q, toHebrewPhrases)
	toGregorian := containsAny(q, toGregorianPhrases)
	if !toHebrew && !toGregorian {
		for _, m := range hebcal.RussianMonths {
			if strings.Contains(q, m.Russian) {
				toGregorian = true
				break
			}
		}
		if !toGregorian {
			toHebrew = true
		}
	}

	if toHebrew {
		if target, ok := dates.ExtractAbsolute(query, s.now()); ok {
			return s.convertToHebrew(ctx, query, target)
		}
	}
	if toGregorian {
		if h, ok := s.parseHebrewDate(ctx, q); ok {
			return s.convertToGregorian(ctx, query, h)
		}
	}
	return clarifyDateMessage
}

func (s *ChatService) convertToHebrew(ctx context.Context, query string, target time.Time) string {
	cal, err := s.bridge.ToHebrew(ctx, target)
	if err != nil {
		return fmt.Sprintf("<b>Ошибка конвертации:</b>\n%v", err)
	}

	block := fmt.Sprintf(
		"<b>Результат конвертации даты:</b>\n\n"+
			"Григорианская дата <b>%s</b> (%s) соответствует еврейской дате <b>%s</b>.\n\n"+
			"<b>Подробная информация:</b>\n"+
			"• Еврейский год: %d\n"+
			"• Еврейский месяц: %s\n"+
			"• Еврейский день: %d\n",
		target.Format("02.01.2006"), cal.Weekday, cal.HebrewLabel,
		cal.Hebrew.Year, cal.Hebrew.Month, cal.Hebrew.Day,
	)
	block += s.holidaysSection(ctx, target) + calendarNote
	return s.complete(ctx, query, systemPrompt+"\n\n"+block)
}

func (s *ChatService) convertToGregorian(ctx context.Context, query string, h domain.HebrewDate) string {
	cal, err := s.bridge.ToGregorian(ctx, h)
	if err != nil {
		return fmt.Sprintf("<b>Ошибка конвертации:</b>\n%v", err)
	}

	target := cal.Gregorian.Time()
	block := fmt.Sprintf(
		"<b>Результат конвертации даты:</b>\n\n"+
			"Еврейская дата <b>%d %s %d</b> соответствует григорианской дате <b>%s</b> (%s).\n\n"+
			"<b>Подробная информация:</b>\n"+
			"• Григорианский год: %d\n"+
			"• Григорианский месяц: %d\n"+
			"• Григорианский день: %d\n"+
			"• День недели: %s\n",
		h.Day, h.Month, h.Year, target.Format("02.01.2006"), cal.Weekday,
		cal.Gregorian.Year, int(cal.Gregorian.Month), cal.Gregorian.Day, cal.Weekday,
	)
	block += s.holidaysSection(ctx, target) + calendarNote
	return s.complete(ctx, query, systemPrompt+"\n\n"+block)
}

// parseHebrewDate pulls a Hebrew date out of the query: a Russian month name,
// a 1-2 digit day and an optional 4-5 digit year. A missing year falls back
// to the current Hebrew year, discovered by converting today; if even that
// fails, the civil year plus 3760 approximates it.
func (s *ChatService) parseHebrewDate(ctx context.Context, q string) (domain.HebrewDate, bool) {
	var month string
	for _, m := range hebcal.RussianMonths {
		if strings.Contains(q, m.Russian) {
			month = m.Canonical
			break
		}
	}
	dayMatch := hebrewDayRe.FindStringSubmatch(q)
	if month == "" || dayMatch == nil {
		return domain.HebrewDate{}, false
	}
	day, _ := strconv.Atoi(dayMatch[1])

	year := 0
	if ym := hebrewYearRe.FindStringSubmatch(q); ym != nil {
		year, _ = strconv.Atoi(ym[1])
	}
	if year == 0 {
		if cal, err := s.bridge.ToHebrew(ctx, s.now()); err == nil {
			year = cal.Hebrew.Year
		} else {
			year = s.now().Year() + 3760
		}
	}
	return domain.HebrewDate{Year: year, Month: month, Day: day}, true
}

// holidaysSection formats the holidays falling on the date, or a fixed
// "nothing special" line.
func (s *ChatService) holidaysSection(ctx context.Context, target time.Time) string {
	var lines []string
	if list, err := s.dayHolidays.HolidaysOnDate(ctx, target); err == nil {
		for _, item := range list.Items {
			line := "• " + item.Title
			if item.Description != "" {
				line += ": " + item.Description
			}
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		return "\n<b>Праздники и события на эту дату:</b>\n" + strings.Join(lines, "\n")
	}
	return "\n<b>Праздники и события:</b> На эту дату не приходится особых праздников или событий."
}

var diffSplitRe = regexp.MustCompile(`и|between|между|—|-|to`)

// handleDateDiff extracts two dates and reports the distance between them.
// Two explicit numeric dates win; otherwise the query is split once on a
// conjunction and each half goes through full date extraction, so "от
// послезавтра до 15 июля" works too. Fewer than two dates degrades to a
// grounded answer.
func (s *ChatService) handleDateDiff(ctx context.Context, query string) string {
	found := dates.ExtractAllNumeric(query)
	if len(found) > 2 {
		found = found[:2]
	}

	if len(found) < 2 {
		parts := diffSplitRe.Split(query, 2)
		if len(parts) == 2 {
			found = found[:0]
			for _, part := range parts {
				if t, ok := dates.Extract(strings.TrimSpace(part), s.now()); ok {
					found = append(found, t)
				}
			}
		}
	}
	if len(found) != 2 {
		return s.groundedAnswer(ctx, query)
	}

	diff := dates.Diff(found[0], found[1])
	label1 := s.hebrewLabel(ctx, found[0])
	label2 := s.hebrewLabel(ctx, found[1])

	block := fmt.Sprintf(
		"<b>Разница между датами:</b> %d дн.\n"+
			"%s (григ.) — %s\n"+
			"%s (григ.) — %s\n"+
			"Это %d %s, %d %s и %d %s, или %d %s и %d %s.",
		diff.Days,
		found[0].Format("2006-01-02"), label1,
		found[1].Format("2006-01-02"), label2,
		diff.Years, dates.PluralYears(diff.Years),
		diff.Months, dates.PluralMonths(diff.Months),
		diff.RemainingDays, dates.PluralDays(diff.RemainingDays),
		diff.Weeks, dates.PluralWeeks(diff.Weeks),
		diff.RemainingAfterWeeks, dates.PluralDays(diff.RemainingAfterWeeks),
	)
	return s.complete(ctx, query, systemPrompt+"\n\n"+block)
}

func (s *ChatService) hebrewLabel(ctx context.Context, t time.Time) string {
	cal, err := s.bridge.ToHebrew(ctx, t)
	if err != nil {
		return ""
	}
	return cal.HebrewLabel
}

// groundedAnswer grounds the completion on the top search hits. Search and
// retrieval failures just shrink the context.
func (s *ChatService) groundedAnswer(ctx context.Context, query string) string {
	hits := s.texts.Search(ctx, query, 10)

	var contextTexts []string
	for _, hit := range hits {
		if len(contextTexts) >= 3 {
			break
		}
		ref := hit.Source.Ref
		if ref == "" {
			continue
		}
		result, err := s.texts.GetText(ctx, ref)
		if err != nil || result.Text.IsEmpty() {
			continue
		}
		contextTexts = append(contextTexts,
			fmt.Sprintf("Источник: %s\nТекст: %s", ref, result.Text.Join()))
	}

	systemContext := systemPrompt
	if len(contextTexts) > 0 {
		systemContext += "\n\nРелевантные тексты из Sefaria:\n\n" + strings.Join(contextTexts, "\n\n")
	}
	return s.complete(ctx, query, systemContext)
}

// complete runs the model call and sanitizes the output for Telegram. A model
// failure yields a fixed apology rather than an error leaking to the user.
func (s *ChatService) complete(ctx context.Context, query, systemContext string) string {
	answer, err := s.completion.Complete(ctx, query, systemContext)
	if err != nil {
		s.log.WithError(err).Error("completion failed")
		return "Извините, не удалось получить ответ. Попробуйте переформулировать запрос или повторить позже."
	}
	return CleanTelegramHTML(answer)
}
