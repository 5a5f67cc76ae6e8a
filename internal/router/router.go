// Package router classifies queries into the handler categories. Cheap
// deterministic phrase rules run first; only queries they cannot place go to
// the language model, whose answer is trusted only when it names a known
// category.
package router

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"sefariabot/internal/holiday"
)

// Category is a handler category for a classified query.
type Category string

const (
	CategoryCalendarToday       Category = "calendar_today"
	CategoryCalendarInfo        Category = "calendar_info"
	CategoryCalendarDiff        Category = "calendar_diff"
	CategoryCalendarWithContext Category = "calendar_with_context"
	CategoryTextSearch          Category = "text_search"
	CategoryGeneral             Category = "general"
)

var knownCategories = map[string]Category{
	"calendar_today":        CategoryCalendarToday,
	"calendar_info":         CategoryCalendarInfo,
	"calendar_diff":         CategoryCalendarDiff,
	"calendar_with_context": CategoryCalendarWithContext,
	"text_search":           CategoryTextSearch,
	"general":               CategoryGeneral,
}

// Decision is the routing outcome. The flags preserve what the phrase rules
// already learned so handlers do not re-scan the query.
type Decision struct {
	Category  Category
	DaysUntil bool // query asks how long until an event
	Convert   bool // query asks for a calendar conversion
}

// Classifier produces a completion for a prompt under a system instruction.
// Implemented by the openrouter client.
type Classifier interface {
	Complete(ctx context.Context, prompt, systemContext string) (string, error)
}

const routerPrompt = `
Ты — маршрутизатор для еврейского чат-бота. Выбери одну из категорий, которая лучше всего описывает намерение пользователя.

Категории:

• calendar_today         — узнать сегодняшнюю/завтрашнюю/вчерашнюю дату, день недели, еврейскую дату и т.п.
• calendar_info          — запрос даты или информации о празднике, шаббате, конвертация дат, сколько дней до события, (например: «19 июля какой день по еврейски», «2 кислев какой день по григориански», «5 сиван конвертируй в григорианский»)
• calendar_diff          — разница между двумя датами
• calendar_with_context  — требуется и календарная информация, и объяснение текста (например: «Расскажи о Шавуоте и когда он будет»)
• text_search            — поиск источников, объяснение понятий, вопросов о законах, комментариях, историях и т.п.
• general                — всё остальное, включая философию, мораль, историю, современность

Отвечай только одной категорией. Без пояснений. Без кавычек. Только имя категории.
`

// conversionPhrases signal a calendar conversion request.
var conversionPhrases = []string{
	"конвертир", "перевед", "как будет", "какая дата", "какой день",
	"по еврейски", "по григориански", "в еврейский", "в григорианский",
	"на иврите", "на еврейском",
}

// daysUntilPhrases signal a "how long until the event" request.
var daysUntilPhrases = []string{
	"сколько дней до", "когда будет", "когда наступит", "когда начинается",
	"когда начнется", "когда отмечают", "когда празднуют", "когда отмечается",
	"когда празднуется", "когда наступает",
}

var todayPhrases = []string{
	"сегодня", "завтра", "вчера", "какое сегодня число", "какой сегодня день",
	"сегодняшняя дата", "текущая дата",
}

var explainPhrases = []string{
	"расскажи", "что такое", "объясни", "почему", "в чем смысл", "в чём смысл",
}

var searchPhrases = []string{
	"источник", "где написано", "где сказано", "найди текст", "приведи цитату",
	"что говорит тора", "что говорит талмуд", "по галахе", "галаха",
}

var diffPhrases = []string{
	"разница между", "сколько дней между", "сколько дней прошло",
	"сколько времени между", "сколько времени прошло",
}

var fullDateRe = regexp.MustCompile(`\d{4}[-/. ]\d{1,2}[-/. ]\d{1,2}`)

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// Router classifies queries.
type Router struct {
	classifier Classifier
	log        *logrus.Entry
}

// New creates a Router that falls back to the given classifier.
func New(classifier Classifier) *Router {
	return &Router{
		classifier: classifier,
		log:        logrus.WithField("component", "router"),
	}
}

// Classify routes a query to its handler category. The phrase rules are
// checked in order and the first hit wins; the model is consulted only when
// none apply. A model failure or unknown label degrades to general.
func (r *Router) Classify(ctx context.Context, query string) Decision {
	q := strings.ToLower(strings.TrimSpace(query))

	_, _, hasHoliday := holiday.Match(q)

	switch {
	case len(fullDateRe.FindAllString(q, 2)) >= 2 || containsAny(q, diffPhrases):
		return Decision{Category: CategoryCalendarDiff}
	case containsAny(q, daysUntilPhrases):
		return Decision{Category: CategoryCalendarInfo, DaysUntil: true}
	case containsAny(q, conversionPhrases):
		return Decision{Category: CategoryCalendarInfo, Convert: true}
	case containsAny(q, todayPhrases):
		return Decision{Category: CategoryCalendarToday}
	case hasHoliday && containsAny(q, explainPhrases):
		return Decision{Category: CategoryCalendarWithContext}
	case hasHoliday:
		return Decision{Category: CategoryCalendarInfo}
	case containsAny(q, searchPhrases):
		return Decision{Category: CategoryTextSearch}
	}

	answer, err := r.classifier.Complete(ctx, query, routerPrompt)
	if err != nil {
		r.log.WithError(err).Warn("classifier unavailable, routing to general")
		return Decision{Category: CategoryGeneral}
	}

	label := strings.ToLower(strings.TrimSpace(answer))
	category, ok := knownCategories[label]
	if !ok {
		r.log.WithField("label", label).Debug("unknown classifier label")
		return Decision{Category: CategoryGeneral}
	}
	return Decision{Category: category}
}
