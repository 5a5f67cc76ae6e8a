package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/clients/sefaria"
	"sefariabot/internal/holiday"
	"sefariabot/internal/router"
)

type fakeClassifier struct {
	label string
	err   error
}

func (f *fakeClassifier) Complete(ctx context.Context, prompt, systemContext string) (string, error) {
	return f.label, f.err
}

type fakeCompletion struct {
	gotPrompt  string
	gotContext string
	answer     string
	err        error
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt, systemContext string) (string, error) {
	f.gotPrompt = prompt
	f.gotContext = systemContext
	return f.answer, f.err
}

type fakeTexts struct {
	hits []sefaria.SearchHit
	text sefaria.TextResult
	err  error
}

func (f *fakeTexts) Search(ctx context.Context, query string, limit int) []sefaria.SearchHit {
	return f.hits
}

func (f *fakeTexts) GetText(ctx context.Context, ref string) (sefaria.TextResult, error) {
	return f.text, f.err
}

type fakeDayLister struct {
	list hebcal.HolidayList
}

func (f *fakeDayLister) HolidaysOnDate(ctx context.Context, t time.Time) (hebcal.HolidayList, error) {
	return f.list, nil
}

type fakeYearLister struct{}

func (fakeYearLister) HolidaysInYear(ctx context.Context, year int) (hebcal.HolidayList, error) {
	return hebcal.HolidayList{}, nil
}

// fakeConverter answers every conversion with one fixed pair.
type fakeConverter struct{}

func (fakeConverter) GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (hebcal.ConvertResult, error) {
	return hebcal.ConvertResult{
		GregorianYear: year, GregorianMonth: int(month), GregorianDay: day,
		HebrewYear: 5784, HebrewMonth: "Sivan", HebrewDay: 24,
		Hebrew: "24 Сивана 5784",
	}, nil
}

func (fakeConverter) HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (hebcal.ConvertResult, error) {
	return hebcal.ConvertResult{
		GregorianYear: 2024, GregorianMonth: 6, GregorianDay: 11,
		HebrewYear: hy, HebrewMonth: hm, HebrewDay: hd,
		Hebrew: "5 Сивана 5784",
	}, nil
}

func newTestService(classifier router.Classifier, completion CompletionClient, texts TextSource) *ChatService {
	return NewChatService(
		router.New(classifier),
		calendar.NewBridge(fakeConverter{}),
		holiday.NewResolver(fakeYearLister{}),
		completion,
		texts,
		&fakeDayLister{},
		func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
	)
}

func TestHandleQuery_DateDiff(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "разница между 2024-01-31 и 2024-03-01")

	assert.Equal(t, "ok", got)
	assert.Contains(t, completion.gotContext, "<b>Разница между датами:</b> 30 дн.")
	assert.Contains(t, completion.gotContext, "2024-01-31 (григ.)")
	assert.Contains(t, completion.gotContext, "2024-03-01 (григ.)")
	assert.Contains(t, completion.gotContext, "Это 0 лет, 1 месяц и 1 день, или 4 недели и 2 дня.")
}

func TestHandleQuery_DiffWithDayWords(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	// no numeric dates, the conjunction-split path kicks in
	got := svc.HandleQuery(context.Background(), "сколько дней прошло? вчера и сегодня")

	assert.Equal(t, "ok", got)
	assert.Contains(t, completion.gotContext, "<b>Разница между датами:</b> 1 дн.")
}

func TestHandleQuery_ConversionWithoutDate(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "конвертируй в еврейский календарь")

	assert.Equal(t, clarifyDateMessage, got)
	assert.Empty(t, completion.gotPrompt, "no completion on unparseable input")
}

func TestHandleQuery_ConversionToHebrew(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "15 июля какой день по еврейски")

	assert.Equal(t, "ok", got)
	assert.Contains(t, completion.gotContext, "<b>Результат конвертации даты:</b>")
	assert.Contains(t, completion.gotContext, "Григорианская дата <b>15.07.2024</b>")
	assert.Contains(t, completion.gotContext, "еврейской дате <b>24 Сивана 5784</b>")
	assert.Contains(t, completion.gotContext, "• Еврейский месяц: Sivan")
}

func TestHandleQuery_ConversionToGregorian(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "5 сиван конвертируй в григорианский")

	assert.Equal(t, "ok", got)
	assert.Contains(t, completion.gotContext, "Еврейская дата <b>5 Sivan 5784</b>")
	assert.Contains(t, completion.gotContext, "григорианской дате <b>11.06.2024</b>")
	assert.Contains(t, completion.gotContext, "• День недели: вторник")
}

func TestHandleQuery_CalendarToday(t *testing.T) {
	completion := &fakeCompletion{answer: "ok"}
	svc := newTestService(&fakeClassifier{}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "какое сегодня число")

	assert.Equal(t, "ok", got)
	assert.Contains(t, completion.gotContext, "<b>Фактическая дата:</b>")
	assert.Contains(t, completion.gotContext, "24 Сивана 5784")
	assert.Contains(t, completion.gotContext, "<b>День недели:</b> суббота")
}

func TestHandleQuery_GeneralGroundsOnSearch(t *testing.T) {
	var text sefaria.TextResult
	require.NoError(t, json.Unmarshal([]byte(`{"ref":"Genesis 1:1","text":"In the beginning"}`), &text))

	completion := &fakeCompletion{answer: "ответ"}
	texts := &fakeTexts{
		hits: []sefaria.SearchHit{{Source: sefaria.HitSource{Ref: "Genesis 1:1"}}},
		text: text,
	}
	svc := newTestService(&fakeClassifier{label: "general"}, completion, texts)

	got := svc.HandleQuery(context.Background(), "вопрос о сотворении мира")

	assert.Equal(t, "ответ", got)
	assert.Contains(t, completion.gotContext, "Релевантные тексты из Sefaria")
	assert.Contains(t, completion.gotContext, "Источник: Genesis 1:1")
	assert.Contains(t, completion.gotContext, "In the beginning")
}

func TestHandleQuery_CompletionFailure(t *testing.T) {
	completion := &fakeCompletion{err: errors.New("upstream down")}
	svc := newTestService(&fakeClassifier{label: "general"}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "любой вопрос")

	assert.Contains(t, got, "не удалось получить ответ")
}

func TestHandleQuery_AnswerSanitized(t *testing.T) {
	completion := &fakeCompletion{answer: "<div><б>Ответ</б></div>"}
	svc := newTestService(&fakeClassifier{label: "general"}, completion, &fakeTexts{})

	got := svc.HandleQuery(context.Background(), "любой вопрос")

	assert.Equal(t, "<b>Ответ</b>", got)
}
