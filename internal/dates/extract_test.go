package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract_RelativeOffsets(t *testing.T) {
	anchor := day(2024, time.January, 1)

	tests := []struct {
		name  string
		query string
		want  time.Time
	}{
		{"russian days future", "встретимся через 3 дня", day(2024, time.January, 4)},
		{"russian days past", "что было 2 дня назад", day(2023, time.December, 30)},
		{"russian weeks", "через 2 недели будет праздник", day(2024, time.January, 15)},
		{"english days", "in 5 days", day(2024, time.January, 6)},
		{"english weeks not days", "in 2 weeks", day(2024, time.January, 15)},
		{"english ago", "3 days ago", day(2023, time.December, 29)},
		{"hebrew days", "בעוד 2 ימים", day(2024, time.January, 3)},
		{"bare offset defaults to days", "через 5", day(2024, time.January, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.query, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_DayWords(t *testing.T) {
	anchor := day(2024, time.March, 10)

	tests := []struct {
		query string
		want  time.Time
	}{
		{"что будет завтра", day(2024, time.March, 11)},
		{"а послезавтра?", day(2024, time.March, 12)},
		{"вчера", day(2024, time.March, 9)},
		{"позавчера было", day(2024, time.March, 8)},
		{"какой сегодня день", day(2024, time.March, 10)},
		{"tomorrow", day(2024, time.March, 11)},
		{"מחר", day(2024, time.March, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := Extract(tt.query, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_AbsoluteDates(t *testing.T) {
	anchor := day(2024, time.January, 1)

	tests := []struct {
		name  string
		query string
		want  time.Time
	}{
		{"iso date", "что было 2024-03-01", day(2024, time.March, 1)},
		{"dotted date", "дата 2024.03.05", day(2024, time.March, 5)},
		{"day and russian month", "15 июля какой день", day(2024, time.July, 15)},
		{"declined month", "что будет 1 января", day(2024, time.January, 1)},
		{"explicit year wins over anchor", "12 декабря 2025", day(2025, time.December, 12)},
		{"english month", "15 july", day(2024, time.July, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.query, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAbsolute_RejectsInvalidDates(t *testing.T) {
	anchor := day(2024, time.January, 1)

	for _, query := range []string{
		"2023-13-05",
		"2024-02-30",
		"просто текст без даты",
	} {
		_, ok := ExtractAbsolute(query, anchor)
		assert.False(t, ok, "query %q", query)
	}
}

func TestExtract_MonthEndClipping(t *testing.T) {
	anchor := day(2024, time.January, 31)

	got, ok := Extract("через 1 месяц", anchor)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.February, 29), got)

	got, ok = Extract("через 1 год", day(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, day(2025, time.February, 28), got)
}

func TestExtract_BareOffsetBlockedByUnitWords(t *testing.T) {
	anchor := day(2024, time.January, 1)

	// "через 2 недели" has a unit, must not resolve as 2 days
	got, ok := Extract("через 2 недели", anchor)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.January, 15), got)
}

func TestExtract_ExplicitPastStaysPast(t *testing.T) {
	// Saturday
	anchor := day(2024, time.June, 1)

	tests := []struct {
		query string
		want  time.Time
	}{
		{"last friday", day(2024, time.May, 31)},
		{"в прошлую пятницу", day(2024, time.May, 31)},
		{"прошлый понедельник", day(2024, time.May, 27)},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := Extract(tt.query, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Before(anchor), "a named past weekday must not be pushed forward")
		})
	}
}

func TestExtract_NoDate(t *testing.T) {
	_, ok := Extract("", day(2024, time.January, 1))
	assert.False(t, ok)
}

func TestExtractAllNumeric(t *testing.T) {
	got := ExtractAllNumeric("с 2024-01-31 по 2024-03-01")
	require.Len(t, got, 2)
	assert.Equal(t, day(2024, time.January, 31), got[0])
	assert.Equal(t, day(2024, time.March, 1), got[1])

	assert.Empty(t, ExtractAllNumeric("без дат"))
	// the invalid one is skipped, not returned
	assert.Len(t, ExtractAllNumeric("2024-02-30 и 2024-03-01"), 1)
}
