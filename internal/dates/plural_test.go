package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralDays(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{12, "дней"},
		{14, "дней"},
		{21, "день"},
		{22, "дня"},
		{25, "дней"},
		{100, "дней"},
		{101, "день"},
		{111, "дней"},
		{0, "дней"},
		{-3, "дня"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralDays(tt.n), "n=%d", tt.n)
	}
}

func TestPluralWeeks(t *testing.T) {
	assert.Equal(t, "неделя", PluralWeeks(1))
	assert.Equal(t, "недели", PluralWeeks(3))
	assert.Equal(t, "недель", PluralWeeks(7))
	assert.Equal(t, "недель", PluralWeeks(11))
	assert.Equal(t, "неделя", PluralWeeks(21))
}

func TestPluralMonthsYears(t *testing.T) {
	assert.Equal(t, "месяц", PluralMonths(1))
	assert.Equal(t, "месяца", PluralMonths(2))
	assert.Equal(t, "месяцев", PluralMonths(6))

	assert.Equal(t, "год", PluralYears(1))
	assert.Equal(t, "года", PluralYears(3))
	assert.Equal(t, "лет", PluralYears(10))
}
