package hebcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMonth_Variants(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nisan", "Nisan"},
		{"nissan", "Nisan"},
		{"IYAR", "Iyyar"},
		{"tammuz", "Tamuz"},
		{"Tishri", "Tishrei"},
		{"heshvan", "Cheshvan"},
		{"Sh'vat", "Shvat"},
		{"shevat", "Shvat"},
		{"adar i", "Adar I"},
		{"Adar 2", "Adar II"},
		{"av", "Av"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMonth(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeMonth_Idempotent(t *testing.T) {
	for alias := range monthAliases {
		once := NormalizeMonth(alias)
		assert.Equal(t, once, NormalizeMonth(once), "alias %q", alias)
	}
}

func TestNormalizeMonth_UnknownPassesThroughCapitalized(t *testing.T) {
	assert.Equal(t, "Elool", NormalizeMonth("elool"))
	assert.Equal(t, "Foobar", NormalizeMonth("FOOBAR"))
}

func TestHolidayItemParseDate(t *testing.T) {
	item := HolidayItem{Date: "2024-04-23"}
	d, err := item.ParseDate()
	assert.NoError(t, err)
	assert.Equal(t, "2024-04-23", d.Format("2006-01-02"))

	// timed entries carry a suffix
	item = HolidayItem{Date: "2024-04-22T19:04:00+03:00"}
	d, err = item.ParseDate()
	assert.NoError(t, err)
	assert.Equal(t, "2024-04-22", d.Format("2006-01-02"))

	item = HolidayItem{Date: "not a date"}
	_, err = item.ParseDate()
	assert.Error(t, err)
}

func TestHolidayItemTitleMatches(t *testing.T) {
	item := HolidayItem{Title: "Песах I"}
	assert.True(t, item.TitleMatches([]string{"песах", "пейсах"}))
	assert.False(t, item.TitleMatches([]string{"пурим"}))
}
