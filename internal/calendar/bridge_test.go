package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/domain"
)

// stubConverter answers from a fixed table and records the month it was
// asked for.
type stubConverter struct {
	g2h       map[string]hebcal.ConvertResult
	h2g       map[string]hebcal.ConvertResult
	err       error
	lastMonth string
}

func (s *stubConverter) GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (hebcal.ConvertResult, error) {
	if s.err != nil {
		return hebcal.ConvertResult{}, s.err
	}
	key := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	return s.g2h[key], nil
}

func (s *stubConverter) HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (hebcal.ConvertResult, error) {
	if s.err != nil {
		return hebcal.ConvertResult{}, s.err
	}
	s.lastMonth = hm
	return s.h2g[hm], nil
}

func TestBridgeToHebrew(t *testing.T) {
	conv := &stubConverter{
		g2h: map[string]hebcal.ConvertResult{
			"2024-07-15": {
				GregorianYear: 2024, GregorianMonth: 7, GregorianDay: 15,
				HebrewYear: 5784, HebrewMonth: "Tamuz", HebrewDay: 9,
				Hebrew: "9 Тамуза 5784",
			},
		},
	}
	bridge := NewBridge(conv)

	got, err := bridge.ToHebrew(context.Background(), time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, domain.GregorianDate{Year: 2024, Month: time.July, Day: 15}, got.Gregorian)
	assert.Equal(t, domain.HebrewDate{Year: 5784, Month: "Tamuz", Day: 9}, got.Hebrew)
	assert.Equal(t, "9 Тамуза 5784", got.HebrewLabel)
	assert.Equal(t, "понедельник", got.Weekday)
}

func TestBridgeRoundTrip(t *testing.T) {
	// one coherent conversion pair serves both directions
	pair := hebcal.ConvertResult{
		GregorianYear: 2024, GregorianMonth: 6, GregorianDay: 11,
		HebrewYear: 5784, HebrewMonth: "Sivan", HebrewDay: 5,
		Hebrew: "5 Сивана 5784",
	}
	conv := &stubConverter{
		g2h: map[string]hebcal.ConvertResult{"2024-06-11": pair},
		h2g: map[string]hebcal.ConvertResult{"Sivan": pair},
	}
	bridge := NewBridge(conv)

	d := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)
	heb, err := bridge.ToHebrew(context.Background(), d)
	require.NoError(t, err)

	back, err := bridge.ToGregorian(context.Background(), heb.Hebrew)
	require.NoError(t, err)

	assert.Equal(t, heb.Gregorian, back.Gregorian)
	assert.Equal(t, d, back.Gregorian.Time())
	assert.Equal(t, heb.Hebrew, back.Hebrew)
}

func TestBridgeToHebrew_ConverterError(t *testing.T) {
	bridge := NewBridge(&stubConverter{err: errors.New("boom")})

	_, err := bridge.ToHebrew(context.Background(), time.Now())
	assert.ErrorContains(t, err, "convert to hebrew")
}

func TestBridgeToGregorian(t *testing.T) {
	conv := &stubConverter{
		h2g: map[string]hebcal.ConvertResult{
			"Sivan": {
				GregorianYear: 2024, GregorianMonth: 6, GregorianDay: 11,
				HebrewYear: 5784, HebrewMonth: "Sivan", HebrewDay: 5,
				Hebrew: "5 Сивана 5784",
			},
		},
	}
	bridge := NewBridge(conv)

	// month spelling is normalized before hitting the converter
	got, err := bridge.ToGregorian(context.Background(), domain.HebrewDate{Year: 5784, Month: "sivan", Day: 5})
	require.NoError(t, err)

	assert.Equal(t, "Sivan", conv.lastMonth)
	assert.Equal(t, domain.GregorianDate{Year: 2024, Month: time.June, Day: 11}, got.Gregorian)
	assert.Equal(t, "вторник", got.Weekday)
	assert.Equal(t, "5 Сивана 5784", got.HebrewLabel)
}

func TestBridgeToGregorian_MissingFields(t *testing.T) {
	bridge := NewBridge(&stubConverter{})

	tests := []struct {
		name string
		in   domain.HebrewDate
		want string
	}{
		{"all missing", domain.HebrewDate{}, "missing required fields: year, month, day"},
		{"month only", domain.HebrewDate{Year: 5784, Day: 5}, "missing required fields: month"},
		{"year and day", domain.HebrewDate{Month: "Sivan"}, "missing required fields: year, day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bridge.ToGregorian(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var mf *MissingFieldsError
			assert.ErrorAs(t, err, &mf)
		})
	}
}

func TestWeekdayRu(t *testing.T) {
	assert.Equal(t, "воскресенье", WeekdayRu(time.Sunday))
	assert.Equal(t, "суббота", WeekdayRu(time.Saturday))
}
