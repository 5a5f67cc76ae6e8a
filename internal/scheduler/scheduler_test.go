package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sefariabot/config"
	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
)

type fakeConverter struct{}

func (fakeConverter) GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (hebcal.ConvertResult, error) {
	return hebcal.ConvertResult{
		GregorianYear: year, GregorianMonth: int(month), GregorianDay: day,
		HebrewYear: 5784, HebrewMonth: "Sivan", HebrewDay: 24,
		Hebrew: "24 Сивана 5784",
	}, nil
}

func (fakeConverter) HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (hebcal.ConvertResult, error) {
	return hebcal.ConvertResult{}, nil
}

type fakeDayLister struct {
	list hebcal.HolidayList
}

func (f *fakeDayLister) HolidaysOnDate(ctx context.Context, t time.Time) (hebcal.HolidayList, error) {
	return f.list, nil
}

func TestBuildDigest(t *testing.T) {
	cfg := &config.Config{Timezone: time.UTC, DigestHour: "8"}
	lister := &fakeDayLister{list: hebcal.HolidayList{Items: []hebcal.HolidayItem{
		{Title: "Шаббат Хазон", Description: "Шаббат перед 9 Ава"},
	}}}
	s := New(cfg, nil, calendar.NewBridge(fakeConverter{}), lister)

	digest, err := s.buildDigest(context.Background())
	require.NoError(t, err)

	assert.Contains(t, digest, "Доброе утро")
	assert.Contains(t, digest, "24 Сивана 5784")
	assert.Contains(t, digest, "• Шаббат Хазон: Шаббат перед 9 Ава")
}

func TestBuildDigest_NoHolidays(t *testing.T) {
	cfg := &config.Config{Timezone: time.UTC, DigestHour: "8"}
	s := New(cfg, nil, calendar.NewBridge(fakeConverter{}), &fakeDayLister{})

	digest, err := s.buildDigest(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, digest, "Сегодняшние праздники")
}
