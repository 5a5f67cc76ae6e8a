// Package scheduler sends the morning digest: today's Hebrew date, weekday
// and holidays, delivered to every subscribed chat.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"sefariabot/config"
	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/storage"
)

type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// DayLister serves the holiday feed for one specific date.
type DayLister interface {
	HolidaysOnDate(ctx context.Context, t time.Time) (hebcal.HolidayList, error)
}

type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	store    *storage.Storage
	bridge   *calendar.Bridge
	holidays DayLister
	sender   MessageSender
	log      *logrus.Entry
}

func New(cfg *config.Config, store *storage.Storage, bridge *calendar.Bridge, holidays DayLister) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Timezone))

	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		store:    store,
		bridge:   bridge,
		holidays: holidays,
		log:      logrus.WithField("component", "scheduler"),
	}
}

func (s *Scheduler) SetSender(sender MessageSender) {
	s.sender = sender
}

func (s *Scheduler) Start(ctx context.Context) error {
	digestSpec := fmt.Sprintf("0 %s * * *", s.cfg.DigestHour)
	if _, err := s.cron.AddFunc(digestSpec, s.morningDigest); err != nil {
		return fmt.Errorf("add morning digest: %w", err)
	}

	s.cron.Start()
	s.log.WithFields(logrus.Fields{
		"tz":   s.cfg.Timezone.String(),
		"hour": s.cfg.DigestHour,
	}).Info("scheduler started")

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) morningDigest() {
	if s.sender == nil {
		return
	}

	subscribers, err := s.store.ListSubscribers()
	if err != nil {
		s.log.WithError(err).Error("failed to list subscribers")
		return
	}
	if len(subscribers) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	text, err := s.buildDigest(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to build digest")
		return
	}

	for _, chatID := range subscribers {
		if err := s.sender.SendMessage(chatID, text); err != nil {
			s.log.WithError(err).WithField("chat_id", chatID).Error("failed to send digest")
		}
	}
}

// buildDigest formats today's calendar facts as a Telegram HTML message.
func (s *Scheduler) buildDigest(ctx context.Context) (string, error) {
	now := time.Now().In(s.cfg.Timezone)

	cal, err := s.bridge.ToHebrew(ctx, now)
	if err != nil {
		return "", fmt.Errorf("convert today: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "☀️ <b>Доброе утро!</b>\n\n")
	fmt.Fprintf(&b, "Сегодня <b>%s</b> (%s), %s.\n", cal.HebrewLabel, cal.Gregorian, cal.Weekday)

	if list, err := s.holidays.HolidaysOnDate(ctx, now); err == nil && len(list.Items) > 0 {
		b.WriteString("\n<b>Сегодняшние праздники и события:</b>\n")
		for _, item := range list.Items {
			line := "• " + item.Title
			if item.Description != "" {
				line += ": " + item.Description
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
