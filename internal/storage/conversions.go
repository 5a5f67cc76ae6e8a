package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
)

// getConversion looks up a cached conversion by key. A miss returns ok=false.
func (s *Storage) getConversion(key string) (hebcal.ConvertResult, bool, error) {
	var r hebcal.ConvertResult
	err := s.db.QueryRow(
		`SELECT gy, gm, gd, hy, hm, hd, hebrew FROM conversions WHERE key = ?`, key,
	).Scan(&r.GregorianYear, &r.GregorianMonth, &r.GregorianDay,
		&r.HebrewYear, &r.HebrewMonth, &r.HebrewDay, &r.Hebrew)
	if err == sql.ErrNoRows {
		return hebcal.ConvertResult{}, false, nil
	}
	if err != nil {
		return hebcal.ConvertResult{}, false, fmt.Errorf("get conversion: %w", err)
	}
	return r, true, nil
}

func (s *Storage) putConversion(key string, r hebcal.ConvertResult) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO conversions (key, gy, gm, gd, hy, hm, hd, hebrew)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key, r.GregorianYear, r.GregorianMonth, r.GregorianDay,
		r.HebrewYear, r.HebrewMonth, r.HebrewDay, r.Hebrew)
	if err != nil {
		return fmt.Errorf("put conversion: %w", err)
	}
	return nil
}

// CachedConverter is a calendar.Converter that consults the database before
// the network. A date pair never changes once converted, so entries have no
// expiry. Cache failures only cost the round trip; they never fail the
// conversion.
type CachedConverter struct {
	inner calendar.Converter
	store *Storage
	log   *logrus.Entry
}

// NewCachedConverter wraps a converter with the persistent cache.
func NewCachedConverter(inner calendar.Converter, store *Storage) *CachedConverter {
	return &CachedConverter{
		inner: inner,
		store: store,
		log:   logrus.WithField("component", "conversion-cache"),
	}
}

func (c *CachedConverter) GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (hebcal.ConvertResult, error) {
	key := fmt.Sprintf("g:%04d-%02d-%02d", year, int(month), day)
	if r, ok, err := c.store.getConversion(key); err != nil {
		c.log.WithError(err).Warn("cache read failed")
	} else if ok {
		return r, nil
	}

	r, err := c.inner.GregorianToHebrew(ctx, year, month, day)
	if err != nil {
		return r, err
	}
	if err := c.store.putConversion(key, r); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
	return r, nil
}

func (c *CachedConverter) HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (hebcal.ConvertResult, error) {
	key := fmt.Sprintf("h:%d-%s-%d", hy, hm, hd)
	if r, ok, err := c.store.getConversion(key); err != nil {
		c.log.WithError(err).Warn("cache read failed")
	} else if ok {
		return r, nil
	}

	r, err := c.inner.HebrewToGregorian(ctx, hy, hm, hd)
	if err != nil {
		return r, err
	}
	if err := c.store.putConversion(key, r); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
	return r, nil
}
