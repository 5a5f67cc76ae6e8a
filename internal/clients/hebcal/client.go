package hebcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Hebcal endpoints
	DefaultCalendarURL  = "https://www.hebcal.com/hebcal"
	DefaultConverterURL = "https://www.hebcal.com/converter"
)

// Client is the HTTP client for the Hebcal calendar and converter API.
// It does no calendar arithmetic of its own; leap months and month lengths
// are entirely the service's business.
type Client struct {
	calendarURL  string
	converterURL string
	lang         string
	httpClient   *http.Client
	log          *logrus.Entry
}

// NewClient creates a new Hebcal API client. lang selects the language of
// transliterated labels ("ru", "en", "he").
func NewClient(lang string) *Client {
	if lang == "" {
		lang = "ru"
	}
	return &Client{
		calendarURL:  DefaultCalendarURL,
		converterURL: DefaultConverterURL,
		lang:         lang,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: logrus.WithField("component", "hebcal"),
	}
}

// defaultParams returns the parameters added to every request.
func (c *Client) defaultParams() url.Values {
	params := url.Values{}
	params.Set("cfg", "json")
	params.Set("lg", c.lang)
	return params
}

// GregorianToHebrew converts a Gregorian date to its Hebrew counterpart.
func (c *Client) GregorianToHebrew(ctx context.Context, year int, month time.Month, day int) (ConvertResult, error) {
	params := c.defaultParams()
	params.Set("gy", strconv.Itoa(year))
	params.Set("gm", strconv.Itoa(int(month)))
	params.Set("gd", strconv.Itoa(day))
	params.Set("g2h", "1")

	var result ConvertResult
	if err := c.getJSON(ctx, c.converterURL, params, &result); err != nil {
		return ConvertResult{}, err
	}
	if result.Error != "" {
		return ConvertResult{}, fmt.Errorf("converter: %s", result.Error)
	}
	return result, nil
}

// HebrewToGregorian converts a Hebrew date to its Gregorian counterpart.
// The month name is normalized to its canonical spelling before the call.
func (c *Client) HebrewToGregorian(ctx context.Context, hy int, hm string, hd int) (ConvertResult, error) {
	normalized := NormalizeMonth(hm)
	if normalized != hm {
		c.log.WithFields(logrus.Fields{"from": hm, "to": normalized}).Info("normalized hebrew month")
	}

	params := c.defaultParams()
	params.Set("hy", strconv.Itoa(hy))
	params.Set("hm", normalized)
	params.Set("hd", strconv.Itoa(hd))
	params.Set("h2g", "1")

	var result ConvertResult
	if err := c.getJSON(ctx, c.converterURL, params, &result); err != nil {
		return ConvertResult{}, err
	}
	if result.Error != "" {
		return ConvertResult{}, fmt.Errorf("converter: %s", result.Error)
	}
	return result, nil
}

// HolidaysOnDate returns holidays and events falling on a single date.
func (c *Client) HolidaysOnDate(ctx context.Context, t time.Time) (HolidayList, error) {
	params := c.defaultParams()
	params.Set("v", "1")
	params.Set("maj", "on")
	params.Set("min", "on")
	params.Set("year", strconv.Itoa(t.Year()))
	params.Set("month", strconv.Itoa(int(t.Month())))
	params.Set("day", strconv.Itoa(t.Day()))

	var list HolidayList
	if err := c.getJSON(ctx, c.calendarURL, params, &list); err != nil {
		return HolidayList{}, err
	}
	return list, nil
}

// HolidaysInYear returns the full holiday list for a Gregorian year.
// Unknown years come back as an empty list.
func (c *Client) HolidaysInYear(ctx context.Context, year int) (HolidayList, error) {
	params := c.defaultParams()
	params.Set("v", "1")
	params.Set("maj", "on")
	params.Set("min", "on")
	params.Set("year", strconv.Itoa(year))

	var list HolidayList
	if err := c.getJSON(ctx, c.calendarURL, params, &list); err != nil {
		return HolidayList{}, err
	}
	return list, nil
}

// getJSON performs a GET request and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", rawURL).Error("hebcal request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.log.WithField("status", resp.StatusCode).Error("hebcal error response")
		return fmt.Errorf("hebcal error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
