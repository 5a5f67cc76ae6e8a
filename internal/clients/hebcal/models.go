package hebcal

import (
	"strings"
	"time"
)

// ConvertResult is the converter endpoint response, for both directions.
// A non-empty Error means the service rejected the request.
type ConvertResult struct {
	GregorianYear  int    `json:"gy"`
	GregorianMonth int    `json:"gm"`
	GregorianDay   int    `json:"gd"`
	HebrewYear     int    `json:"hy"`
	HebrewMonth    string `json:"hm"`
	HebrewDay      int    `json:"hd"`
	Hebrew         string `json:"hebrew"`
	Error          string `json:"error,omitempty"`
}

// HolidayItem is one calendar entry from the holidays feed.
type HolidayItem struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Hebrew      string `json:"hebrew"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ParseDate parses the item's date, which may carry a time suffix.
func (h HolidayItem) ParseDate() (time.Time, error) {
	s := h.Date
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

// TitleMatches reports whether the item's title contains any of the aliases
// (case-insensitive).
func (h HolidayItem) TitleMatches(aliases []string) bool {
	title := strings.ToLower(h.Title)
	for _, a := range aliases {
		if strings.Contains(title, a) {
			return true
		}
	}
	return false
}

// HolidayList is the holidays feed response. Unknown years come back with an
// empty item list, not an error.
type HolidayList struct {
	Title string        `json:"title"`
	Items []HolidayItem `json:"items"`
	Error string        `json:"error,omitempty"`
}
