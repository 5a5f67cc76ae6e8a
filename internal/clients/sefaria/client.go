package sefaria

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Sefaria API root.
const DefaultBaseURL = "https://www.sefaria.org/api"

// Client is the HTTP client for the Sefaria text library.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a new Sefaria API client.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: logrus.WithField("component", "sefaria"),
	}
}

// searchRequest is the search-wrapper payload.
type searchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
	Field string `json:"field"`
	Slop  int    `json:"slop"`
	Start int    `json:"start"`
	Size  int    `json:"size"`
}

// Search runs a full-text search and returns the ranked hits. A transport
// failure is logged and surfaced as an empty result set: text grounding is
// best-effort and must not take the response pipeline down with it.
func (c *Client) Search(ctx context.Context, query string, limit int) []SearchHit {
	if limit <= 0 {
		limit = 10
	}
	payload, err := json.Marshal(searchRequest{
		Query: query,
		Type:  "text",
		Field: "exact",
		Size:  limit,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search-wrapper", bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Error("sefaria search failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.log.WithField("status", resp.StatusCode).Error("sefaria search error response")
		return nil
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.WithError(err).Error("sefaria search decode failed")
		return nil
	}
	return result.Hits.Hits
}

// GetTextByRef fetches a text and flattens it to a single string, the shape
// the web API serves.
func (c *Client) GetTextByRef(ctx context.Context, ref string) (string, error) {
	result, err := c.GetText(ctx, ref)
	if err != nil {
		return "", err
	}
	return result.Text.Join(), nil
}

// GetText fetches a text by its Sefaria reference.
func (c *Client) GetText(ctx context.Context, ref string) (TextResult, error) {
	// refs use spaces and colons, the texts endpoint wants the tref form
	tref := strings.ReplaceAll(ref, " ", "_")
	tref = strings.ReplaceAll(tref, ":", ".")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/texts/"+url.PathEscape(tref), nil)
	if err != nil {
		return TextResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("ref", ref).Error("sefaria text fetch failed")
		return TextResult{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TextResult{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return TextResult{}, fmt.Errorf("sefaria error %d: %s", resp.StatusCode, string(body))
	}

	var result TextResult
	if err := json.Unmarshal(body, &result); err != nil {
		return TextResult{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}
