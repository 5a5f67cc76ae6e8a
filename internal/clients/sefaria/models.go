package sefaria

import (
	"encoding/json"
	"strings"
)

// SearchHit is one result from the search-wrapper endpoint.
type SearchHit struct {
	Source HitSource `json:"_source"`
}

// HitSource carries the fields this system reads from a hit.
type HitSource struct {
	Ref   string `json:"ref"`
	Title string `json:"title"`
}

// searchResponse mirrors the Elasticsearch-shaped wrapper response.
type searchResponse struct {
	Hits struct {
		Hits []SearchHit `json:"hits"`
	} `json:"hits"`
}

// TextResult is a text fetched by reference. The service returns Text either
// as a single string or as a (possibly nested) list of verse strings.
type TextResult struct {
	Ref    string      `json:"ref"`
	HeRef  string      `json:"heRef"`
	Text   TextContent `json:"text"`
	HeText TextContent `json:"he"`
}

// TextContent accepts both the string and the list-of-strings shapes.
type TextContent struct {
	lines []string
}

func (t *TextContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.lines = []string{s}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// unexpected shape, treat as empty rather than failing the fetch
		t.lines = nil
		return nil
	}
	t.lines = nil
	for _, r := range raw {
		var nested TextContent
		if err := nested.UnmarshalJSON(r); err == nil {
			t.lines = append(t.lines, nested.lines...)
		}
	}
	return nil
}

// IsEmpty reports whether any text was present.
func (t TextContent) IsEmpty() bool {
	return len(t.lines) == 0
}

// Join flattens the text into a single newline-separated string.
func (t TextContent) Join() string {
	return strings.Join(t.lines, "\n")
}
