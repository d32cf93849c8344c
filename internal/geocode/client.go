// Package geocode turns free-text place names into coordinates using a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MinQueryLength is the shortest query that is sent upstream.
const MinQueryLength = 2

const (
	defaultLimit   = 5
	defaultTimeout = 10 * time.Second
	userAgent      = "travelbook/1.0"
)

// Suggestion is one search result.
type Suggestion struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Client queries GET {baseURL}/search?q=...&format=json&limit=5.
type Client struct {
	baseURL  string
	language string
	http     *http.Client
}

// NewClient constructs a Client. language is sent as Accept-Language.
func NewClient(baseURL, language string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		http:     &http.Client{Timeout: timeout},
	}
}

type place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to five suggestions. Queries shorter than
// MinQueryLength return nothing without a request.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []Suggestion{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(defaultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode.Client.Search: unexpected status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: decode: %w", err)
	}

	out := make([]Suggestion, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		out = append(out, Suggestion{Name: p.DisplayName, Lat: lat, Lon: lon})
	}
	return out, nil
}
