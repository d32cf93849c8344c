package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single rate fetch.
const DefaultTimeout = 10 * time.Second

// ErrNoAPIKey is returned by Fetch when the client has no provider key.
var ErrNoAPIKey = errors.New("exchange rate API key not configured")

// Client fetches rates from an exchangerate-api v6 compatible endpoint:
// GET {baseURL}/{apiKey}/latest/EUR.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a Client. A non-positive timeout means DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Fetch returns the provider's conversion rates against the pivot.
func (c *Client) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("currency.Client.Fetch: %w", ErrNoAPIKey)
	}
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, Pivot)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("currency.Client.Fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency.Client.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("currency.Client.Fetch: unexpected status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("currency.Client.Fetch: decode: %w", err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("currency.Client.Fetch: provider error %q", body.ErrorType)
	}
	return body.ConversionRates, nil
}
