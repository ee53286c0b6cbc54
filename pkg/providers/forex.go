package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"omnimarket/internal/market"
)

// ForexClient resolves currency pairs against a latest-rates-by-base API.
// Only pairs whose base is the configured reference currency and whose quote
// currency appears in the response are resolved; others are dropped.
type ForexClient struct {
	name       string
	baseURL    string
	refBase    string
	httpClient *http.Client

	mu        sync.Mutex
	prevRates map[string]float64 // last observed rate per quote currency
}

func NewForexClient(name, baseURL, refBase string, timeout time.Duration) *ForexClient {
	return &ForexClient{
		name:       name,
		baseURL:    baseURL,
		refBase:    refBase,
		httpClient: &http.Client{Timeout: timeout},
		prevRates:  make(map[string]float64),
	}
}

func (c *ForexClient) Name() string { return c.name }

func (c *ForexClient) Fetch(ctx context.Context, symbols []string) ([]market.Tick, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s", c.baseURL, c.refBase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("forex provider error: %s", body)
	}

	var rates latestRates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	var ticks []market.Tick
	for _, symbol := range symbols {
		base, quote, ok := strings.Cut(symbol, "/")
		if !ok || base != c.refBase {
			continue
		}
		rate, ok := rates.Rates[quote]
		if !ok {
			continue
		}

		// Change is computed against the previously observed rate; the
		// first observation reports zero change.
		var change, changePercent float64
		if prev, seen := c.prevRates[quote]; seen && prev != 0 {
			change = rate - prev
			changePercent = change / prev * 100
		}
		c.prevRates[quote] = rate

		ticks = append(ticks, market.Tick{
			Symbol:        symbol,
			Price:         rate,
			Change:        change,
			ChangePercent: changePercent,
			AssetClass:    market.AssetForex,
			LastUpdate:    now,
			Source:        c.name,
		})
	}

	return ticks, nil
}
