package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"omnimarket/internal/market"

	"go.uber.org/zap"
)

// StockClient fetches equity quotes one HTTP call per symbol. A per-symbol
// failure omits that symbol from the result; the call as a whole fails only
// when zero symbols succeed.
type StockClient struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewStockClient(name, baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *StockClient {
	return &StockClient{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *StockClient) Name() string { return c.name }

func (c *StockClient) Fetch(ctx context.Context, symbols []string) ([]market.Tick, error) {
	now := time.Now()

	var ticks []market.Tick
	for _, symbol := range symbols {
		quote, err := c.fetchQuote(ctx, symbol)
		if err != nil {
			c.logger.Warn("failed to fetch equity quote",
				zap.String("symbol", symbol), zap.Error(err))
			continue
		}

		ticks = append(ticks, market.Tick{
			Symbol:        symbol,
			Price:         quote.Current,
			Change:        quote.Change,
			ChangePercent: quote.ChangePercent,
			AssetClass:    market.AssetStock,
			LastUpdate:    now,
			Source:        c.name,
		})
	}

	if len(ticks) == 0 {
		return nil, fmt.Errorf("all %d equity quotes failed", len(symbols))
	}

	return ticks, nil
}

func (c *StockClient) fetchQuote(ctx context.Context, symbol string) (*equityQuote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	if c.apiKey != "" {
		endpoint += "&token=" + url.QueryEscape(c.apiKey)
	}

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
		return nil, fmt.Errorf("equity provider error: %s", body)
	}

	var quote equityQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &quote, nil
}
