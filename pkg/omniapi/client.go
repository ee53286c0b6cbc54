// Package omniapi is the client for the first-party OmniMarket backend REST
// API. It issues standard JSON requests against the versioned base path and
// surfaces any non-2xx response as an error carrying the upstream status.
package omniapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const basePath = "/api/v1"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Tickers fetches the full ticker list.
func (c *Client) Tickers(ctx context.Context) ([]Ticker, error) {
	var out []Ticker
	if err := c.do(ctx, http.MethodGet, "/tickers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Klines fetches up to limit candlesticks for a symbol at the given interval.
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	path := fmt.Sprintf("/klines?symbol=%s&interval=%s&limit=%d",
		url.QueryEscape(symbol), url.QueryEscape(interval), limit)

	var out []Kline
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Alerts(ctx context.Context) ([]Alert, error) {
	var out []Alert
	if err := c.do(ctx, http.MethodGet, "/alerts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAlert(ctx context.Context, alert Alert) (*Alert, error) {
	var out Alert
	if err := c.do(ctx, http.MethodPost, "/alerts", alert, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAlert(ctx context.Context, alert Alert) error {
	return c.do(ctx, http.MethodPut, "/alerts/"+url.PathEscape(alert.ID), alert, nil)
}

func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/alerts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/trading/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, order Order) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/trading/orders", order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, accountID string) ([]Order, error) {
	path := "/trading/orders?account=" + url.QueryEscape(accountID)

	var out []Order
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AccountPerformance(ctx context.Context, accountID string) (*Performance, error) {
	var out Performance
	path := "/trading/performance?account=" + url.QueryEscape(accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartAutoTrading enables automated trading for an account.
func (c *Client) StartAutoTrading(ctx context.Context, accountID string) error {
	body := map[string]string{"account": accountID}
	return c.do(ctx, http.MethodPost, "/autotrading/start", body, nil)
}

// StopAutoTrading disables automated trading for an account.
func (c *Client) StopAutoTrading(ctx context.Context, accountID string) error {
	body := map[string]string{"account": accountID}
	return c.do(ctx, http.MethodPost, "/autotrading/stop", body, nil)
}

func (c *Client) Warrants(ctx context.Context) ([]Warrant, error) {
	var out []Warrant
	if err := c.do(ctx, http.MethodGet, "/warrants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchlistSymbols fetches the symbols the user is monitoring.
func (c *Client) WatchlistSymbols(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/user/watchlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
