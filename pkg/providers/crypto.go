package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"omnimarket/internal/market"
)

// cryptoIDTable maps provider-specific asset identifiers to internal symbol
// strings. Identifiers returned by the provider that are not in this table
// are silently dropped from the result.
var cryptoIDTable = map[string]string{
	"bitcoin":     "BTC/USDT",
	"ethereum":    "ETH/USDT",
	"binancecoin": "BNB/USDT",
	"solana":      "SOL/USDT",
	"ripple":      "XRP/USDT",
	"cardano":     "ADA/USDT",
	"dogecoin":    "DOGE/USDT",
	"polkadot":    "DOT/USDT",
}

// CryptoClient fetches spot prices for crypto pairs from a batched public
// price API.
type CryptoClient struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

func NewCryptoClient(name, baseURL string, timeout time.Duration) *CryptoClient {
	return &CryptoClient{
		name:       name,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CryptoClient) Name() string { return c.name }

// Fetch resolves the requested pairs through the provider id table and issues
// a single batched price call. Requested symbols with no known provider id
// are dropped, as are response ids that map to no requested symbol.
func (c *CryptoClient) Fetch(ctx context.Context, symbols []string) ([]market.Tick, error) {
	idBySymbol := make(map[string]string, len(symbols))
	var ids []string
	for id, sym := range cryptoIDTable {
		idBySymbol[sym] = id
	}

	requested := make(map[string]string) // provider id -> requested symbol
	for _, sym := range symbols {
		id, ok := idBySymbol[sym]
		if !ok {
			continue
		}
		if _, dup := requested[id]; dup {
			continue
		}
		requested[id] = sym
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no mappable crypto symbols in %v", symbols)
	}

	endpoint := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_24hr_vol=true",
		c.baseURL,
		url.QueryEscape(strings.Join(ids, ",")),
	)

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
		return nil, fmt.Errorf("crypto provider error: %s", body)
	}

	var prices map[string]simplePriceEntry
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	now := time.Now()
	var ticks []market.Tick
	for _, id := range ids {
		entry, ok := prices[id]
		if !ok {
			continue // provider omitted this id
		}
		ticks = append(ticks, market.Tick{
			Symbol:        requested[id],
			Price:         entry.USD,
			Change:        entry.USD * entry.USDChange / 100,
			ChangePercent: entry.USDChange,
			Volume:        entry.USDVolume,
			AssetClass:    market.AssetCrypto,
			LastUpdate:    now,
			Source:        c.name,
		})
	}

	return ticks, nil
}
