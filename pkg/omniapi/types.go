package omniapi

import "time"

// Ticker is one instrument row from the backend ticker resource.
type Ticker struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume,omitempty"`
	AssetClass    string  `json:"assetClass"`
}

// Kline is one candlestick row.
type Kline struct {
	Start  int64   `json:"start"` // milliseconds since epoch
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Alert is a server-side alert resource.
type Alert struct {
	ID        string    `json:"id,omitempty"`
	Symbol    string    `json:"symbol"`
	Condition string    `json:"condition"`
	Threshold float64   `json:"threshold"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Account is one virtual-trading account.
type Account struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Equity  float64 `json:"equity"`
}

// Order is one virtual-trading order.
type Order struct {
	ID        string    `json:"id,omitempty"`
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"` // "buy" or "sell"
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price,omitempty"` // zero means market order
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Performance summarizes a virtual-trading account's results.
type Performance struct {
	AccountID   string  `json:"accountId"`
	TotalReturn float64 `json:"totalReturn"`
	WinRate     float64 `json:"winRate"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	TradeCount  int     `json:"tradeCount"`
}

// Warrant is one monitored warrant row.
type Warrant struct {
	Code       string  `json:"code"`
	Underlying string  `json:"underlying"`
	Price      float64 `json:"price"`
	Premium    float64 `json:"premium"`
	Gearing    float64 `json:"gearing"`
	Expiry     string  `json:"expiry"`
}
