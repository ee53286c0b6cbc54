package warrants

import "encoding/json"

// Message types pushed by the warrants monitoring endpoint.
const (
	TypeWarrantUpdate  = "warrant_update"
	TypeAlertTriggered = "alert_triggered"
	TypeTradingSignal  = "trading_signal"
)

// envelope is the outer shape of every push; the Type field selects the
// payload shape.
type envelope struct {
	Type   string          `json:"type"`
	Symbol string          `json:"symbol"`
	Data   json.RawMessage `json:"data"`
}

// WarrantUpdate is a price/premium refresh for one monitored warrant.
type WarrantUpdate struct {
	Code    string  `json:"code"`
	Price   float64 `json:"price"`
	Premium float64 `json:"premium"`
	Gearing float64 `json:"gearing"`
}

// AlertTriggered reports a server-side alert firing.
type AlertTriggered struct {
	AlertID string  `json:"alertId"`
	Price   float64 `json:"price"`
	At      int64   `json:"at"` // milliseconds since epoch
}

// TradingSignal is an automated-strategy signal push.
type TradingSignal struct {
	Strategy string  `json:"strategy"`
	Side     string  `json:"side"`
	Price    float64 `json:"price"`
}
