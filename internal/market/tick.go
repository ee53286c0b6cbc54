package market

import "time"

// AssetClass determines which upstream provider and formatting rules apply
// to a symbol.
type AssetClass string

const (
	AssetStock     AssetClass = "stock"
	AssetCrypto    AssetClass = "crypto"
	AssetForex     AssetClass = "forex"
	AssetCommodity AssetClass = "commodity"
)

// Tick is one normalized market-data observation for a symbol. Ticks are
// immutable once constructed; a new poll cycle supersedes the previous tick
// for the same symbol rather than mutating it.
type Tick struct {
	Symbol        string     `json:"symbol"`
	Price         float64    `json:"price"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"changePercent"`
	Volume        float64    `json:"volume,omitempty"`
	AssetClass    AssetClass `json:"assetClass"`
	LastUpdate    time.Time  `json:"lastUpdate"`
	Source        string     `json:"source"` // provenance: upstream provider name or "synthetic"
}
