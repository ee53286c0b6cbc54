package providers

// simplePriceEntry is one entry of the batched crypto price response,
// keyed by provider asset id.
type simplePriceEntry struct {
	USD       float64 `json:"usd"`        // last price in USD
	USDChange float64 `json:"usd_24h_change"` // 24h change in percent
	USDVolume float64 `json:"usd_24h_vol"`    // 24h traded volume in USD
}

// equityQuote is the per-symbol equity quote payload.
type equityQuote struct {
	Current       float64 `json:"c"`  // current price
	Change        float64 `json:"d"`  // absolute change
	ChangePercent float64 `json:"dp"` // percent change
}

// latestRates is the rates-by-base-currency response.
type latestRates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}
