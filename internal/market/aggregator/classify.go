package aggregator

import (
	"strings"

	"omnimarket/internal/market"
)

// fiatCodes are the currency codes recognized on both sides of a forex pair.
var fiatCodes = map[string]bool{
	"USD": true,
	"CNY": true,
	"EUR": true,
	"JPY": true,
	"GBP": true,
	"HKD": true,
	"CHF": true,
	"AUD": true,
	"CAD": true,
}

// ClassifySymbol routes a symbol to its asset class. A slash-separated pair
// whose base and quote are both fiat codes is forex ("USD/CNY"); any other
// pair is crypto ("BTC/USDT"); a symbol without a slash is an equity ("AAPL").
func ClassifySymbol(symbol string) market.AssetClass {
	base, quote, ok := strings.Cut(symbol, "/")
	if !ok {
		return market.AssetStock
	}
	if fiatCodes[base] && fiatCodes[quote] {
		return market.AssetForex
	}
	return market.AssetCrypto
}

// Buckets holds the requested symbols partitioned by asset class, in the
// fixed dispatch order crypto, stock, forex.
type Buckets struct {
	Crypto []string
	Stock  []string
	Forex  []string
}

// Classify partitions symbols into disjoint per-class buckets. Within each
// bucket the input order is preserved.
func Classify(symbols []string) Buckets {
	var b Buckets
	for _, symbol := range symbols {
		switch ClassifySymbol(symbol) {
		case market.AssetCrypto:
			b.Crypto = append(b.Crypto, symbol)
		case market.AssetForex:
			b.Forex = append(b.Forex, symbol)
		default:
			b.Stock = append(b.Stock, symbol)
		}
	}
	return b
}
