package providers

import (
	"math/rand"
	"time"

	"omnimarket/internal/market"
)

// SourceSynthetic labels ticks generated locally when a live provider call
// fails, so downstream consumers can tell degraded data apart.
const SourceSynthetic = "synthetic"

// syntheticRange bounds the randomized price per asset class.
var syntheticRange = map[market.AssetClass][2]float64{
	market.AssetStock:     {20, 800},
	market.AssetCrypto:    {50, 70000},
	market.AssetForex:     {0.5, 8},
	market.AssetCommodity: {15, 2500},
}

// SyntheticTick builds one deterministic-shape, randomized-value substitute
// tick. The change and percent change always share a sign.
func SyntheticTick(symbol string, class market.AssetClass) market.Tick {
	bounds, ok := syntheticRange[class]
	if !ok {
		bounds = syntheticRange[market.AssetStock]
	}

	price := bounds[0] + rand.Float64()*(bounds[1]-bounds[0])
	changePercent := (rand.Float64() - 0.5) * 10 // -5% .. +5%

	return market.Tick{
		Symbol:        symbol,
		Price:         price,
		Change:        price * changePercent / 100,
		ChangePercent: changePercent,
		Volume:        rand.Float64() * 1e6,
		AssetClass:    class,
		LastUpdate:    time.Now(),
		Source:        SourceSynthetic,
	}
}

// SyntheticTicks builds one substitute tick per symbol, classifying each
// through the provided rule.
func SyntheticTicks(symbols []string, classify func(string) market.AssetClass) []market.Tick {
	ticks := make([]market.Tick, 0, len(symbols))
	for _, symbol := range symbols {
		ticks = append(ticks, SyntheticTick(symbol, classify(symbol)))
	}
	return ticks
}
