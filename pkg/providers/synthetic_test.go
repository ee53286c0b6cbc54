package providers

import (
	"testing"

	"omnimarket/internal/market"
)

// go test -v --run TestSyntheticTickShape
func TestSyntheticTickShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		tick := SyntheticTick("BTC/USDT", market.AssetCrypto)

		if tick.Symbol != "BTC/USDT" {
			t.Fatalf("symbol = %q", tick.Symbol)
		}
		if tick.Source != SourceSynthetic {
			t.Fatalf("source = %q, want %q", tick.Source, SourceSynthetic)
		}
		if tick.Price <= 0 {
			t.Fatalf("price must be positive, got %f", tick.Price)
		}
		if tick.Change > 0 && tick.ChangePercent < 0 || tick.Change < 0 && tick.ChangePercent > 0 {
			t.Fatalf("sign mismatch: change=%f changePercent=%f", tick.Change, tick.ChangePercent)
		}
	}
}

// go test -v --run TestSyntheticTicksClassify
func TestSyntheticTicksClassify(t *testing.T) {
	classify := func(symbol string) market.AssetClass {
		if symbol == "AAPL" {
			return market.AssetStock
		}
		return market.AssetCrypto
	}

	ticks := SyntheticTicks([]string{"AAPL", "BTC/USDT"}, classify)
	if len(ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(ticks))
	}
	if ticks[0].AssetClass != market.AssetStock {
		t.Errorf("AAPL class = %q", ticks[0].AssetClass)
	}
	if ticks[1].AssetClass != market.AssetCrypto {
		t.Errorf("BTC/USDT class = %q", ticks[1].AssetClass)
	}

	// Forex prices stay within a plausible band.
	for i := 0; i < 100; i++ {
		tick := SyntheticTick("USD/CNY", market.AssetForex)
		if tick.Price < 0.5 || tick.Price > 8 {
			t.Fatalf("forex synthetic price out of range: %f", tick.Price)
		}
	}
}
