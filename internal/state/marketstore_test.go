package state

import (
	"testing"
	"time"

	"omnimarket/internal/market"
)

// go test -v --run TestMarketStoreTickReplacement
func TestMarketStoreTickReplacement(t *testing.T) {
	s := NewMarketStore()

	s.SetTick(market.Tick{Symbol: "AAPL", Price: 100})
	s.SetTick(market.Tick{Symbol: "AAPL", Price: 110})

	tick, ok := s.Tick("AAPL")
	if !ok {
		t.Fatal("expected AAPL tick")
	}
	if tick.Price != 110 {
		t.Errorf("price = %f, want the latest write 110", tick.Price)
	}

	if _, ok := s.Tick("TSLA"); ok {
		t.Error("did not expect a TSLA tick")
	}
}

// go test -v --run TestMarketStoreSetTicksBatch
func TestMarketStoreSetTicksBatch(t *testing.T) {
	s := NewMarketStore()

	s.SetTicks([]market.Tick{
		{Symbol: "AAPL", Price: 100},
		{Symbol: "BTC/USDT", Price: 65000},
	})

	if got := len(s.AllTicks()); got != 2 {
		t.Fatalf("expected 2 ticks, got %d", got)
	}
}

// go test -v --run TestMarketStoreKlinesCopied
func TestMarketStoreKlinesCopied(t *testing.T) {
	s := NewMarketStore()

	input := []market.Kline{{Open: 1, Close: 2}}
	s.SetKlines("AAPL", input)

	// Mutating the caller's slice must not leak into the store.
	input[0].Close = 999
	if got := s.Klines("AAPL"); got[0].Close != 2 {
		t.Errorf("stored kline mutated through caller slice: close = %f", got[0].Close)
	}

	// Mutating a returned slice must not leak back either.
	out := s.Klines("AAPL")
	out[0].Open = 999
	if got := s.Klines("AAPL"); got[0].Open != 1 {
		t.Errorf("stored kline mutated through returned slice: open = %f", got[0].Open)
	}

	if s.Klines("UNSEEN") != nil {
		t.Error("expected nil for unseen symbol")
	}
}

// go test -v --run TestMarketStoreSubscriptions
func TestMarketStoreSubscriptions(t *testing.T) {
	s := NewMarketStore()

	s.Subscribe("AAPL")
	s.Subscribe("AAPL") // idempotent
	s.Subscribe("TSLA")

	if got := len(s.Subscribed()); got != 2 {
		t.Fatalf("expected 2 subscribed symbols, got %d", got)
	}

	s.Unsubscribe("AAPL")
	subscribed := s.Subscribed()
	if len(subscribed) != 1 || subscribed[0] != "TSLA" {
		t.Errorf("expected only TSLA, got %v", subscribed)
	}
}

// go test -v --run TestMarketStoreLoadingAndErrors
func TestMarketStoreLoadingAndErrors(t *testing.T) {
	s := NewMarketStore()

	s.SetLoading("klines:AAPL", true)
	if !s.Loading("klines:AAPL") {
		t.Error("expected loading flag set")
	}
	s.SetLoading("klines:AAPL", false)
	if s.Loading("klines:AAPL") {
		t.Error("expected loading flag cleared")
	}

	s.SetError("klines:AAPL", "timeout")
	if message, ok := s.Error("klines:AAPL"); !ok || message != "timeout" {
		t.Errorf("error = %q ok=%v", message, ok)
	}

	// Empty message clears the entry.
	s.SetError("klines:AAPL", "")
	if _, ok := s.Error("klines:AAPL"); ok {
		t.Error("expected error cleared by empty message")
	}
}

// go test -v --run TestMarketStoreTickTimestampPreserved
func TestMarketStoreTickTimestampPreserved(t *testing.T) {
	s := NewMarketStore()

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.SetTick(market.Tick{Symbol: "AAPL", Price: 100, LastUpdate: at})

	tick, _ := s.Tick("AAPL")
	if !tick.LastUpdate.Equal(at) {
		t.Errorf("lastUpdate = %v, want %v", tick.LastUpdate, at)
	}
}
