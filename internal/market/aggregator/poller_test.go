package aggregator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"omnimarket/internal/market"
)

// go test -v --run TestStartUpdatesImmediateFirstCallback
func TestStartUpdatesImmediateFirstCallback(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)

	got := make(chan []market.Tick, 1)
	stop := agg.StartUpdates(context.Background(), func(ticks []market.Tick) {
		select {
		case got <- ticks:
		default:
		}
	}, StaticSymbols([]string{"AAPL"}), time.Hour)
	defer stop()

	select {
	case ticks := <-got:
		if len(ticks) != 1 {
			t.Fatalf("expected 1 tick in first callback, got %d", len(ticks))
		}
	case <-time.After(time.Second):
		t.Fatal("first callback did not arrive before the first timer tick")
	}
}

// go test -v --run TestStartUpdatesStopPreventsFurtherCallbacks
func TestStartUpdatesStopPreventsFurtherCallbacks(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)

	var calls atomic.Int32
	stop := agg.StartUpdates(context.Background(), func([]market.Tick) {
		calls.Add(1)
	}, StaticSymbols([]string{"AAPL"}), 20*time.Millisecond)

	// Wait for the immediate first cycle, then stop before the next tick.
	time.Sleep(5 * time.Millisecond)
	stop()
	stop() // stopping twice is safe

	settled := calls.Load()
	time.Sleep(100 * time.Millisecond)

	if calls.Load() != settled {
		t.Errorf("callbacks continued after stop: %d -> %d", settled, calls.Load())
	}
	if settled < 1 {
		t.Errorf("expected at least the immediate callback, got %d", settled)
	}
}

// go test -v --run TestStartUpdatesIndependentLoops
func TestStartUpdatesIndependentLoops(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)

	var first, second atomic.Int32
	stop1 := agg.StartUpdates(context.Background(), func([]market.Tick) { first.Add(1) },
		StaticSymbols([]string{"AAPL"}), 10*time.Millisecond)
	stop2 := agg.StartUpdates(context.Background(), func([]market.Tick) { second.Add(1) },
		StaticSymbols([]string{"AAPL"}), 10*time.Millisecond)

	time.Sleep(35 * time.Millisecond)
	stop1()

	time.Sleep(35 * time.Millisecond)
	stop2()

	if first.Load() == 0 || second.Load() == 0 {
		t.Fatal("expected both loops to run")
	}
	if second.Load() <= first.Load() {
		t.Errorf("expected the surviving loop to keep polling: first=%d second=%d",
			first.Load(), second.Load())
	}
}

// go test -v --run TestStartUpdatesResolvesSymbolsPerCycle
func TestStartUpdatesResolvesSymbolsPerCycle(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)

	var mu sync.Mutex
	universe := []string{"AAPL"}

	got := make(chan int, 32)
	stop := agg.StartUpdates(context.Background(), func(ticks []market.Tick) {
		got <- len(ticks)
	}, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return universe
	}, 10*time.Millisecond)
	defer stop()

	// First cycle sees the initial universe.
	select {
	case n := <-got:
		if n != 1 {
			t.Fatalf("first cycle polled %d symbols, want 1", n)
		}
	case <-time.After(time.Second):
		t.Fatal("no first callback")
	}

	// Grow the universe; a later cycle must pick it up without a restart.
	mu.Lock()
	universe = []string{"AAPL", "BTC/USDT", "USD/CNY"}
	mu.Unlock()

	deadline := time.After(time.Second)
	for {
		select {
		case n := <-got:
			if n == 3 {
				return
			}
		case <-deadline:
			t.Fatal("poller never observed the grown symbol set")
		}
	}
}

// go test -v --run TestStartUpdatesNonPositiveIntervalDefaults
func TestStartUpdatesNonPositiveIntervalDefaults(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)

	// A zero interval must not panic the ticker; the loop falls back to the
	// default and still delivers the immediate first callback.
	got := make(chan struct{}, 1)
	stop := agg.StartUpdates(context.Background(), func([]market.Tick) {
		select {
		case got <- struct{}{}:
		default:
		}
	}, StaticSymbols([]string{"AAPL"}), 0)
	defer stop()

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("no callback with a zero configured interval")
	}
}
