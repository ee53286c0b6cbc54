package aggregator

import (
	"context"
	"sync"
	"time"

	"omnimarket/internal/market"
)

// DefaultPollInterval is used when the configured interval is missing or
// non-positive.
const DefaultPollInterval = 5 * time.Second

// StartUpdates fetches once immediately so subscribers get a first paint
// without waiting a full interval, then repeats the fetch-and-callback cycle
// on a fixed timer. The symbol set is resolved through the symbols function
// at the start of every cycle, so the monitored universe can change between
// ticks. The returned stop function cancels the timer; no further cycles
// start after it is called, though a fetch already in flight may still
// deliver one final callback.
//
// Each call is fully independent: N subscribers produce N polling loops
// against the same symbol source.
func (a *Aggregator) StartUpdates(ctx context.Context, cb func([]market.Tick), symbols func() []string, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			cb(a.GetMarketData(ctx, symbols()))

			// A stop issued while a fetch was in flight wins over a
			// pending tick, so at most that one callback fires after
			// cancellation.
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
			}

			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// StaticSymbols adapts a fixed symbol list into a symbol source.
func StaticSymbols(symbols []string) func() []string {
	return func() []string { return symbols }
}
