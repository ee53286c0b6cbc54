package watchlist

import (
	"time"

	"go.uber.org/zap"
)

// DailyRefresher re-runs the watchlist load once at UTC midnight and then
// every 24 hours, so the monitored universe tracks server-side edits.
type DailyRefresher struct {
	Load func() <-chan string
}

// DefaultLoadFn adapts a Loader into the refresher's load function.
func DefaultLoadFn(loader *Loader) func() <-chan string {
	return func() <-chan string {
		symbolCh := make(chan string, 100)

		go func() {
			if err := loader.LoadSymbols(symbolCh); err != nil {
				loader.Logger.Error("watchlist refresh failed", zap.Error(err))
			}
		}()

		return symbolCh
	}
}

// Start schedules the load function to run once immediately, once at the
// next UTC midnight, and then every 24 hours.
func (r *DailyRefresher) Start(proc func(<-chan string)) {
	go func() {
		// Run immediately once at startup
		r.runOnce(proc)

		// Wait until next UTC midnight
		now := time.Now().UTC()
		nextMidnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		time.Sleep(time.Until(nextMidnight))

		// Then run once every 24 hours
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			r.runOnce(proc)
			<-ticker.C
		}
	}()
}

func (r *DailyRefresher) runOnce(proc func(<-chan string)) {
	symbolCh := r.Load()
	proc(symbolCh)
}
