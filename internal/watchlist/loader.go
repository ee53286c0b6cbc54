package watchlist

import (
	"context"
	"time"

	"omnimarket/pkg/omniapi"

	"go.uber.org/zap"
)

// Loader fetches the user's monitored symbol universe from the backend and
// streams it into a channel.
type Loader struct {
	API     *omniapi.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// LoadSymbols fetches the watchlist and streams each symbol into the
// provided channel. The request is bounded by the loader timeout.
func (l *Loader) LoadSymbols(ch chan<- string) error {
	defer close(ch) // Ensure downstream consumers can exit cleanly

	ctx, cancel := context.WithTimeout(context.Background(), l.Timeout)
	defer cancel()

	symbols, err := l.API.WatchlistSymbols(ctx)
	if err != nil {
		l.Logger.Error("failed to load watchlist symbols", zap.Error(err))
		return err
	}
	l.Logger.Info("loaded watchlist symbols", zap.Int("count", len(symbols)))

	for _, symbol := range symbols {
		select {
		case ch <- symbol:
		case <-ctx.Done():
			l.Logger.Warn("symbol streaming interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		}
	}

	return nil
}
