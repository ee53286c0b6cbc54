package aggregator

import (
	"context"
	"sync"

	"omnimarket/internal/market"
	"omnimarket/pkg/providers"

	"go.uber.org/zap"
)

// Provider fetches normalized ticks for a bucket of same-class symbols.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbols []string) ([]market.Tick, error)
}

// Aggregator classifies requested symbols by asset class, dispatches to the
// per-class providers concurrently, merges the results, and substitutes
// synthetic data per failed bucket. It also maintains a process-wide
// last-write-wins cache of the most recent tick per symbol.
//
// Construct one Aggregator at startup and pass it by reference; it carries
// no hidden global state.
type Aggregator struct {
	crypto Provider
	stock  Provider
	forex  Provider
	logger *zap.Logger

	cacheMu sync.RWMutex
	cache   map[string]market.Tick
}

func New(crypto, stock, forex Provider, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		crypto: crypto,
		stock:  stock,
		forex:  forex,
		logger: logger,
		cache:  make(map[string]market.Tick),
	}
}

// GetMarketData returns one tick per classifiable symbol, preferring live
// upstream data. Buckets are fetched concurrently; a failure in one bucket
// never aborts the others. If anything escapes the per-bucket guards the
// caller receives fully synthetic data for every requested symbol.
func (a *Aggregator) GetMarketData(ctx context.Context, symbols []string) (ticks []market.Tick) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("aggregation panicked, serving synthetic data", zap.Any("cause", r))
			ticks = providers.SyntheticTicks(symbols, ClassifySymbol)
			a.updateCache(ticks)
		}
	}()

	buckets := Classify(symbols)

	// One result slot per bucket so output keeps the fixed dispatch order
	// regardless of which upstream responds first.
	results := make([][]market.Tick, 3)

	var wg sync.WaitGroup
	dispatch := func(slot int, provider Provider, bucket []string, class market.AssetClass) {
		if len(bucket) == 0 {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[slot] = a.fetchBucket(ctx, provider, bucket, class)
		}()
	}

	dispatch(0, a.crypto, buckets.Crypto, market.AssetCrypto)
	dispatch(1, a.stock, buckets.Stock, market.AssetStock)
	dispatch(2, a.forex, buckets.Forex, market.AssetForex)
	wg.Wait()

	for _, bucket := range results {
		ticks = append(ticks, bucket...)
	}

	a.updateCache(ticks)
	return ticks
}

// fetchBucket fetches one bucket and converts any failure, including a
// panic escaping the provider, into synthetic substitutes for that bucket
// only.
func (a *Aggregator) fetchBucket(ctx context.Context, provider Provider, bucket []string, class market.AssetClass) (ticks []market.Tick) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("provider panicked, substituting synthetic data",
				zap.String("provider", provider.Name()),
				zap.String("assetClass", string(class)),
				zap.Any("cause", r))
			ticks = syntheticBucket(bucket, class)
		}
	}()

	if provider == nil {
		return syntheticBucket(bucket, class)
	}

	ticks, err := provider.Fetch(ctx, bucket)
	if err != nil {
		a.logger.Warn("provider fetch failed, substituting synthetic data",
			zap.String("provider", provider.Name()),
			zap.String("assetClass", string(class)),
			zap.Int("symbols", len(bucket)),
			zap.Error(err))
		return syntheticBucket(bucket, class)
	}
	return ticks
}

func syntheticBucket(bucket []string, class market.AssetClass) []market.Tick {
	ticks := make([]market.Tick, 0, len(bucket))
	for _, symbol := range bucket {
		ticks = append(ticks, providers.SyntheticTick(symbol, class))
	}
	return ticks
}

func (a *Aggregator) updateCache(ticks []market.Tick) {
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	for _, tick := range ticks {
		a.cache[tick.Symbol] = tick
	}
}

// Cached returns the most recent tick observed for the symbol, if any.
func (a *Aggregator) Cached(symbol string) (market.Tick, bool) {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	tick, ok := a.cache[symbol]
	return tick, ok
}

// AllCached returns every cached tick. The result is a copy.
func (a *Aggregator) AllCached() []market.Tick {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()

	ticks := make([]market.Tick, 0, len(a.cache))
	for _, tick := range a.cache {
		ticks = append(ticks, tick)
	}
	return ticks
}
