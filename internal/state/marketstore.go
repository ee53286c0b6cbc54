// Package state holds cross-page shared state so independently-mounted views
// observe a consistent snapshot instead of re-fetching it. Stores are pure
// in-memory structures (plus selective persistence); they perform no I/O of
// their own beyond the persistence writes.
package state

import (
	"sync"

	"omnimarket/internal/market"
)

// MarketStore maps symbols to their latest tick and kline history, tracks
// the subscribed symbol set, and carries per-key loading/error flags. All
// mutations are whole-field replacements. Not persisted across restarts.
type MarketStore struct {
	mu         sync.RWMutex
	ticks      map[string]market.Tick
	klines     map[string][]market.Kline
	subscribed map[string]struct{}
	loading    map[string]bool
	errors     map[string]string
}

func NewMarketStore() *MarketStore {
	return &MarketStore{
		ticks:      make(map[string]market.Tick),
		klines:     make(map[string][]market.Kline),
		subscribed: make(map[string]struct{}),
		loading:    make(map[string]bool),
		errors:     make(map[string]string),
	}
}

// SetTick replaces the latest tick for its symbol.
func (s *MarketStore) SetTick(tick market.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks[tick.Symbol] = tick
}

// SetTicks replaces the latest tick for every symbol in the batch.
func (s *MarketStore) SetTicks(ticks []market.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tick := range ticks {
		s.ticks[tick.Symbol] = tick
	}
}

// Tick returns the latest tick for symbol, if present.
func (s *MarketStore) Tick(symbol string) (market.Tick, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tick, ok := s.ticks[symbol]
	return tick, ok
}

// AllTicks returns a copy of every stored tick.
func (s *MarketStore) AllTicks() []market.Tick {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]market.Tick, 0, len(s.ticks))
	for _, tick := range s.ticks {
		out = append(out, tick)
	}
	return out
}

// SetKlines replaces the kline sequence for a symbol wholesale.
func (s *MarketStore) SetKlines(symbol string, klines []market.Kline) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]market.Kline, len(klines))
	copy(cp, klines)
	s.klines[symbol] = cp
}

// Klines returns a copy of the stored kline sequence for a symbol.
func (s *MarketStore) Klines(symbol string) []market.Kline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.klines[symbol]
	if !ok {
		return nil
	}
	cp := make([]market.Kline, len(stored))
	copy(cp, stored)
	return cp
}

// Subscribe adds a symbol to the subscribed set.
func (s *MarketStore) Subscribe(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed[symbol] = struct{}{}
}

// Unsubscribe removes a symbol from the subscribed set.
func (s *MarketStore) Unsubscribe(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribed, symbol)
}

// Subscribed returns a copy of the subscribed symbol set.
func (s *MarketStore) Subscribed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.subscribed))
	for symbol := range s.subscribed {
		out = append(out, symbol)
	}
	return out
}

// SetLoading replaces the loading flag for a key.
func (s *MarketStore) SetLoading(key string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[key] = loading
}

// Loading reports the loading flag for a key.
func (s *MarketStore) Loading(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[key]
}

// SetError replaces the error message for a key. An empty message clears it.
func (s *MarketStore) SetError(key, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.errors, key)
		return
	}
	s.errors[key] = message
}

// Error returns the error message for a key, if set.
func (s *MarketStore) Error(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, ok := s.errors[key]
	return message, ok
}
