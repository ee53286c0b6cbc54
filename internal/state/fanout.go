package state

import (
	"encoding/json"
	"sync"
)

// Message is one push received over the monitoring stream, routed to
// subscribers by symbol.
type Message struct {
	Type    string          `json:"type"`
	Symbol  string          `json:"symbol"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Subscriber receives messages for one symbol.
type Subscriber func(Message)

type subEntry struct {
	id int
	fn Subscriber
}

// Fanout routes incoming stream messages to per-symbol subscriber sets.
// Dispatch is synchronous, in registration order. A symbol's entry is
// pruned once its subscriber set becomes empty.
type Fanout struct {
	mu        sync.Mutex
	connected bool
	nextID    int
	subs      map[string][]subEntry
}

func NewFanout() *Fanout {
	return &Fanout{subs: make(map[string][]subEntry)}
}

// SetConnected replaces the connection flag.
func (f *Fanout) SetConnected(connected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = connected
}

// Connected reports the connection flag.
func (f *Fanout) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// Subscribe registers a callback for a symbol and returns an unsubscribe
// function. Unsubscribing twice is a no-op.
func (f *Fanout) Subscribe(symbol string, fn Subscriber) (unsubscribe func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.subs[symbol] = append(f.subs[symbol], subEntry{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(symbol, id) })
	}
}

func (f *Fanout) remove(symbol string, id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.subs[symbol]
	kept := entries[:0]
	for _, entry := range entries {
		if entry.id != id {
			kept = append(kept, entry)
		}
	}

	if len(kept) == 0 {
		delete(f.subs, symbol)
		return
	}
	f.subs[symbol] = kept
}

// HandleMessage invokes every callback registered for the message's symbol,
// synchronously, in registration order.
func (f *Fanout) HandleMessage(msg Message) {
	f.mu.Lock()
	entries := make([]subEntry, len(f.subs[msg.Symbol]))
	copy(entries, f.subs[msg.Symbol])
	f.mu.Unlock()

	for _, entry := range entries {
		entry.fn(msg)
	}
}

// SubscriberCount reports how many callbacks are registered for a symbol.
func (f *Fanout) SubscriberCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[symbol])
}
