package state

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AlertStorageKey is the local-storage key holding the persisted alert list.
const AlertStorageKey = "alert-storage"

// Alert is one configured price alert.
type Alert struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Condition string    `json:"condition"` // "above" or "below"
	Threshold float64   `json:"threshold"`
	Enabled   bool      `json:"enabled"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlertPatch is a partial update applied to an existing alert. Nil fields
// are left untouched (shallow merge).
type AlertPatch struct {
	Symbol    *string
	Condition *string
	Threshold *float64
	Enabled   *bool
	Note      *string
}

// AlertStats are aggregate counters derived from the alert list and trigger
// events. Ephemeral, never persisted.
type AlertStats struct {
	Total     int `json:"total"`
	Enabled   int `json:"enabled"`
	Triggered int `json:"triggered"`
}

// TriggerEvent records one alert firing. Ephemeral, never persisted.
type TriggerEvent struct {
	AlertID string    `json:"alertId"`
	Symbol  string    `json:"symbol"`
	Price   float64   `json:"price"`
	At      time.Time `json:"at"`
}

// AlertStore holds the ordered alert list plus aggregate statistics and a
// separate trigger-event list. Only the alert list is persisted.
type AlertStore struct {
	mu       sync.Mutex
	store    BlobStore
	logger   *zap.Logger
	alerts   []Alert
	triggers []TriggerEvent
}

// BlobStore is the persistence surface shared by the persisted stores.
type BlobStore interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// NewAlertStore creates the store and loads the persisted alert list. A
// corrupt blob is logged and treated as empty.
func NewAlertStore(store BlobStore, logger *zap.Logger) *AlertStore {
	s := &AlertStore{store: store, logger: logger}

	blob, err := store.Get(AlertStorageKey)
	if err == nil {
		var saved []Alert
		if err := json.Unmarshal(blob, &saved); err != nil {
			logger.Warn("failed to parse saved alerts, starting empty", zap.Error(err))
		} else {
			s.alerts = saved
		}
	}

	return s
}

// Add appends an alert and persists the list.
func (s *AlertStore) Add(alert Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	s.persistLocked()
}

// Update applies a shallow merge of the patch onto the alert with the given
// id. It reports whether the alert was found.
func (s *AlertStore) Update(id string, patch AlertPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID != id {
			continue
		}

		if patch.Symbol != nil {
			s.alerts[i].Symbol = *patch.Symbol
		}
		if patch.Condition != nil {
			s.alerts[i].Condition = *patch.Condition
		}
		if patch.Threshold != nil {
			s.alerts[i].Threshold = *patch.Threshold
		}
		if patch.Enabled != nil {
			s.alerts[i].Enabled = *patch.Enabled
		}
		if patch.Note != nil {
			s.alerts[i].Note = *patch.Note
		}

		s.persistLocked()
		return true
	}
	return false
}

// Remove deletes the alert with the given id and persists the list.
func (s *AlertStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.alerts[:0]
	for _, alert := range s.alerts {
		if alert.ID != id {
			kept = append(kept, alert)
		}
	}
	s.alerts = kept
	s.persistLocked()
}

// Alerts returns a copy of the alert list in creation order.
func (s *AlertStore) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// RecordTrigger appends a trigger event. Trigger events are ephemeral.
func (s *AlertStore) RecordTrigger(ev TriggerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, ev)
}

// Triggers returns a copy of the trigger-event list.
func (s *AlertStore) Triggers() []TriggerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TriggerEvent, len(s.triggers))
	copy(out, s.triggers)
	return out
}

// Stats derives the aggregate counters from the current state.
func (s *AlertStore) Stats() AlertStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := AlertStats{Total: len(s.alerts), Triggered: len(s.triggers)}
	for _, alert := range s.alerts {
		if alert.Enabled {
			stats.Enabled++
		}
	}
	return stats
}

// persistLocked writes the alert list (and only the alert list) to the
// storage key. Caller holds s.mu.
func (s *AlertStore) persistLocked() {
	blob, err := json.Marshal(s.alerts)
	if err != nil {
		s.logger.Warn("failed to marshal alerts", zap.Error(err))
		return
	}
	if err := s.store.Put(AlertStorageKey, blob); err != nil {
		s.logger.Warn("failed to persist alerts", zap.Error(err))
	}
}
