package state

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// UIStorageKey is the local-storage key holding persisted UI preferences.
const UIStorageKey = "ui-storage"

// Theme selects the dashboard color scheme.
type Theme string

const (
	ThemeLight     Theme = "light"
	ThemeDark      Theme = "dark"
	ThemeBloomberg Theme = "bloomberg"
)

// uiState is the persisted preference snapshot.
type uiState struct {
	Theme            Theme  `json:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	ActiveTab        string `json:"activeTab"`
}

// UIStore holds cross-page UI preferences. All setters are simple
// last-write-wins replacements, each persisted immediately.
type UIStore struct {
	mu     sync.Mutex
	store  BlobStore
	logger *zap.Logger
	state  uiState
}

// NewUIStore creates the store and loads persisted preferences; a corrupt
// blob falls back to defaults.
func NewUIStore(store BlobStore, logger *zap.Logger) *UIStore {
	s := &UIStore{
		store:  store,
		logger: logger,
		state:  uiState{Theme: ThemeDark},
	}

	blob, err := store.Get(UIStorageKey)
	if err == nil {
		var saved uiState
		if err := json.Unmarshal(blob, &saved); err != nil {
			logger.Warn("failed to parse saved UI preferences, using defaults", zap.Error(err))
		} else {
			s.state = saved
		}
	}

	return s
}

func (s *UIStore) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	s.persistLocked()
}

func (s *UIStore) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

func (s *UIStore) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarCollapsed = collapsed
	s.persistLocked()
}

func (s *UIStore) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SidebarCollapsed
}

func (s *UIStore) SetActiveTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveTab = tab
	s.persistLocked()
}

func (s *UIStore) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveTab
}

func (s *UIStore) persistLocked() {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn("failed to marshal UI preferences", zap.Error(err))
		return
	}
	if err := s.store.Put(UIStorageKey, blob); err != nil {
		s.logger.Warn("failed to persist UI preferences", zap.Error(err))
	}
}
