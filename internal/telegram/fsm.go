package telegram

import "sync"

type convState int

const (
	stateNone convState = iota
	stateAwaitLocation
	stateAwaitCityOneDay
	stateAwaitCityThreeDays
	stateAwaitStation
	stateAwaitSummary
	stateAwaitMeteograms
	stateAwaitNewsletter
)

// stateManager keeps the per-user conversation step. In-memory only, a
// restart simply drops everyone back to the menu.
type stateManager struct {
	mu     sync.RWMutex
	states map[int64]convState
}

func newStateManager() *stateManager {
	return &stateManager{states: make(map[int64]convState)}
}

func (m *stateManager) Get(userID int64) convState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[userID]
}

func (m *stateManager) Set(userID int64, st convState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = st
}

func (m *stateManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
