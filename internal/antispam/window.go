package antispam

import (
	"sync"
	"time"
)

// Tracker keeps a per-user sliding window of request timestamps together
// with an escalation counter. Purely in-memory: restart drops all windows,
// which is an accepted trade-off (durable bans are kept elsewhere).
type Tracker struct {
	mu         sync.Mutex
	windows    map[int64][]time.Time
	violations map[int64]int
}

func NewTracker() *Tracker {
	return &Tracker{
		windows:    make(map[int64][]time.Time),
		violations: make(map[int64]int),
	}
}

// RecordAndCheck appends now to the user's window, evicts entries older
// than interval and reports whether the request stays within maxRequests.
// The timestamp is recorded even when the check fails: one event, one
// window entry.
func (t *Tracker) RecordAndCheck(userID int64, now time.Time, interval time.Duration, maxRequests int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	window := t.windows[userID]
	cutoff := now.Add(-interval)
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	t.windows[userID] = kept

	return len(kept) <= maxRequests
}

func (t *Tracker) ViolationCount(userID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.violations[userID]
}

// IncrementViolation bumps the counter and returns the new value.
func (t *Tracker) IncrementViolation(userID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.violations[userID]++
	return t.violations[userID]
}

// ResetViolation erases the counter. A single admitted request forgives all
// previous violations; there is deliberately no gradual decay.
func (t *Tracker) ResetViolation(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.violations, userID)
}

// PruneIdle drops users whose whole window has aged out and who carry no
// violations. Memory hygiene only, never affects admission decisions.
func (t *Tracker) PruneIdle(now time.Time, interval time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-interval)
	pruned := 0
	for userID, window := range t.windows {
		idle := true
		for _, ts := range window {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		if idle && t.violations[userID] == 0 {
			delete(t.windows, userID)
			pruned++
		}
	}
	return pruned
}
