package flood

import (
	"sync"
	"time"
)

// Tracker keeps a sliding window of recent message timestamps per user.
type Tracker struct {
	mu      sync.Mutex
	windows map[int64][]time.Time
	limit   int
	window  time.Duration
}

func NewTracker(limit int, window time.Duration) *Tracker {
	return &Tracker{
		windows: make(map[int64][]time.Time),
		limit:   limit,
		window:  window,
	}
}

// RecordAndCheck appends now to the user's window, prunes entries that
// fell out of the window, and reports whether the user is over the burst
// limit. Timestamps in the future (clock went backwards) are pruned too,
// so the window degrades to just the current event.
func (t *Tracker) RecordAndCheck(userID int64, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.window)
	kept := t.windows[userID][:0]
	for _, ts := range t.windows[userID] {
		if ts.After(cutoff) && !ts.After(now) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	t.windows[userID] = kept

	return len(kept) > t.limit
}

// Reset clears the window for a user, used after an enforcement action so
// the follow-up notice does not re-trigger on the next message.
func (t *Tracker) Reset(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.windows, userID)
}
