package quota

import "sync"

// Saver receives quota snapshots for persistence. Satisfied by *Store.
type Saver interface {
	Enqueue(entries map[int64]Entry)
}

// Tracker counts keyword occurrences per user per civil date. The counter
// rolls over lazily: the first consume attempt on a new date resets it.
type Tracker struct {
	mu      sync.Mutex
	entries map[int64]Entry
	limit   int
	saver   Saver
}

func NewTracker(limit int, entries map[int64]Entry, saver Saver) *Tracker {
	if entries == nil {
		entries = make(map[int64]Entry)
	}
	return &Tracker{
		entries: entries,
		limit:   limit,
		saver:   saver,
	}
}

// TryConsume records one keyword occurrence for the user on the given
// civil date. It reports whether the occurrence is within the daily limit
// and the count after the call. Every successful increment is handed to
// the saver so a restart cannot grant extra hits.
func (t *Tracker) TryConsume(userID int64, today string) (bool, int) {
	t.mu.Lock()

	entry, ok := t.entries[userID]
	if !ok || entry.Date != today {
		entry = Entry{Date: today}
	}

	if entry.Count >= t.limit {
		t.entries[userID] = entry
		t.mu.Unlock()
		return false, t.limit
	}

	entry.Count++
	t.entries[userID] = entry
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	if t.saver != nil {
		t.saver.Enqueue(snapshot)
	}
	return true, entry.Count
}

// Snapshot returns a copy of the current quota map.
func (t *Tracker) Snapshot() map[int64]Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() map[int64]Entry {
	snapshot := make(map[int64]Entry, len(t.entries))
	for id, entry := range t.entries {
		snapshot[id] = entry
	}
	return snapshot
}
