package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSaver struct {
	snapshots []map[int64]Entry
}

func (r *recordingSaver) Enqueue(entries map[int64]Entry) {
	r.snapshots = append(r.snapshots, entries)
}

func TestTracker_TryConsume(t *testing.T) {
	saver := &recordingSaver{}
	tracker := NewTracker(3, nil, saver)

	for i := 1; i <= 3; i++ {
		allowed, count := tracker.TryConsume(42, "2024-06-01")
		assert.True(t, allowed, "hit %d should be within limit", i)
		assert.Equal(t, i, count)
	}

	allowed, count := tracker.TryConsume(42, "2024-06-01")
	assert.False(t, allowed, "4th hit of the day should be denied")
	assert.Equal(t, 3, count)

	// Denied hits mutate nothing, so only three snapshots were persisted.
	assert.Len(t, saver.snapshots, 3)
	last := saver.snapshots[len(saver.snapshots)-1]
	assert.Equal(t, Entry{Count: 3, Date: "2024-06-01"}, last[42])
}

func TestTracker_DateRollover(t *testing.T) {
	tracker := NewTracker(3, map[int64]Entry{
		42: {Count: 3, Date: "2024-06-01"},
	}, nil)

	allowed, count := tracker.TryConsume(42, "2024-06-02")
	assert.True(t, allowed, "first hit of a new date should be allowed")
	assert.Equal(t, 1, count)
	assert.Equal(t, Entry{Count: 1, Date: "2024-06-02"}, tracker.Snapshot()[42])
}

func TestTracker_IndependentUsers(t *testing.T) {
	tracker := NewTracker(3, nil, nil)

	for i := 0; i < 3; i++ {
		tracker.TryConsume(1, "2024-06-01")
	}
	allowed, _ := tracker.TryConsume(1, "2024-06-01")
	assert.False(t, allowed)

	allowed, count := tracker.TryConsume(2, "2024-06-01")
	assert.True(t, allowed, "another user's quota is untouched")
	assert.Equal(t, 1, count)
}

func TestTracker_PersistedCountNeverExceedsLimit(t *testing.T) {
	saver := &recordingSaver{}
	tracker := NewTracker(3, nil, saver)

	for i := 0; i < 10; i++ {
		tracker.TryConsume(7, "2024-06-01")
	}

	for _, snapshot := range saver.snapshots {
		assert.LessOrEqual(t, snapshot[7].Count, 3)
	}
}
