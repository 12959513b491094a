package flood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordAndCheck(t *testing.T) {
	tracker := NewTracker(5, 10*time.Second)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		over := tracker.RecordAndCheck(1, base.Add(time.Duration(i)*time.Second))
		assert.False(t, over, "message %d should stay under the limit", i+1)
	}

	assert.True(t, tracker.RecordAndCheck(1, base.Add(5*time.Second)), "6th message inside the window should trip")

	assert.False(t, tracker.RecordAndCheck(2, base.Add(5*time.Second)), "different user has its own window")
}

func TestTracker_WindowExpiry(t *testing.T) {
	tracker := NewTracker(5, 10*time.Second)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		tracker.RecordAndCheck(1, base.Add(time.Duration(i)*time.Second))
	}

	// 11s after the first burst message everything before has expired.
	assert.False(t, tracker.RecordAndCheck(1, base.Add(16*time.Second)))
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker(5, 10*time.Second)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		tracker.RecordAndCheck(1, base.Add(time.Duration(i)*time.Second))
	}
	tracker.Reset(1)

	assert.False(t, tracker.RecordAndCheck(1, base.Add(6*time.Second)), "window should be empty after reset")
}

func TestTracker_ClockBackwards(t *testing.T) {
	tracker := NewTracker(5, 10*time.Second)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		tracker.RecordAndCheck(1, base.Add(time.Duration(i)*time.Second))
	}

	// Clock jumps back an hour: earlier timestamps are now in the future
	// and must be dropped, leaving only the current event.
	assert.False(t, tracker.RecordAndCheck(1, base.Add(-time.Hour)))
}
