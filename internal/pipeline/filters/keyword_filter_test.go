package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/quota"
)

func newKeywordFilter(q QuotaConsumer, today string) *KeywordFilter {
	return NewKeywordFilter(discardLogger(), "thala", 3, q, &fakeClock{today: today})
}

func TestKeywordFilter_NonKeywordIgnored(t *testing.T) {
	q := &mockQuota{}
	filter := newKeywordFilter(q, "2024-06-01")

	for _, text := range []string{"hello", "thala rocks", "thalaiva", ""} {
		res, err := filter.Process(context.Background(), pipeline.Payload{SenderID: 1, Text: text})
		assert.NoError(t, err)
		assert.True(t, res.IsAllowed)
		assert.Empty(t, res.Actions)
	}
	assert.Zero(t, q.calls, "quota must not be touched for non-keyword text")
}

func TestKeywordFilter_Normalization(t *testing.T) {
	q := &mockQuota{allowed: true, count: 1}
	filter := newKeywordFilter(q, "2024-06-01")

	for _, text := range []string{"thala", "THALA", "  Thala  ", "ThAlA\n"} {
		_, err := filter.Process(context.Background(), pipeline.Payload{SenderID: 7, Text: text})
		assert.NoError(t, err)
	}
	assert.Equal(t, 4, q.calls)
	assert.Equal(t, int64(7), q.userID)
	assert.Equal(t, "2024-06-01", q.today)
}

func TestKeywordFilter_WithinQuota(t *testing.T) {
	tracker := quota.NewTracker(3, nil, nil)
	filter := newKeywordFilter(tracker, "2024-06-01")

	for i := 1; i <= 3; i++ {
		res, err := filter.Process(context.Background(), pipeline.Payload{MessageID: i, SenderID: 1, Text: "thala"})
		assert.NoError(t, err)
		assert.True(t, res.IsAllowed, "hit %d should pass", i)
		for _, action := range res.Actions {
			assert.NotEqual(t, "delete_message", action.ActionName())
		}
	}
}

func TestKeywordFilter_Overage(t *testing.T) {
	tracker := quota.NewTracker(3, nil, nil)
	filter := newKeywordFilter(tracker, "2024-06-01")

	for i := 1; i <= 3; i++ {
		_, err := filter.Process(context.Background(), pipeline.Payload{MessageID: i, SenderID: 1, Text: "thala"})
		assert.NoError(t, err)
	}

	res, err := filter.Process(context.Background(), pipeline.Payload{MessageID: 4, SenderID: 1, Text: "thala"})
	assert.NoError(t, err)
	assert.False(t, res.IsAllowed)
	assert.Equal(t, []pipeline.Action{
		pipeline.DeleteMessageAction{MessageID: 4},
		pipeline.ReplyTextAction{ToMessageID: 4, Text: "Your thala limit has reached!"},
	}, res.Actions)

	assert.Equal(t, quota.Entry{Count: 3, Date: "2024-06-01"}, tracker.Snapshot()[1], "overage must not bump the persisted count")
}

func TestKeywordFilter_DateRollover(t *testing.T) {
	tracker := quota.NewTracker(3, map[int64]quota.Entry{
		1: {Count: 3, Date: "2024-06-01"},
	}, nil)
	filter := newKeywordFilter(tracker, "2024-06-02")

	res, err := filter.Process(context.Background(), pipeline.Payload{MessageID: 9, SenderID: 1, Text: "thala"})
	assert.NoError(t, err)
	assert.True(t, res.IsAllowed, "first hit of the new date passes")
	assert.Equal(t, quota.Entry{Count: 1, Date: "2024-06-02"}, tracker.Snapshot()[1])
}
