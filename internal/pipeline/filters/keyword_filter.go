package filters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/clock"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/messages"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/metrics"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
)

// QuotaConsumer is the daily-quota view the filter needs. Satisfied by
// *quota.Tracker.
type QuotaConsumer interface {
	TryConsume(userID int64, today string) (bool, int)
}

// KeywordFilter enforces the per-day cap on the designated keyword. The
// match is whole-text equality after trimming and lower-casing.
type KeywordFilter struct {
	logger  *slog.Logger
	keyword string
	limit   int
	quota   QuotaConsumer
	clock   clock.Clock
}

func NewKeywordFilter(logger *slog.Logger, keyword string, limit int, quota QuotaConsumer, clk clock.Clock) *KeywordFilter {
	return &KeywordFilter{
		logger:  logger,
		keyword: keyword,
		limit:   limit,
		quota:   quota,
		clock:   clk,
	}
}

func (f *KeywordFilter) Name() string {
	return "keyword_filter"
}

func (f *KeywordFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	if payload.NormalizedText() != f.keyword {
		return &pipeline.Result{IsAllowed: true}, nil
	}

	allowed, count := f.quota.TryConsume(payload.SenderID, f.clock.Today())
	if allowed {
		metrics.IncQuotaHit("allowed")
		f.logger.Debug("Keyword within quota",
			"user_id", payload.SenderID, "count", count, "limit", f.limit)
		return &pipeline.Result{
			IsAllowed: true,
			Actions: []pipeline.Action{
				pipeline.ReplyTextAction{
					ToMessageID: payload.MessageID,
					Text:        fmt.Sprintf(messages.MsgThalaProgress, count, f.limit),
				},
			},
		}, nil
	}

	metrics.IncQuotaHit("denied")
	return &pipeline.Result{
		IsAllowed:  false,
		Reason:     messages.MsgReasonThalaQuota,
		FilterName: f.Name(),
		Actions: []pipeline.Action{
			pipeline.DeleteMessageAction{MessageID: payload.MessageID},
			pipeline.ReplyTextAction{ToMessageID: payload.MessageID, Text: messages.MsgThalaLimit},
		},
	}, nil
}
