package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/clock"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/metrics"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
)

const (
	defaultActionTimeout    = 10 * time.Second
	defaultTransportBackoff = 1 * time.Second
	maxRateLimitWait        = 30 * time.Second
)

// Executor dispatches enforcement actions through the chat client. Each
// action is handled independently: one failure never stops the rest of
// the list.
type Executor struct {
	logger *slog.Logger
	client bot.Client
	clock  clock.Clock

	// Overridable in tests.
	actionTimeout    time.Duration
	transportBackoff time.Duration
}

func New(logger *slog.Logger, client bot.Client, clk clock.Clock) *Executor {
	return &Executor{
		logger:           logger,
		client:           client,
		clock:            clk,
		actionTimeout:    defaultActionTimeout,
		transportBackoff: defaultTransportBackoff,
	}
}

// Execute issues the actions in order against the given chat.
func (e *Executor) Execute(ctx context.Context, chatID int64, actions []pipeline.Action, reason string) {
	for _, action := range actions {
		err := e.dispatchWithRetry(ctx, chatID, action, reason)
		outcome := "ok"
		if err != nil {
			outcome = bot.AsAPIError(err).Kind.String()
		}
		metrics.IncBotAction(action.ActionName(), outcome)
	}
}

// dispatchWithRetry applies the per-kind policy: NotFound is ignored,
// PermissionDenied is logged without retry, RateLimited waits out the
// server-suggested delay once, Transport is retried once after a fixed
// backoff.
func (e *Executor) dispatchWithRetry(ctx context.Context, chatID int64, action pipeline.Action, reason string) error {
	err := e.dispatch(ctx, chatID, action, reason)
	if err == nil {
		return nil
	}

	apiErr := bot.AsAPIError(err)
	switch apiErr.Kind {
	case bot.KindNotFound:
		e.logger.Debug("Action target already gone",
			"action", action.ActionName(), "chat_id", chatID, "error", err)
		return nil
	case bot.KindPermissionDenied:
		e.logger.Warn("Bot lacks rights for action",
			"action", action.ActionName(), "chat_id", chatID, "error", err)
		return err
	case bot.KindRateLimited:
		wait := apiErr.RetryAfter
		if wait <= 0 || wait > maxRateLimitWait {
			wait = e.transportBackoff
		}
		if !e.sleep(ctx, wait) {
			return err
		}
	default:
		if !e.sleep(ctx, e.transportBackoff) {
			return err
		}
	}

	if err := e.dispatch(ctx, chatID, action, reason); err != nil {
		e.logger.Error("Action dropped after retry",
			"action", action.ActionName(), "chat_id", chatID, "error", err)
		return err
	}
	return nil
}

func (e *Executor) dispatch(ctx context.Context, chatID int64, action pipeline.Action, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, e.actionTimeout)
	defer cancel()

	switch a := action.(type) {
	case pipeline.MuteAction:
		until := e.clock.Now().Add(a.Duration)
		err := e.client.RestrictMember(ctx, chatID, a.UserID, until)
		if err == nil {
			e.logger.Info("Muted user", "chat_id", chatID, "user_id", a.UserID, "until", until)
		}
		return err
	case pipeline.DeleteMessageAction:
		err := e.client.DeleteMessage(ctx, chatID, a.MessageID)
		if err == nil {
			e.logger.Info("Deleted message", "chat_id", chatID, "message_id", a.MessageID, "reason", reason)
			metrics.IncDeletedMessages(reason)
		}
		return err
	case pipeline.ReplyTextAction:
		return e.client.SendMessage(ctx, chatID, a.Text, a.ToMessageID)
	case pipeline.SendTextAction:
		return e.client.SendMessage(ctx, chatID, a.Text, 0)
	default:
		return fmt.Errorf("unknown action type %T", action)
	}
}

// sleep waits for d unless the event deadline fires first.
func (e *Executor) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
