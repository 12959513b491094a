package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/executor"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/metrics"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
)

const eventTimeout = 15 * time.Second

// Handler consumes updates, routes commands, runs the moderation
// pipeline and hands enforcement actions to the executor.
//
// Updates are sharded across workers by sender id, so events from one
// user are evaluated and their actions issued in arrival order, while
// different users proceed in parallel.
type Handler struct {
	logger      *slog.Logger
	client      bot.Client
	pipeline    *pipeline.Manager
	executor    *executor.Executor
	botUsername string
	tracer      trace.Tracer

	queues []chan tgbotapi.Update
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewHandler(logger *slog.Logger, client bot.Client, pm *pipeline.Manager, exec *executor.Executor, botUsername string, workers int) *Handler {
	if workers < 1 {
		workers = 1
	}
	queues := make([]chan tgbotapi.Update, workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, 64)
	}
	return &Handler{
		logger:      logger,
		client:      client,
		pipeline:    pm,
		executor:    exec,
		botUsername: botUsername,
		tracer:      otel.Tracer("handler"),
		queues:      queues,
		done:        make(chan struct{}),
	}
}

// Start launches the worker pool. The context seeds per-event deadlines
// but its cancellation does not abort events already dequeued; Stop
// bounds the drain instead.
func (h *Handler) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for _, q := range h.queues {
		h.wg.Add(1)
		go func(q chan tgbotapi.Update) {
			defer h.wg.Done()
			for {
				select {
				case upd := <-q:
					h.handleUpdate(base, upd)
				case <-h.done:
					// Drain what is already queued, then exit.
					for {
						select {
						case upd := <-q:
							h.handleUpdate(base, upd)
						default:
							return
						}
					}
				}
			}
		}(q)
	}
}

// Dispatch routes an update to the worker owning its sender. Malformed
// and non-text updates are dropped here. Updates arriving during
// shutdown are dropped instead of blocking; the queues are never
// closed, so a dispatch racing Stop cannot panic.
func (h *Handler) Dispatch(upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || msg.Text == "" {
		h.logger.Debug("Dropping non-text update", "update_id", upd.UpdateID)
		return
	}
	idx := int(uint64(msg.From.ID) % uint64(len(h.queues)))
	select {
	case <-h.done:
		h.logger.Debug("Dropping update during shutdown", "update_id", upd.UpdateID)
	case h.queues[idx] <- upd:
	}
}

// Stop signals shutdown and waits for the workers to drain their queues,
// up to grace.
func (h *Handler) Stop(grace time.Duration) {
	close(h.done)
	drained := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(grace):
		h.logger.Warn("Abandoning in-flight events after grace period", "grace", grace)
	}
}

func (h *Handler) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	start := time.Now()
	var handleErr error
	defer func() {
		metrics.ObserveUpdateProcessing("message", time.Since(start).Seconds(), handleErr)
	}()

	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()

	msg := upd.Message
	eventID := uuid.NewString()

	ctx, span := h.tracer.Start(ctx, "HandleUpdate")
	defer span.End()
	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.Int64("chat_id", msg.Chat.ID),
		attribute.Int64("user_id", int64(msg.From.ID)),
	)

	logger := h.logger.With(
		"event_id", eventID,
		"chat_id", msg.Chat.ID,
		"user_id", msg.From.ID,
	)
	logger.Debug("Processing message", "message_id", msg.MessageID)

	// Commands bypass the moderation rules entirely.
	if h.handleCommand(ctx, logger, msg) {
		return
	}

	payload := pipeline.Payload{
		MessageID: msg.MessageID,
		ChatID:    msg.Chat.ID,
		SenderID:  int64(msg.From.ID),
		Text:      msg.Text,
		Timestamp: time.Unix(int64(msg.Date), 0),
	}

	res, err := h.pipeline.Process(ctx, payload)
	if err != nil {
		handleErr = err
		logger.Error("Failed to moderate message", "error", err)
		return
	}

	if !res.IsAllowed {
		logger.Info("Message blocked", "reason", res.Reason, "filter", res.FilterName)
	}
	if len(res.Actions) > 0 {
		h.executor.Execute(ctx, payload.ChatID, res.Actions, res.Reason)
	}
}
