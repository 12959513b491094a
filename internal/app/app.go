package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/clock"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/config"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/executor"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/flood"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/handler"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/metrics"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline/filters"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/quota"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/transport/polling"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/transport/webhook"
)

// keyword is the token the daily quota applies to.
const keyword = "thala"

const (
	apiTimeout    = 10 * time.Second
	shutdownGrace = 10 * time.Second
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger
	tg     *bot.Telegram
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	tg, err := bot.NewTelegram(logger, cfg.BotToken, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}
	return &App{
		cfg:    cfg,
		logger: logger,
		tg:     tg,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting thala moderation bot", "username", a.tg.Username())

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.NewSystem(loc)

	store := quota.NewStore(a.logger, a.cfg.QuotaFilePath)
	quotaTracker := quota.NewTracker(a.cfg.ThalaLimit, store.Load(), store)

	// The saver must outlive the signal context: handlers drained after
	// SIGTERM still enqueue quota increments, and those have to reach
	// disk. Its lifetime ends only after the handler pool has stopped.
	saverCtx, stopSaver := context.WithCancel(context.Background())
	defer stopSaver()
	saverDone := make(chan struct{})
	go func() {
		defer close(saverDone)
		store.Run(saverCtx)
	}()

	floodTracker := flood.NewTracker(a.cfg.SpamLimit, a.cfg.SpamWindow())
	pm := pipeline.NewManager(
		filters.NewFloodFilter(a.logger, floodTracker, a.tg, clk, a.cfg.MuteDuration()),
		filters.NewKeywordFilter(a.logger, keyword, a.cfg.ThalaLimit, quotaTracker, clk),
	)

	exec := executor.New(a.logger, a.tg, clk)
	h := handler.NewHandler(a.logger, a.tg, pm, exec, a.tg.Username(), a.cfg.WorkerCount)

	metricsSrv := metrics.NewServer(a.logger, a.cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	var updates tgbotapi.UpdatesChannel
	var cleanup func() error

	if a.cfg.WebhookHost != "" {
		a.logger.Info("Starting in Webhook mode", "host", a.cfg.WebhookHost)
		srv := webhook.NewServer(a.logger, a.tg.API(), a.cfg.WebhookHost, a.cfg.Port)

		updates, cleanup, err = srv.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start webhook server: %w", err)
		}
		defer func() {
			if err := cleanup(); err != nil {
				a.logger.Error("Cleanup failed", "error", err)
			}
		}()
	} else {
		a.logger.Info("Starting in Long Polling mode")
		poller := polling.NewPoller(a.logger, a.tg.API())
		updates, err = poller.Start(ctx)
		if err != nil {
			return err
		}
	}

	h.Start(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				h.Dispatch(upd)
			}
		}
	}()

	<-ctx.Done()
	a.logger.Info("Shutting down...")

	h.Stop(shutdownGrace)
	stopSaver()
	<-saverDone

	metricsCtx, metricsCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer metricsCancel()
	if err := metricsSrv.Shutdown(metricsCtx); err != nil {
		a.logger.Error("Metrics server shutdown failed", "error", err)
	}

	return nil
}
