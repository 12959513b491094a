package polling

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type Poller struct {
	logger *slog.Logger
	api    *tgbotapi.BotAPI
}

func NewPoller(logger *slog.Logger, api *tgbotapi.BotAPI) *Poller {
	return &Poller{
		logger: logger,
		api:    api,
	}
}

// Start begins long polling and stops the underlying update fetcher when
// the context ends.
func (p *Poller) Start(ctx context.Context) (tgbotapi.UpdatesChannel, error) {
	p.logger.Info("Starting Long Polling")

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60

	updates, err := p.api.GetUpdatesChan(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start polling: %w", err)
	}

	go func() {
		<-ctx.Done()
		p.api.StopReceivingUpdates()
	}()

	return updates, nil
}
