package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type Server struct {
	logger *slog.Logger
	api    *tgbotapi.BotAPI
	host   string
	port   string
}

func NewServer(logger *slog.Logger, api *tgbotapi.BotAPI, host, port string) *Server {
	return &Server{
		logger: logger,
		api:    api,
		host:   host,
		port:   port,
	}
}

// Start registers the webhook with the provider and serves it. The
// returned cleanup deregisters the webhook and shuts the server down.
func (s *Server) Start(ctx context.Context) (tgbotapi.UpdatesChannel, func() error, error) {
	webhookURL := fmt.Sprintf("%s/webhook", s.host)

	if _, err := s.api.SetWebhook(tgbotapi.NewWebhook(webhookURL)); err != nil {
		return nil, nil, fmt.Errorf("failed to set webhook: %w", err)
	}
	s.logger.Info("Webhook registered", "url", webhookURL)

	updates := s.api.ListenForWebhook("/webhook")

	server := &http.Server{
		Addr: ":" + s.port,
	}

	go func() {
		s.logger.Info("Webhook server listening", "port", s.port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Webhook server failed", "error", err)
		}
	}()

	cleanup := func() error {
		if _, err := s.api.RemoveWebhook(); err != nil {
			s.logger.Warn("Failed to remove webhook", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	}

	return updates, cleanup, nil
}
