package handler

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/messages"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
)

// handleCommand recognizes the two in-chat commands and responds.
// Returns true when the message was a command, so the caller skips the
// moderation pipeline.
func (h *Handler) handleCommand(ctx context.Context, logger *slog.Logger, msg *tgbotapi.Message) bool {
	text := strings.TrimSpace(msg.Text)

	switch {
	case h.isHelpCommand(text):
		logger.Info("Help command")
		h.executor.Execute(ctx, msg.Chat.ID, []pipeline.Action{
			pipeline.SendTextAction{Text: messages.MsgHelp},
		}, "help")
		return true

	case text == "!rules":
		role, err := h.client.GetMemberRole(ctx, msg.Chat.ID, int64(msg.From.ID))
		if err != nil {
			logger.Warn("Failed to resolve role for rules command", "error", err)
			role = bot.RoleMember
		}
		reply := messages.MsgRulesAdminOnly
		if role.IsPrivileged() {
			reply = messages.MsgRules
		}
		logger.Info("Rules command", "role", string(role))
		h.executor.Execute(ctx, msg.Chat.ID, []pipeline.Action{
			pipeline.ReplyTextAction{ToMessageID: msg.MessageID, Text: reply},
		}, "rules")
		return true
	}
	return false
}

// isHelpCommand matches /help, optionally suffixed with @botname.
func (h *Handler) isHelpCommand(text string) bool {
	if text == "/help" {
		return true
	}
	rest, ok := strings.CutPrefix(text, "/help@")
	return ok && strings.EqualFold(rest, h.botUsername)
}
