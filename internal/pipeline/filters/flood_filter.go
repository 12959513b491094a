package filters

import (
	"context"
	"log/slog"
	"time"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/clock"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/flood"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/messages"
	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/pipeline"
)

// RoleResolver answers membership-role queries on demand. Satisfied by
// the chat client.
type RoleResolver interface {
	GetMemberRole(ctx context.Context, chatID int64, userID int64) (bot.Role, error)
}

// FloodFilter mutes members that burst messages. Owners and
// administrators are exempt; the role is only queried once the window
// actually trips.
type FloodFilter struct {
	logger       *slog.Logger
	tracker      *flood.Tracker
	roles        RoleResolver
	clock        clock.Clock
	muteDuration time.Duration
}

func NewFloodFilter(logger *slog.Logger, tracker *flood.Tracker, roles RoleResolver, clk clock.Clock, muteDuration time.Duration) *FloodFilter {
	return &FloodFilter{
		logger:       logger,
		tracker:      tracker,
		roles:        roles,
		clock:        clk,
		muteDuration: muteDuration,
	}
}

func (f *FloodFilter) Name() string {
	return "flood_filter"
}

func (f *FloodFilter) Process(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	if !f.tracker.RecordAndCheck(payload.SenderID, f.clock.Now()) {
		return &pipeline.Result{IsAllowed: true}, nil
	}

	role, err := f.roles.GetMemberRole(ctx, payload.ChatID, payload.SenderID)
	if err != nil {
		// Unresolvable role counts as a plain member.
		f.logger.Warn("Failed to resolve member role, assuming member",
			"chat_id", payload.ChatID, "user_id", payload.SenderID, "error", err)
		role = bot.RoleMember
	}
	if role.IsPrivileged() {
		return &pipeline.Result{IsAllowed: true}, nil
	}

	// Clear the window so the mute notice and the user's next message
	// don't immediately re-trigger.
	f.tracker.Reset(payload.SenderID)

	return &pipeline.Result{
		IsAllowed:  false,
		Reason:     messages.MsgReasonRateLimit,
		FilterName: f.Name(),
		Actions: []pipeline.Action{
			pipeline.MuteAction{UserID: payload.SenderID, Duration: f.muteDuration},
			pipeline.SendTextAction{Text: messages.MsgSpamMuted},
		},
	}, nil
}
