package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram implements Client on top of the Telegram Bot API. The v4
// client has no context plumbing, so deadlines are bounded by the HTTP
// client timeout and the context is checked before each call.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(logger *slog.Logger, token string, timeout time.Duration) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}
	logger.Info("Bot client authorized", "username", api.Self.UserName)
	return &Telegram{api: api}, nil
}

// Username returns the bot's own username, used to strip the /help@bot
// command suffix.
func (t *Telegram) Username() string {
	return t.api.Self.UserName
}

// API exposes the underlying client to the transport packages.
func (t *Telegram) API() *tgbotapi.BotAPI {
	return t.api
}

func (t *Telegram) SendMessage(ctx context.Context, chatID int64, text string, replyTo int) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Kind: KindTransport, Err: err}
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if _, err := t.api.Send(msg); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Telegram) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Kind: KindTransport, Err: err}
	}
	if _, err := t.api.DeleteMessage(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Telegram) RestrictMember(ctx context.Context, chatID int64, userID int64, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Kind: KindTransport, Err: err}
	}
	denied := false
	_, err := t.api.RestrictChatMember(tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: int(userID),
		},
		UntilDate:             until.Unix(),
		CanSendMessages:       &denied,
		CanSendMediaMessages:  &denied,
		CanSendOtherMessages:  &denied,
		CanAddWebPagePreviews: &denied,
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (t *Telegram) GetMemberRole(ctx context.Context, chatID int64, userID int64) (Role, error) {
	if err := ctx.Err(); err != nil {
		return RoleMember, &APIError{Kind: KindTransport, Err: err}
	}
	member, err := t.api.GetChatMember(tgbotapi.ChatConfigWithUser{
		ChatID: chatID,
		UserID: int(userID),
	})
	if err != nil {
		return RoleMember, classify(err)
	}
	switch {
	case member.IsCreator():
		return RoleOwner, nil
	case member.IsAdministrator():
		return RoleAdministrator, nil
	default:
		return RoleMember, nil
	}
}
