package bot

import (
	"context"
	"time"
)

// Role is the sender's membership level in the chat.
type Role string

const (
	RoleOwner         Role = "owner"
	RoleAdministrator Role = "administrator"
	RoleMember        Role = "member"
)

// IsPrivileged reports whether the role is exempt from flood enforcement
// and may use admin-only commands.
func (r Role) IsPrivileged() bool {
	return r == RoleOwner || r == RoleAdministrator
}

// Client is the only coupling between the moderation engine and the
// concrete chat provider. Errors returned by implementations are
// *APIError values so callers can branch on the error kind.
type Client interface {
	// SendMessage posts text to the chat; replyTo of 0 means no reply.
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int) error
	// DeleteMessage removes a message for everyone.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	// RestrictMember denies all send/media/other/preview permissions
	// until the given wall-clock time.
	RestrictMember(ctx context.Context, chatID int64, userID int64, until time.Time) error
	// GetMemberRole queries the sender's current membership role.
	GetMemberRole(ctx context.Context, chatID int64, userID int64) (Role, error)
}
