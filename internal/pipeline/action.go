package pipeline

import "time"

// Action is an enforcement command produced by a filter and consumed once
// by the executor. The concrete types are the closed set of variants.
type Action interface {
	ActionName() string
}

// MuteAction restricts a member from sending anything until now+Duration.
type MuteAction struct {
	UserID   int64
	Duration time.Duration
}

func (MuteAction) ActionName() string { return "mute" }

// DeleteMessageAction removes the offending message.
type DeleteMessageAction struct {
	MessageID int
}

func (DeleteMessageAction) ActionName() string { return "delete_message" }

// ReplyTextAction sends text as a reply to a specific message.
type ReplyTextAction struct {
	ToMessageID int
	Text        string
}

func (ReplyTextAction) ActionName() string { return "reply_text" }

// SendTextAction sends plain text to the chat.
type SendTextAction struct {
	Text string
}

func (SendTextAction) ActionName() string { return "send_text" }
