package pipeline

import (
	"strings"
	"time"
)

// Payload is one normalized inbound text message.
type Payload struct {
	MessageID int
	ChatID    int64
	SenderID  int64
	Text      string
	Timestamp time.Time
}

// NormalizedText is the form the keyword rule matches against: trimmed
// and lower-cased, whole-text.
func (p Payload) NormalizedText() string {
	return strings.ToLower(strings.TrimSpace(p.Text))
}
