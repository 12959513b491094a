package messages

const (
	MsgSpamMuted      = "User muted for 10 minutes due to spam."
	MsgThalaLimit     = "Your thala limit has reached!"
	MsgThalaProgress  = "Thala count: %d/%d"
	MsgRules          = "#1 Spam is not allowed"
	MsgRulesAdminOnly = "Only admins can use this command."

	MsgHelp = `Available commands:
/help - show this message
!rules - show the group rules (admins only)

I also keep the chat clean: message bursts get you muted for 10 minutes, and "thala" may be said at most 3 times a day.`

	MsgReasonRateLimit  = "rate_limit"
	MsgReasonThalaQuota = "thala_quota"
)
