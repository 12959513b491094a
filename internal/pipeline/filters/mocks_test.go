package filters

import (
	"context"
	"time"

	"github.com/AASHIRWADGAMINGXD/Telegram-sub000/internal/bot"
)

type mockRoleResolver struct {
	role  bot.Role
	err   error
	calls int
}

func (m *mockRoleResolver) GetMemberRole(_ context.Context, _ int64, _ int64) (bot.Role, error) {
	m.calls++
	if m.err != nil {
		return bot.RoleMember, m.err
	}
	return m.role, nil
}

type mockQuota struct {
	allowed bool
	count   int
	userID  int64
	today   string
	calls   int
}

func (m *mockQuota) TryConsume(userID int64, today string) (bool, int) {
	m.calls++
	m.userID = userID
	m.today = today
	return m.allowed, m.count
}

// fakeClock returns a programmable instant and civil date.
type fakeClock struct {
	now   time.Time
	today string
}

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) Today() string  { return f.today }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }
