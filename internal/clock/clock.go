package clock

import "time"

// DateLayout is the civil-date form used for quota keys and on disk.
const DateLayout = "2006-01-02"

// Clock supplies the two notions of time the moderation rules depend on:
// a monotonic-ish instant for the flood window and the civil date for the
// daily quota. Tests inject their own implementation.
type Clock interface {
	Now() time.Time
	Today() string
}

type System struct {
	loc *time.Location
}

func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time {
	return time.Now()
}

func (s *System) Today() string {
	return time.Now().In(s.loc).Format(DateLayout)
}
