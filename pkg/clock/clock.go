package clock

import "time"

// Clock abstracts the "now" source so time-window logic stays testable.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func NewSystem() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	Instant time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Instant: t}
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

// Set moves the fixed clock to a new instant.
func (f *Fixed) Set(t time.Time) {
	f.Instant = t
}
