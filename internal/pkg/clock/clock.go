// Package clock provides time utilities so turn deadlines can be driven by tests
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/horror-bot/internal/pkg/clock Clock,Timer

// Clock provides time functionality
type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	// Stop prevents the callback from firing. It reports false when the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f using time.AfterFunc
func (c *Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
