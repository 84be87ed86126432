package clock

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bloomcycle/engagement/internal/port/outbound"
)

// systemClock implements outbound.ClockPort on the wall clock.
type systemClock struct {
	loc *time.Location
	now func() time.Time
}

// NewSystemClock creates a clock reporting calendar days in loc. A nil loc uses time.Local.
func NewSystemClock(loc *time.Location) outbound.ClockPort {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc, now: time.Now}
}

func (c *systemClock) Today() civil.Date {
	return civil.DateOf(c.now().In(c.loc))
}

// ManualClock is a settable clock for previews and tests.
type ManualClock struct {
	mu  sync.Mutex
	day civil.Date
}

// NewManualClock creates a clock fixed at day.
func NewManualClock(day civil.Date) *ManualClock {
	return &ManualClock{day: day}
}

// Today returns the current day of the clock.
func (c *ManualClock) Today() civil.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// Set moves the clock to day.
func (c *ManualClock) Set(day civil.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = day
}

// Advance moves the clock by n days. Negative n moves it backwards.
func (c *ManualClock) Advance(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = c.day.AddDays(n)
}

// Compile-time checks
var (
	_ outbound.ClockPort = (*systemClock)(nil)
	_ outbound.ClockPort = (*ManualClock)(nil)
)
