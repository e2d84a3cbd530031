package clock

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

// Clock yields the current instant. Handlers derive "today" from it so that
// every date-dependent result is reproducible under a fake.
type Clock interface {
	Now() time.Time
}

// Today returns the UTC calendar date of c.Now().
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now().UTC())
}

// RealClock returns the real current time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock is a controllable clock for tests. Safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a FakeClock set to the given time.
func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

// NewFakeOn creates a FakeClock at noon UTC of the given day.
func NewFakeOn(d civil.Date) *FakeClock {
	return NewFake(d.In(time.UTC).Add(12 * time.Hour))
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t.UTC()
}

// AdvanceDays moves the clock forward by n calendar days.
func (f *FakeClock) AdvanceDays(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.AddDate(0, 0, n)
}
