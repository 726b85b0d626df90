package clock

import "time"

// Clock supplies the timestamp used when an order arrives without one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem reads the wall clock, in UTC.
func NewSystem() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct {
	now time.Time
}

// NewFixed pins Now to t so order dates are predictable in tests.
func NewFixed(t time.Time) Clock { return fixedClock{now: t.UTC()} }

func (f fixedClock) Now() time.Time { return f.now }
