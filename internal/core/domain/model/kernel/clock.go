package kernel

import "time"

// Clock supplies the current time to handlers that stamp fulfillment events.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to Clock. Tests use it to pin time.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// LaterOf returns t, or floor when t is before it. Fulfillment timestamps pass
// through it so created_at <= packed_at <= shipped_at <= delivered_at holds
// even if the wall clock steps backwards between requests.
func LaterOf(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}
