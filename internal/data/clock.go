package data

import "time"

// Clock returns the current time. Repos default to time.Now; tests can
// substitute a fixed clock to make created_at/updated_at deterministic.
type Clock func() time.Time

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
