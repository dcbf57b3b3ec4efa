package internal

import "time"

// Clock returns the current point in time. Services use it to split shows into past and upcoming ones
type Clock func() time.Time

// SystemClock is the clock used in production
func SystemClock() time.Time {
	return time.Now()
}
