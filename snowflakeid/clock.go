package snowflakeid

import (
	"fmt"
	"time"
)

// The nanosecond unix time overflows an int64 on 2262
// https://pkg.go.dev/time#Time.UnixNano. This is used for an error clause
// that is essentially about catching serious clock configuration issues.
var UnixNanoEpochEndSentinel = time.Date(2261, 1, 1, 1, 1, 1, 1, time.UTC) // this is a year before the limit

// Clock supplies the current time in milliseconds since the unix epoch.
type Clock interface {
	UnixMilli() (int64, error)
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() (int64, error)

func (f ClockFunc) UnixMilli() (int64, error) { return f() }

type wallClock struct{}

// WallClock reads the system wall clock on every call. It is the default for
// New. Wall clock time is subject to ntp adjustment and can step backwards,
// the generator stalls through such steps.
func WallClock() Clock { return wallClock{} }

func (wallClock) UnixMilli() (int64, error) {
	// DONT do UTC() here, it makes no difference to the reading and strips the
	// monotonic sample.
	now := time.Now()

	// The practical value of this guard is defending against clock
	// configuration issues (which may manifest during VM maintenance cycles for
	// example)
	if now.After(UnixNanoEpochEndSentinel) {
		return 0, fmt.Errorf("the clock reading %d is close to overflowing the limit of an int64: %w", now.Unix(), ErrClockError)
	}
	return now.UnixMilli(), nil
}

type monotonicClock struct {
	start   time.Time // includes the monotonic clock reading
	startMS int64
}

// MonotonicClock samples the wall clock once and thereafter advances it by the
// process monotonic clock. It never goes backwards, so a generator using it
// never stalls on clock regression. Forward adjustments to the wall clock made
// during the process life are not seen.
func MonotonicClock() Clock {
	now := time.Now()
	return &monotonicClock{start: now, startMS: now.UnixMilli()}
}

func (c *monotonicClock) UnixMilli() (int64, error) {
	// Both samples carry a monotonic reading, so Since is immune to wall clock
	// steps.
	return c.startMS + int64(time.Since(c.start)/time.Millisecond), nil
}
