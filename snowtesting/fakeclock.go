package snowtesting

import (
	"sync"
	"sync/atomic"
	"time"
)

// FakeClock is a settable millisecond clock. It satisfies snowflakeid.Clock
// and is safe to move from one goroutine while generators read it from
// others.
type FakeClock struct {
	ms    atomic.Int64
	reads atomic.Int64

	mu  sync.Mutex
	err error
}

func NewFakeClock(startMS int64) *FakeClock {
	c := &FakeClock{}
	c.ms.Store(startMS)
	return c
}

func (c *FakeClock) UnixMilli() (int64, error) {
	c.reads.Add(1)
	c.mu.Lock()
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return c.ms.Load(), nil
}

func (c *FakeClock) Now() int64 { return c.ms.Load() }

// Set moves the clock to ms, backwards as readily as forwards
func (c *FakeClock) Set(ms int64) { c.ms.Store(ms) }

// Advance moves the clock forward by d, truncated to whole milliseconds
func (c *FakeClock) Advance(d time.Duration) int64 {
	return c.ms.Add(int64(d / time.Millisecond))
}

// AdvanceAfter moves the clock forward by d once wait has elapsed
func (c *FakeClock) AdvanceAfter(wait time.Duration, d time.Duration) *time.Timer {
	return time.AfterFunc(wait, func() { c.Advance(d) })
}

// SetError makes every subsequent read fail with err, nil restores normal
// reads.
func (c *FakeClock) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Reads counts calls to UnixMilli
func (c *FakeClock) Reads() int64 { return c.reads.Load() }

// WaitForReads blocks until at least n reads have been made or timeout elapses.
// Returns false on timeout.
func (c *FakeClock) WaitForReads(n int64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for c.reads.Load() < n {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
