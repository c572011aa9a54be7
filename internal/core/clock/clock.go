// Package clock abstracts wall-clock reads and repeating schedules so the
// countdown engines can run against real time or a virtual test clock.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// Handle cancels a repeating schedule.
type Handle interface {
	// Cancel stops future invocations. It is safe to call more than once
	// and from inside the scheduled function itself.
	Cancel()
}

// Scheduler runs fn every interval until the returned Handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// System is the real clock and ticker scheduler.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Every starts a ticker goroutine that calls fn on each tick.
func (System) Every(interval time.Duration, fn func()) Handle {
	handle := &tickerHandle{done: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.done:
				return
			case <-ticker.C:
				select {
				case <-handle.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return handle
}

type tickerHandle struct {
	once sync.Once
	done chan struct{}
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.done)
	})
}
