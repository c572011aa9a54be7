package clock

import (
	"sync"
	"time"
)

// Fake is a virtual clock and scheduler for tests. Time only moves on
// Advance or Set, and due schedules fire synchronously in deadline order.
//
// Schedules run on their own monotonic timeline; Set steps the wall clock
// seen through Now without shifting that timeline, like a system clock
// adjustment under a running time.Ticker.
type Fake struct {
	mu        sync.Mutex
	now       time.Time
	skew      time.Duration
	nextID    uint64
	schedules []*fakeSchedule
}

type fakeSchedule struct {
	fake     *Fake
	id       uint64
	interval time.Duration
	next     time.Time
	fn       func()
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the virtual time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now.Add(fake.skew)
}

// Every registers fn to run each interval of virtual time.
func (fake *Fake) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic("clock: non-positive interval for Every")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.nextID++
	schedule := &fakeSchedule{
		fake:     fake,
		id:       fake.nextID,
		interval: interval,
		next:     fake.now.Add(interval),
		fn:       fn,
	}
	fake.schedules = append(fake.schedules, schedule)
	return schedule
}

// Advance moves virtual time forward by delta, firing every schedule that
// comes due on the way. Schedules created or cancelled by a fired function
// take effect for the rest of the advance.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		due := fake.earliestDueLocked(target)
		if due == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fake.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn
		fake.mu.Unlock()

		fn()
	}
}

// Set steps the wall clock to now without firing anything. Pending
// schedules keep their cadence.
func (fake *Fake) Set(now time.Time) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.skew = now.Sub(fake.now)
}

// Active returns the number of live schedules.
func (fake *Fake) Active() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.schedules)
}

func (fake *Fake) earliestDueLocked(target time.Time) *fakeSchedule {
	var due *fakeSchedule
	for _, schedule := range fake.schedules {
		if schedule.next.After(target) {
			continue
		}
		if due == nil || schedule.next.Before(due.next) ||
			(schedule.next.Equal(due.next) && schedule.id < due.id) {
			due = schedule
		}
	}
	return due
}

func (schedule *fakeSchedule) Cancel() {
	fake := schedule.fake
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for i, candidate := range fake.schedules {
		if candidate == schedule {
			fake.schedules = append(fake.schedules[:i], fake.schedules[i+1:]...)
			return
		}
	}
}
