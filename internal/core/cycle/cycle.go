// Package cycle alternates a work engine and a look-away engine, each
// starting the other when it completes.
package cycle

import (
	"fmt"
	"sync"
	"time"

	"lookaway/internal/core/clock"
	"lookaway/internal/core/timekeeper"
	"lookaway/internal/logs"

	"github.com/sirupsen/logrus"
)

// Phase names which engine of the cycle is active.
type Phase string

const (
	PhaseWork     Phase = "work"
	PhaseLookAway Phase = "look away"
)

// Other returns the phase that follows phase.
func (phase Phase) Other() Phase {
	if phase == PhaseWork {
		return PhaseLookAway
	}
	return PhaseWork
}

// Transition is reported when a countdown completes and hands over to the
// other phase.
type Transition struct {
	From Phase
	To   Phase
	At   time.Time
}

// Notifier receives transitions. Implementations must not block: they are
// called from the completing engine's tick.
type Notifier interface {
	Notify(transition Transition)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Transition)

// Notify calls fn.
func (fn NotifierFunc) Notify(transition Transition) {
	fn(transition)
}

// Status is a point-in-time view of the whole cycle.
type Status struct {
	Phase    Phase
	Title    string
	Work     timekeeper.Snapshot
	LookAway timekeeper.Snapshot
}

// Options contains runtime collaborators for a Cycle.
type Options struct {
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *logrus.Logger
}

// Cycle owns two engines wired to each other's completion callback.
type Cycle struct {
	work      *timekeeper.Engine
	lookAway  *timekeeper.Engine
	notifier  Notifier
	clock     clock.Clock
	scheduler clock.Scheduler
	logger    *logrus.Logger

	mu        sync.Mutex
	idleWatch clock.Handle
}

// New wires work and lookAway into an alternating cycle. The cycle takes
// ownership of both engines and closes them in Close.
func New(work, lookAway *timekeeper.Engine, notifier Notifier, options Options) *Cycle {
	if options.Clock == nil {
		options.Clock = clock.System{}
	}
	if options.Scheduler == nil {
		options.Scheduler = clock.System{}
	}
	if options.Logger == nil {
		options.Logger = logs.NewLogger("cycle")
	}

	c := &Cycle{
		work:      work,
		lookAway:  lookAway,
		notifier:  notifier,
		clock:     options.Clock,
		scheduler: options.Scheduler,
		logger:    options.Logger,
	}

	work.SetEndCallback(func() {
		lookAway.Start()
		c.notify(PhaseWork, PhaseLookAway)
	})
	lookAway.SetEndCallback(func() {
		work.Start()
		c.notify(PhaseLookAway, PhaseWork)
	})
	return c
}

// Work returns the work engine.
func (c *Cycle) Work() *timekeeper.Engine {
	return c.work
}

// LookAway returns the look-away engine.
func (c *Cycle) LookAway() *timekeeper.Engine {
	return c.lookAway
}

// Engine returns the engine for phase.
func (c *Cycle) Engine(phase Phase) *timekeeper.Engine {
	if phase == PhaseLookAway {
		return c.lookAway
	}
	return c.work
}

// Active returns the running engine, else a paused one, else work.
func (c *Cycle) Active() (Phase, *timekeeper.Engine) {
	switch {
	case c.work.IsRunning():
		return PhaseWork, c.work
	case c.lookAway.IsRunning():
		return PhaseLookAway, c.lookAway
	case c.work.IsPaused():
		return PhaseWork, c.work
	case c.lookAway.IsPaused():
		return PhaseLookAway, c.lookAway
	}
	return PhaseWork, c.work
}

// IsRunning reports whether either engine is counting down.
func (c *Cycle) IsRunning() bool {
	return c.work.IsRunning() || c.lookAway.IsRunning()
}

// IsPaused reports whether the active engine holds a paused countdown.
func (c *Cycle) IsPaused() bool {
	_, engine := c.Active()
	return engine.IsPaused()
}

// Toggle switches phases by hand: a running phase is stopped and the other
// one started; a paused phase is resumed; an idle cycle starts working.
// Manual switches are not reported to the notifier.
func (c *Cycle) Toggle() {
	switch {
	case c.work.IsRunning():
		c.switchTo(PhaseLookAway)
	case c.lookAway.IsRunning():
		c.switchTo(PhaseWork)
	case c.work.IsPaused():
		c.work.Resume()
	case c.lookAway.IsPaused():
		c.lookAway.Resume()
	default:
		c.work.Start()
		c.logger.Info("started work phase")
	}
}

// Start begins the work phase unless the cycle is already active.
func (c *Cycle) Start() {
	if c.IsRunning() || c.work.IsPaused() || c.lookAway.IsPaused() {
		return
	}
	c.work.Start()
	c.logger.Info("started work phase")
}

// Stop stops both engines and discards their progress.
func (c *Cycle) Stop() {
	c.work.Stop()
	c.lookAway.Stop()
	c.logger.Info("stopped")
}

// Pause freezes the running phase.
func (c *Cycle) Pause() {
	phase, engine := c.Active()
	if !engine.IsRunning() {
		return
	}
	engine.Pause()
	c.logger.WithField("phase", phase).Info("paused")
}

// Resume continues the paused phase.
func (c *Cycle) Resume() {
	phase, engine := c.Active()
	if !engine.IsPaused() {
		return
	}
	engine.Resume()
	c.logger.WithField("phase", phase).Info("resumed")
}

// Skip ends the active phase early and starts the other one.
func (c *Cycle) Skip() {
	phase, _ := c.Active()
	c.switchTo(phase.Other())
}

// Reset restarts the active phase from its full span.
func (c *Cycle) Reset() {
	phase, engine := c.Active()
	engine.Reset()
	c.logger.WithField("phase", phase).Debug("reset")
}

// Title renders the active engine's display and phase for a window title.
func (c *Cycle) Title() string {
	phase, engine := c.Active()
	return fmt.Sprintf("%s · %s", engine.Display(), phase)
}

// Status returns a snapshot of both engines and the active phase.
func (c *Cycle) Status() Status {
	phase, engine := c.Active()
	return Status{
		Phase:    phase,
		Title:    fmt.Sprintf("%s · %s", engine.Display(), phase),
		Work:     c.work.Snapshot(),
		LookAway: c.lookAway.Snapshot(),
	}
}

// Close stops idle watching and disposes of both engines.
func (c *Cycle) Close() {
	c.StopIdleWatch()
	c.work.Close()
	c.lookAway.Close()
}

func (c *Cycle) switchTo(next Phase) {
	c.Engine(next.Other()).Stop()
	c.Engine(next).Start()
	c.logger.WithField("phase", next).Info("switched phase")
}

func (c *Cycle) notify(from, to Phase) {
	transition := Transition{From: from, To: to, At: c.clock.Now()}
	c.logger.WithFields(logrus.Fields{"from": from, "to": to}).Info("phase complete")
	if c.notifier != nil {
		c.notifier.Notify(transition)
	}
}
