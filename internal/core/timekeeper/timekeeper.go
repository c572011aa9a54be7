package timekeeper

import (
	"fmt"
	"sync"
	"time"

	"lookaway/internal/core/clock"
	"lookaway/internal/core/display"
	"lookaway/internal/core/model"
	"lookaway/internal/logs"

	"github.com/sirupsen/logrus"
)

// EndTimeEpsilon is added to every computed end time so scheduling jitter
// cannot produce a zero crossing before the full span has elapsed.
const EndTimeEpsilon = 10 * time.Millisecond

// Options contains runtime collaborators for an Engine.
type Options struct {
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *logrus.Logger
}

// Engine is a countdown that ticks on a fixed cadence and recomputes the
// remaining time from the wall clock on every tick.
type Engine struct {
	mu           sync.Mutex
	config       model.TimerConfig
	clock        clock.Clock
	scheduler    clock.Scheduler
	logger       *logrus.Entry
	onComplete   func()
	handle       clock.Handle
	generation   uint64
	targetEnd    time.Time
	remaining    time.Duration
	maxRemaining time.Duration
	paused       bool
	closed       bool
	events       []chan Event
}

// New creates an idle Engine. Invalid configurations are rejected with an
// error wrapping model.ErrInvalidConfig.
func New(config model.TimerConfig, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new timer %q: %w", config.Name, err)
	}
	if config.DisplayFormat == "" {
		config.DisplayFormat = display.DefaultPattern
	}
	if options.Clock == nil {
		options.Clock = clock.System{}
	}
	if options.Scheduler == nil {
		options.Scheduler = clock.System{}
	}
	if options.Logger == nil {
		options.Logger = logs.NewLogger("timekeeper")
	}

	engine := &Engine{
		config:     config,
		clock:      options.Clock,
		scheduler:  options.Scheduler,
		logger:     options.Logger.WithField("timer", config.Name),
		onComplete: config.OnComplete,
	}
	engine.rearmLocked(engine.clock.Now())
	return engine, nil
}

// Name returns the configured timer name.
func (engine *Engine) Name() string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config.Name
}

// Start begins the countdown from the full span. It is a no-op while running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.handle != nil {
		return
	}
	now := engine.clock.Now()
	engine.paused = false
	engine.rearmLocked(now)
	engine.scheduleLocked()
	engine.logger.WithField("remaining", engine.remaining).Debug("started")
	engine.emitLocked(EventStart, now)
}

// Stop cancels the countdown and discards its progress: remaining returns to
// the full span.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	wasActive := engine.handle != nil || engine.paused
	engine.cancelLocked()
	engine.paused = false
	now := engine.clock.Now()
	engine.rearmLocked(now)
	if wasActive {
		engine.logger.Debug("stopped")
		engine.emitLocked(EventStop, now)
	}
}

// Pause cancels the countdown but keeps the remaining time for Resume.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.handle == nil {
		return
	}
	now := engine.clock.Now()
	engine.remaining = engine.remainingAtLocked(now)
	engine.cancelLocked()
	engine.paused = true
	engine.logger.WithField("remaining", engine.remaining).Debug("paused")
	engine.emitLocked(EventPause, now)
}

// Resume continues a paused countdown from the frozen remaining time.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || !engine.paused {
		return
	}
	now := engine.clock.Now()
	engine.paused = false
	engine.targetEnd = now.Add(engine.remaining)
	engine.scheduleLocked()
	engine.logger.WithField("remaining", engine.remaining).Debug("resumed")
	engine.emitLocked(EventResume, now)
}

// Reset restarts the countdown from the full span without touching the
// schedule: a running engine keeps running, an idle one stays idle.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	now := engine.clock.Now()
	engine.rearmLocked(now)
	engine.logger.Debug("reset")
	engine.emitLocked(EventReset, now)
}

// SetEndCallback replaces the completion callback. The callback registered
// when the countdown reaches zero is the one that runs.
func (engine *Engine) SetEndCallback(callback func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onComplete = callback
}

// UpdateConfig replaces duration, unit, cadence and display format. An idle
// engine is re-armed with the new span; a running one keeps its current end
// time and picks up the new cadence immediately. The callback slot is kept.
func (engine *Engine) UpdateConfig(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("update timer %q: %w", engine.Name(), err)
	}
	if config.DisplayFormat == "" {
		config.DisplayFormat = display.DefaultPattern
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	cadenceChanged := config.RefreshInterval != engine.config.RefreshInterval
	config.Name = engine.config.Name
	config.OnComplete = engine.config.OnComplete
	engine.config = config

	switch {
	case engine.handle != nil:
		if cadenceChanged {
			engine.cancelLocked()
			engine.scheduleLocked()
		}
	case !engine.paused:
		engine.rearmLocked(engine.clock.Now())
	}
	return nil
}

// Close cancels any schedule and closes subscriptions. The engine never
// ticks again afterwards.
func (engine *Engine) Close() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.closed = true
	engine.cancelLocked()
	engine.paused = false
	for _, ch := range engine.events {
		close(ch)
	}
	engine.events = nil
}

// Subscribe registers an observer channel. Slow observers miss events
// rather than blocking the engine.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// IsRunning reports whether a tick schedule is live.
func (engine *Engine) IsRunning() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.handle != nil
}

// IsPaused reports whether the engine holds a paused countdown.
func (engine *Engine) IsPaused() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.paused
}

// Remaining returns the time left as of the last tick or operation.
func (engine *Engine) Remaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// MaxRemaining returns the remaining time at the moment the countdown last
// began.
func (engine *Engine) MaxRemaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.maxRemaining
}

// Progress returns the elapsed fraction of the countdown in [0, 1].
func (engine *Engine) Progress() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.progressLocked()
}

// Display renders Remaining with the configured display format.
func (engine *Engine) Display() string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return display.Format(engine.remaining, engine.config.DisplayFormat)
}

// Snapshot returns all read accessors as one consistent value.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if engine.handle == nil || generation != engine.generation {
		engine.mu.Unlock()
		return
	}

	now := engine.clock.Now()
	diff := engine.remainingAtLocked(now)
	if diff > 0 {
		engine.remaining = diff
		engine.emitLocked(EventTick, now)
		engine.mu.Unlock()
		return
	}

	// The schedule is cancelled before the callback runs so a callback
	// that restarts this engine gets a fresh schedule.
	engine.cancelLocked()
	engine.remaining = 0
	callback := engine.onComplete
	engine.emitLocked(EventComplete, now)
	engine.mu.Unlock()

	engine.logger.Debug("completed")
	if callback != nil {
		callback()
	}
}

func (engine *Engine) scheduleLocked() {
	engine.generation++
	generation := engine.generation
	engine.handle = engine.scheduler.Every(engine.config.RefreshInterval, func() {
		engine.tick(generation)
	})
}

func (engine *Engine) cancelLocked() {
	if engine.handle == nil {
		return
	}
	engine.handle.Cancel()
	engine.handle = nil
}

func (engine *Engine) rearmLocked(now time.Time) {
	engine.targetEnd = now.Add(engine.config.Span() + EndTimeEpsilon)
	engine.maxRemaining = engine.targetEnd.Sub(now)
	engine.remaining = engine.maxRemaining
}

// remainingAtLocked clamps to [0, maxRemaining]; the wall clock may step in
// either direction.
func (engine *Engine) remainingAtLocked(now time.Time) time.Duration {
	diff := engine.targetEnd.Sub(now)
	if diff < 0 {
		return 0
	}
	if diff > engine.maxRemaining {
		return engine.maxRemaining
	}
	return diff
}

func (engine *Engine) progressLocked() float64 {
	if engine.maxRemaining <= 0 {
		return 1
	}
	progress := float64(engine.maxRemaining-engine.remaining) / float64(engine.maxRemaining)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Name:         engine.config.Name,
		Running:      engine.handle != nil,
		Paused:       engine.paused,
		Remaining:    engine.remaining,
		MaxRemaining: engine.maxRemaining,
		Progress:     engine.progressLocked(),
		Display:      display.Format(engine.remaining, engine.config.DisplayFormat),
	}
}

func (engine *Engine) emitLocked(eventType EventType, now time.Time) {
	if len(engine.events) == 0 {
		return
	}
	event := Event{
		Type:     eventType,
		Name:     engine.config.Name,
		Snapshot: engine.snapshotLocked(),
		At:       now,
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
