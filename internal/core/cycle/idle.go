package cycle

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// IdleConfig controls idle resets of the work phase.
type IdleConfig struct {
	ResetAfter    time.Duration
	CheckInterval time.Duration
}

// WatchIdle polls checker and restarts a running work phase once the user
// has been inactive for ResetAfter. A previous watch is replaced.
func (c *Cycle) WatchIdle(checker IdleChecker, config IdleConfig) {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	if config.ResetAfter <= 0 {
		config.ResetAfter = 5 * time.Minute
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idleWatch != nil {
		c.idleWatch.Cancel()
	}
	c.idleWatch = c.scheduler.Every(config.CheckInterval, func() {
		c.checkIdle(checker, config.ResetAfter)
	})
}

// StopIdleWatch cancels idle polling.
func (c *Cycle) StopIdleWatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idleWatch != nil {
		c.idleWatch.Cancel()
		c.idleWatch = nil
	}
}

func (c *Cycle) checkIdle(checker IdleChecker, resetAfter time.Duration) {
	if !c.work.IsRunning() {
		return
	}

	idle, err := checker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			c.logger.WithError(err).Warn("idle reset disabled")
			c.StopIdleWatch()
			return
		}
		c.logger.WithError(err).Warn("idle check failed")
		return
	}
	if idle >= resetAfter {
		c.work.Reset()
		c.logger.WithFields(logrus.Fields{"idle": idle}).Info("idle reset of work phase")
	}
}
