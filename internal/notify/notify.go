// Package notify delivers cycle transitions to the user and to other
// systems: an audible pop, a desktop notification and an MQTT message.
package notify

import (
	"sync"

	"lookaway/internal/core/cycle"
	"lookaway/internal/logs"

	"github.com/panjf2000/ants"
	"github.com/sirupsen/logrus"
)

// Sender delivers one transition through a single channel.
type Sender interface {
	Name() string
	Send(transition cycle.Transition) error
}

// Dispatcher fans transitions out to senders on a goroutine pool so a slow
// sender never holds up the engine tick that reported the transition.
type Dispatcher struct {
	pool    *ants.Pool
	senders []Sender
	logger  *logrus.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with a pool of size workers.
func NewDispatcher(size int, logger *logrus.Logger, senders ...Sender) (*Dispatcher, error) {
	if size <= 0 {
		size = len(senders)
	}
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = logs.NewLogger("notify")
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{pool: pool, senders: senders, logger: logger}, nil
}

// Notify implements cycle.Notifier.
func (dispatcher *Dispatcher) Notify(transition cycle.Transition) {
	for _, sender := range dispatcher.senders {
		sender := sender
		dispatcher.wg.Add(1)
		err := dispatcher.pool.Submit(func() {
			defer dispatcher.wg.Done()
			if err := sender.Send(transition); err != nil {
				dispatcher.logger.WithError(err).WithField("sender", sender.Name()).Warn("notification failed")
			}
		})
		if err != nil {
			dispatcher.wg.Done()
			dispatcher.logger.WithError(err).WithField("sender", sender.Name()).Warn("notification dropped")
		}
	}
}

// Close waits for pending notifications and releases the pool.
func (dispatcher *Dispatcher) Close() {
	dispatcher.wg.Wait()
	dispatcher.pool.Release()
}

// Message returns the user-facing title and body for a transition.
func Message(transition cycle.Transition) (string, string) {
	if transition.To == cycle.PhaseLookAway {
		return "Look away", "Rest your eyes on something far away."
	}
	return "Back to work", "The look-away break is over."
}
