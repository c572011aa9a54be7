package notify

import (
	"sync/atomic"

	"lookaway/internal/core/cycle"
)

// Toggle wraps a sender that can be switched off at runtime.
type Toggle struct {
	Sender
	enabled atomic.Bool
}

// NewToggle wraps sender.
func NewToggle(sender Sender, enabled bool) *Toggle {
	toggle := &Toggle{Sender: sender}
	toggle.enabled.Store(enabled)
	return toggle
}

// SetEnabled switches delivery on or off.
func (toggle *Toggle) SetEnabled(enabled bool) {
	toggle.enabled.Store(enabled)
}

// Enabled reports whether transitions are delivered.
func (toggle *Toggle) Enabled() bool {
	return toggle.enabled.Load()
}

// Send delivers transition when enabled.
func (toggle *Toggle) Send(transition cycle.Transition) error {
	if !toggle.enabled.Load() {
		return nil
	}
	return toggle.Sender.Send(transition)
}
