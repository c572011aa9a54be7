package notify

import (
	"lookaway/internal/core/cycle"

	"github.com/gen2brain/beeep"
)

// Desktop raises a native desktop notification.
type Desktop struct {
	send func(title, message string) error
}

// NewDesktop returns a Desktop sender backed by beeep.
func NewDesktop() *Desktop {
	return &Desktop{send: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Name implements Sender.
func (desktop *Desktop) Name() string {
	return "desktop"
}

// Send implements Sender.
func (desktop *Desktop) Send(transition cycle.Transition) error {
	title, body := Message(transition)
	return desktop.send(title, body)
}
