package timekeeper

import "time"

// EventType defines the type of engine event.
type EventType string

const (
	EventStart    EventType = "start"
	EventTick     EventType = "tick"
	EventComplete EventType = "complete"
	EventStop     EventType = "stop"
	EventPause    EventType = "pause"
	EventResume   EventType = "resume"
	EventReset    EventType = "reset"
)

// Event is an engine update for observers.
type Event struct {
	Type     EventType
	Name     string
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is a point-in-time view of an engine.
type Snapshot struct {
	Name         string
	Running      bool
	Paused       bool
	Remaining    time.Duration
	MaxRemaining time.Duration
	Progress     float64
	Display      string
}
