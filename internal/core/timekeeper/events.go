package timekeeper

import "time"

// EventType defines the type of Driver event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventSkinChanged EventType = "skin_changed"
	EventModeChanged EventType = "mode_changed"
	EventQuit        EventType = "quit"
)

// Event represents a Driver update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}
