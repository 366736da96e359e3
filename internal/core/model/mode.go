package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDefaultMode indicates a default mode other than "stopwatch" or "clock".
var ErrInvalidDefaultMode = errors.New("invalid default mode")

// WatchMode is the active operating mode of the watch.
type WatchMode string

const (
	ModeClock            WatchMode = "clock"
	ModeStopwatchRunning WatchMode = "stopwatch_running"
	ModeStopwatchStopped WatchMode = "stopwatch_stopped"
)

// IsStopwatch reports whether the mode is one of the stopwatch sub-states.
func (mode WatchMode) IsStopwatch() bool {
	return mode == ModeStopwatchRunning || mode == ModeStopwatchStopped
}

// Persisted returns the mode a save file can restore: a stopwatch is
// always restored stopped.
func (mode WatchMode) Persisted() WatchMode {
	if mode.IsStopwatch() {
		return ModeStopwatchStopped
	}
	return ModeClock
}

// Valid reports whether mode is one of the known modes.
func (mode WatchMode) Valid() bool {
	switch mode {
	case ModeClock, ModeStopwatchRunning, ModeStopwatchStopped:
		return true
	}
	return false
}

// ParseDefaultMode maps the settings value to an initial mode.
func ParseDefaultMode(value string) (WatchMode, error) {
	switch value {
	case "stopwatch":
		return ModeStopwatchStopped, nil
	case "clock":
		return ModeClock, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDefaultMode, value)
}

// Button is a discrete user event delivered with a tick.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonSwitch
	ButtonStartStop
	ButtonReset
	ButtonQuit
)

func (button Button) String() string {
	switch button {
	case ButtonNone:
		return "none"
	case ButtonSwitch:
		return "switch"
	case ButtonStartStop:
		return "start_stop"
	case ButtonReset:
		return "reset"
	case ButtonQuit:
		return "quit"
	}
	return fmt.Sprintf("button(%d)", uint8(button))
}
