package engine

import "fmt"

// DefaultTargetMs is the countdown target used when none has been set.
const DefaultTargetMs int64 = 5 * 60 * 1000

// Mode selects how elapsed time is interpreted: counting up from zero or
// counting down against a target.
type Mode int

const (
	Stopwatch Mode = iota
	Countdown
)

// String returns the mode name as persisted in preferences.
func (m Mode) String() string {
	switch m {
	case Countdown:
		return "countdown"
	default:
		return "stopwatch"
	}
}

// ParseMode maps a persisted mode name back to its Mode. The empty string
// maps to Stopwatch so a fresh preferences file needs no mode entry.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "stopwatch":
		return Stopwatch, nil
	case "countdown":
		return Countdown, nil
	default:
		return Stopwatch, fmt.Errorf("unknown mode %q", s)
	}
}

// State is the run state of the timer session. Completed is reachable only
// from Countdown mode when remaining time hits zero while Running.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// session is the timer state owned exclusively by the engine. Nothing
// outside the engine mutates it; frontends read copies via Snapshot.
type session struct {
	mode      Mode
	state     State
	elapsedMs int64
	targetMs  int64
	completed bool
}

// Snapshot is a point-in-time copy of the session for display.
type Snapshot struct {
	Mode      Mode
	State     State
	ElapsedMs int64
	TargetMs  int64

	// RemainingMs is the countdown remainder, clamped at zero.
	RemainingMs int64

	// DisplayMs is the value the display formats: remaining time in
	// Countdown mode, elapsed time in Stopwatch mode.
	DisplayMs int64

	// Degraded is true once the fallback clock has taken over.
	Degraded bool
}

// Config seeds the session from saved preferences.
type Config struct {
	Mode     Mode
	TargetMs int64
}
