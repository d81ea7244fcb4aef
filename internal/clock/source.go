// Package clock provides the two interchangeable timing sources behind the
// timer engine: a worker subprocess with its own scheduler and an in-process
// ticker fallback. Both report through the same asynchronous event contract.
package clock

import "time"

// Interval is the tick cadence shared by both source variants, roughly one
// tick per display frame.
const Interval = 16 * time.Millisecond

// eventBufferSize bounds the event channel so a briefly stalled consumer
// does not block the timing loop.
const eventBufferSize = 128

// Kind tags an event reported by a clock source.
type Kind int

const (
	// KindReady signals the source is up and accepting control calls.
	KindReady Kind = iota + 1

	// KindTick is the periodic display-refresh notification. The elapsed
	// value it carries is authoritative; tick counting never is.
	KindTick

	// KindStarted acknowledges StartFrom, echoing the accepted value.
	KindStarted

	// KindPaused acknowledges Pause with the elapsed value at that instant.
	KindPaused

	// KindReset acknowledges Reset; elapsed is always zero.
	KindReset

	// KindState answers QueryState with the running flag and elapsed value.
	KindState

	// KindFault reports that the source failed and will emit nothing more.
	// ElapsedMs carries the last value reported before the failure.
	KindFault
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindReady:
		return "ready"
	case KindTick:
		return "tick"
	case KindStarted:
		return "started"
	case KindPaused:
		return "paused"
	case KindReset:
		return "reset"
	case KindState:
		return "state"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Event is a clock source report. Running is meaningful for KindState only.
type Event struct {
	Kind      Kind
	ElapsedMs int64
	Running   bool
}

// Source is a clock that advances elapsed time on behalf of the engine.
// Control calls are fire-and-forget and never block on the timing loop;
// every outcome arrives as an Event on the Events channel, which is closed
// once the source stops for good.
type Source interface {
	// StartFrom begins advancing elapsed time from ms. A second StartFrom
	// while already running is a no-op.
	StartFrom(ms int64)

	// Pause stops advancing. A Pause while not running is a no-op.
	Pause()

	// Reset stops the clock and zeroes elapsed time unconditionally.
	Reset()

	// QueryState requests a state report without side effects.
	QueryState()

	// Events returns the channel the source reports on.
	Events() <-chan Event

	// Close tears the source down and releases its resources.
	Close() error
}
