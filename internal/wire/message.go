package wire

import "errors"

// ErrUnknownMessage marks a decodable frame whose type tag is not part of
// the protocol. Receivers log these and carry on; they are never fatal.
var ErrUnknownMessage = errors.New("unknown message type")

// CommandType tags a controller-to-clock message.
type CommandType uint8

const (
	// CmdStart begins advancing elapsed time from FromMs.
	CmdStart CommandType = iota + 1

	// CmdPause stops advancing and reports the elapsed value at the pause.
	CmdPause

	// CmdReset stops the clock and reports elapsed zero.
	CmdReset

	// CmdQueryState reports the running flag and elapsed value.
	CmdQueryState

	// CmdShutdown asks the clock process to exit cleanly.
	CmdShutdown
)

func (c CommandType) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdReset:
		return "reset"
	case CmdQueryState:
		return "queryState"
	case CmdShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// IsValid reports whether the command type is part of the protocol.
func (c CommandType) IsValid() bool {
	return c >= CmdStart && c <= CmdShutdown
}

// Command is a controller-to-clock message.
//
// CBOR encoding:
//
//	{
//	  1: type,     // uint8
//	  2: fromMs    // uint64, start only
//	}
type Command struct {
	Type   CommandType `cbor:"1,keyasint"`
	FromMs uint64      `cbor:"2,keyasint,omitempty"`
}

// EventType tags a clock-to-controller message.
type EventType uint8

const (
	// EvtReady is sent once when the clock is up and listening.
	EvtReady EventType = iota + 1

	// EvtTick is the periodic display-refresh notification. The elapsed
	// value it carries is authoritative; tick counting never is.
	EvtTick

	// EvtStarted acknowledges a start, echoing the accepted starting value.
	EvtStarted

	// EvtPaused acknowledges a pause with the elapsed value at that instant.
	EvtPaused

	// EvtReset acknowledges a reset; elapsed is always zero.
	EvtReset

	// EvtState answers a queryState with the running flag and elapsed value.
	EvtState
)

func (e EventType) String() string {
	switch e {
	case EvtReady:
		return "ready"
	case EvtTick:
		return "tick"
	case EvtStarted:
		return "started"
	case EvtPaused:
		return "paused"
	case EvtReset:
		return "reset"
	case EvtState:
		return "state"
	default:
		return "unknown"
	}
}

// IsValid reports whether the event type is part of the protocol.
func (e EventType) IsValid() bool {
	return e >= EvtReady && e <= EvtState
}

// Event is a clock-to-controller message.
//
// CBOR encoding:
//
//	{
//	  1: type,     // uint8
//	  2: elapsed,  // uint64 milliseconds
//	  3: running   // bool, state only
//	}
type Event struct {
	Type    EventType `cbor:"1,keyasint"`
	Elapsed uint64    `cbor:"2,keyasint,omitempty"`
	Running bool      `cbor:"3,keyasint,omitempty"`
}
