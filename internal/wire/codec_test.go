package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestCommandRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{
			name: "start from zero",
			cmd:  Command{Type: CmdStart},
		},
		{
			name: "start from paused value",
			cmd:  Command{Type: CmdStart, FromMs: 83250},
		},
		{
			name: "pause",
			cmd:  Command{Type: CmdPause},
		},
		{
			name: "reset",
			cmd:  Command{Type: CmdReset},
		},
		{
			name: "query state",
			cmd:  Command{Type: CmdQueryState},
		},
		{
			name: "shutdown",
			cmd:  Command{Type: CmdShutdown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeCommand(tt.cmd)
			if err != nil {
				t.Fatalf("EncodeCommand failed: %v", err)
			}

			got, err := DecodeCommand(data)
			if err != nil {
				t.Fatalf("DecodeCommand failed: %v", err)
			}
			if got != tt.cmd {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tt.cmd)
			}
		})
	}
}

func TestEventRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		evt  Event
	}{
		{
			name: "ready",
			evt:  Event{Type: EvtReady},
		},
		{
			name: "tick",
			evt:  Event{Type: EvtTick, Elapsed: 16},
		},
		{
			name: "started echoes origin",
			evt:  Event{Type: EvtStarted, Elapsed: 83250},
		},
		{
			name: "paused",
			evt:  Event{Type: EvtPaused, Elapsed: 4210},
		},
		{
			name: "reset",
			evt:  Event{Type: EvtReset},
		},
		{
			name: "state running",
			evt:  Event{Type: EvtState, Elapsed: 125000, Running: true},
		},
		{
			name: "state stopped",
			evt:  Event{Type: EvtState, Elapsed: 125000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.evt)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}

			got, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}
			if got != tt.evt {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tt.evt)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	cmd := Command{Type: CmdStart, FromMs: 1500}

	first, err := EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	second, err := EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("encodings differ: %x vs %x", first, second)
	}
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	if _, err := EncodeCommand(Command{Type: 0}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage for zero command, got %v", err)
	}
	if _, err := EncodeCommand(Command{Type: 200}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage for out-of-range command, got %v", err)
	}
	if _, err := EncodeEvent(Event{Type: 0}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage for zero event, got %v", err)
	}
	if _, err := EncodeEvent(Event{Type: 200}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage for out-of-range event, got %v", err)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	// Well-formed CBOR map {1: 99}, a type tag outside the protocol.
	data := []byte{0xa1, 0x01, 0x18, 0x63}

	if _, err := DecodeCommand(data); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage from DecodeCommand, got %v", err)
	}
	if _, err := DecodeEvent(data); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage from DecodeEvent, got %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd}

	if _, err := DecodeCommand(garbage); err == nil {
		t.Error("expected error decoding garbage command")
	}
	if _, err := DecodeEvent(garbage); err == nil {
		t.Error("expected error decoding garbage event")
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	// {1: 2, 2: 16, 9: "future"}: field 9 is from a newer protocol
	// revision and must not break older receivers.
	data := []byte{
		0xa3,
		0x01, 0x02,
		0x02, 0x10,
		0x09, 0x66, 'f', 'u', 't', 'u', 'r', 'e',
	}

	evt, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if evt.Type != EvtTick {
		t.Errorf("Type = %v, want EvtTick", evt.Type)
	}
	if evt.Elapsed != 16 {
		t.Errorf("Elapsed = %d, want 16", evt.Elapsed)
	}
}

func TestTypeStrings(t *testing.T) {
	commands := map[CommandType]string{
		CmdStart:        "start",
		CmdPause:        "pause",
		CmdReset:        "reset",
		CmdQueryState:   "queryState",
		CmdShutdown:     "shutdown",
		CommandType(99): "unknown",
	}
	for typ, want := range commands {
		if got := typ.String(); got != want {
			t.Errorf("CommandType(%d).String() = %q, want %q", typ, got, want)
		}
	}

	events := map[EventType]string{
		EvtReady:      "ready",
		EvtTick:       "tick",
		EvtStarted:    "started",
		EvtPaused:     "paused",
		EvtReset:      "reset",
		EvtState:      "state",
		EventType(99): "unknown",
	}
	for typ, want := range events {
		if got := typ.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
