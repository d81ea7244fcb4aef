package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for clock messages, configured for
// deterministic output so identical messages encode identically.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode, kept lenient for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// EncodeCommand encodes a controller-to-clock command.
func EncodeCommand(cmd Command) ([]byte, error) {
	if !cmd.Type.IsValid() {
		return nil, fmt.Errorf("%w: command %d", ErrUnknownMessage, cmd.Type)
	}
	return encMode.Marshal(cmd)
}

// DecodeCommand decodes a controller-to-clock command. Frames with a type
// tag outside the protocol decode to ErrUnknownMessage, which receivers
// treat as log-and-skip.
func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := decMode.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to decode command: %w", err)
	}
	if !cmd.Type.IsValid() {
		return Command{}, fmt.Errorf("%w: command %d", ErrUnknownMessage, cmd.Type)
	}
	return cmd, nil
}

// EncodeEvent encodes a clock-to-controller event.
func EncodeEvent(evt Event) ([]byte, error) {
	if !evt.Type.IsValid() {
		return nil, fmt.Errorf("%w: event %d", ErrUnknownMessage, evt.Type)
	}
	return encMode.Marshal(evt)
}

// DecodeEvent decodes a clock-to-controller event. Unknown type tags
// decode to ErrUnknownMessage.
func DecodeEvent(data []byte) (Event, error) {
	var evt Event
	if err := decMode.Unmarshal(data, &evt); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if !evt.Type.IsValid() {
		return Event{}, fmt.Errorf("%w: event %d", ErrUnknownMessage, evt.Type)
	}
	return evt, nil
}
