// Package proto implements the wire envelope every signaling frame is
// wrapped in — {"event": "<name>", "data": <value>} — and a
// reference-counted value wrapper so a single parsed payload can be
// pushed onto the ingress queue and read by a handler without a deep
// copy, mirroring the original implementation's jansson refcounting.
package proto

import (
	"encoding/json"
	"errors"
)

// ErrMissingEvent is returned by Decode when the envelope has no
// "event" field, or the field is empty. A non-string "event" fails
// earlier with the JSON decoder's type error instead.
var ErrMissingEvent = errors.New("proto: envelope missing event field")

// wireEnvelope is the exact on-the-wire shape: the two top-level keys
// event and data, with data omitted when it is empty (a nil payload).
type wireEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Envelope is the parsed, in-memory form of a signaling frame. Data
// holds a reference-counted Value so the same parsed payload can be
// shared between the ingress queue and the handler that eventually
// consumes it without re-parsing or copying.
type Envelope struct {
	Event string
	Data  *Value
}

// Decode parses a raw WebSocket text frame into an Envelope. It fails
// if the frame is not valid JSON or lacks a string "event" field — both
// cases are the "malformed envelope" error kind from the error taxonomy,
// which callers turn into a dropped frame plus an error-counter bump.
func Decode(raw []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		return Envelope{}, err
	}
	if w.Event == "" {
		return Envelope{}, ErrMissingEvent
	}

	var data any
	if len(w.Data) > 0 {
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return Envelope{}, err
		}
	}

	return Envelope{Event: w.Event, Data: NewValue(data)}, nil
}

// Encode serializes an outbound envelope. data is a JSON value directly
// — an object for structured events, a plain string for error reasons —
// never a JSON document double-encoded into a string.
func Encode(event string, data any) ([]byte, error) {
	return json.Marshal(wireEnvelope{
		Event: event,
		Data:  mustRawMessage(data),
	})
}

func mustRawMessage(data any) json.RawMessage {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		// Only reachable for values that cannot round-trip through
		// encoding/json (channels, funcs); the signaling layer never
		// builds envelopes from such values.
		return nil
	}
	return b
}
