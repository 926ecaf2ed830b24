package domain

import (
	"fmt"
)

// RoomKey is the only payload key the relay reads.
const RoomKey = "room"

// Payload is forwarded verbatim. Only RoomKey is ever inspected.
type Payload map[string]any

// Room extracts the target room. A missing, non-string or empty value is a
// malformed message.
func (p Payload) Room() (RoomID, error) {
	raw, ok := p[RoomKey]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedMessage, RoomKey)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrMalformedMessage, RoomKey, raw)
	}
	if s == "" {
		return "", fmt.Errorf("%w: empty %q", ErrMalformedMessage, RoomKey)
	}
	return RoomID(s), nil
}

// Envelope is the unit exchanged over the wire in both directions.
type Envelope struct {
	Event   Event   `json:"event" msgpack:"event"`
	Payload Payload `json:"data" msgpack:"data"`
}

func NewEnvelope(event Event, payload Payload) Envelope {
	if payload == nil {
		payload = Payload{}
	}
	return Envelope{
		Event:   event,
		Payload: payload,
	}
}
