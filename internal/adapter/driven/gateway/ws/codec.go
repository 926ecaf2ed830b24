package ws

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	SubprotocolJSON    = "json"
	SubprotocolMsgpack = "msgpack"
)

// Codec converts between frames and envelopes for one negotiated
// subprotocol.
type Codec interface {
	Name() string
	// MessageType is the websocket frame type used for outbound frames.
	MessageType() int
	Encode(env domain.Envelope) ([]byte, error)
	Decode(data []byte) (domain.Envelope, error)
}

var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// Subprotocols lists the subprotocols offered during the upgrade, in order
// of preference.
func Subprotocols() []string {
	return []string{SubprotocolJSON, SubprotocolMsgpack}
}

// CodecFor returns the codec for a negotiated subprotocol. An empty or
// unknown subprotocol falls back to JSON.
func CodecFor(subprotocol string) Codec {
	if subprotocol == SubprotocolMsgpack {
		return Msgpack
	}
	return JSON
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return SubprotocolJSON }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) Encode(env domain.Envelope) ([]byte, error) {
	return json.Marshal(env)
}

// Decode keeps numbers as json.Number so they are re-encoded exactly as
// received.
func (jsonCodec) Decode(data []byte) (domain.Envelope, error) {
	var env domain.Envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return domain.Envelope{}, fmt.Errorf("decode json frame: %w", err)
	}
	return env, nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string     { return SubprotocolMsgpack }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(env domain.Envelope) ([]byte, error) {
	env.Payload = normalizeNumbers(env.Payload).(domain.Payload)
	return msgpack.Marshal(env)
}

func (msgpackCodec) Decode(data []byte) (domain.Envelope, error) {
	var env domain.Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return domain.Envelope{}, fmt.Errorf("decode msgpack frame: %w", err)
	}
	return env, nil
}

// normalizeNumbers turns json.Number values from JSON senders into native
// numbers so msgpack recipients get numbers rather than strings. The input
// is never modified.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case domain.Payload:
		if t == nil {
			return domain.Payload(nil)
		}
		out := make(domain.Payload, len(t))
		for k, e := range t {
			out[k] = normalizeNumbers(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeNumbers(e)
		}
		return out
	default:
		return v
	}
}
