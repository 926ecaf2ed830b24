package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrClientClosed = errors.New("client closed")

type Config struct {
	// SendQueue bounds the outbound frames waiting for the write pump.
	SendQueue int
	// WriteWait is the time allowed to write one frame.
	WriteWait time.Duration
	// PongWait is the time allowed to read the next pong.
	PongWait time.Duration
	// PingPeriod must be less than PongWait.
	PingPeriod time.Duration
	// MaxMessageBytes caps inbound frames.
	MaxMessageBytes int64
}

func DefaultConfig() Config {
	return Config{
		SendQueue:       256,
		WriteWait:       10 * time.Second,
		PongWait:        60 * time.Second,
		PingPeriod:      54 * time.Second,
		MaxMessageBytes: 64 * 1024,
	}
}

// Client wraps one websocket connection. Reads happen on the caller's
// goroutine through ReadEnvelope; all writes go through WritePump.
type Client struct {
	id    domain.ConnID
	conn  *websocket.Conn
	codec Codec
	cfg   Config

	send      chan domain.Envelope
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func NewClient(conn *websocket.Conn, codec Codec, cfg Config) *Client {
	c := &Client{
		id:    domain.NewConnID(),
		conn:  conn,
		codec: codec,
		cfg:   cfg,
		send:  make(chan domain.Envelope, cfg.SendQueue),
		done:  make(chan struct{}),
	}

	conn.SetReadLimit(cfg.MaxMessageBytes)
	conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})
	return c
}

func (c *Client) ID() domain.ConnID {
	return c.id
}

func (c *Client) Codec() Codec {
	return c.codec
}

// Send queues env for the write pump, blocking while the queue is full.
func (c *Client) Send(ctx context.Context, env domain.Envelope) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- env:
		return nil
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close is safe to call more than once and from any goroutine.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.cfg.WriteWait))
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Done is closed once Close has been called.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// FrameError reports an inbound frame that could not be decoded. The
// connection is still usable.
type FrameError struct {
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("bad frame: %v", e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// ReadEnvelope blocks for the next frame. A *FrameError means the frame was
// unusable; any other error means the transport is gone.
func (c *Client) ReadEnvelope() (domain.Envelope, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return domain.Envelope{}, err
	}
	env, err := c.codec.Decode(data)
	if err != nil {
		return domain.Envelope{}, &FrameError{Err: err}
	}
	return env, nil
}

// WritePump drains the send queue and keeps the connection alive with
// pings. It returns when the client is closed or a write fails, closing the
// client in both cases.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	l := log.With().Str("client_id", c.id.String()).Logger()

	for {
		select {
		case <-c.done:
			return

		case env := <-c.send:
			data, err := c.codec.Encode(env)
			if err != nil {
				l.Error().Err(err).Str("event", env.Event.String()).Msg("Error encoding message")
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				l.Debug().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteWait)); err != nil {
				l.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
