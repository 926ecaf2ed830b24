package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ServeWS is the session gateway. Frames from one connection are handled
// one at a time, in order, on this goroutine.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := ws.NewClient(conn, ws.CodecFor(conn.Subprotocol()), h.opts.WS)

	l := log.With().Str("client_id", client.ID().String()).Logger()
	l.Info().Str("codec", client.Codec().Name()).Str("remote", r.RemoteAddr).Msg("New client connected")

	h.Registry.Register(client)
	go client.WritePump()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-client.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	defer func() {
		h.Registry.Unregister(client.ID())
		client.Close()
		l.Info().Msg("Client disconnected")
	}()

	for {
		env, err := client.ReadEnvelope()
		if err != nil {
			var frameErr *ws.FrameError
			if errors.As(err, &frameErr) {
				l.Warn().Err(err).Msg("Dropping undecodable frame")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			return
		}

		if err := h.Relay.Handle(ctx, client, env); err != nil {
			switch {
			case errors.Is(err, domain.ErrMalformedMessage), errors.Is(err, domain.ErrUnknownEvent):
				l.Warn().Err(err).Str("event", env.Event.String()).Msg("Dropping message")
			default:
				l.Error().Err(err).Str("event", env.Event.String()).Msg("Failed to handle message")
			}
		}
	}
}
