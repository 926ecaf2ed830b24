package service

import (
	"context"
	"fmt"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/rs/zerolog/log"
)

type handlerFunc func(ctx context.Context, sender port.Client, payload domain.Payload) error

// Relay routes signaling envelopes to the other members of a room. It never
// looks inside a payload except to read the room.
type Relay struct {
	rooms    port.RoomDirectory
	handlers map[domain.Event]handlerFunc
}

func NewRelay(rooms port.RoomDirectory) *Relay {
	r := &Relay{
		rooms: rooms,
	}
	r.handlers = map[domain.Event]handlerFunc{
		domain.EventJoin:         r.onJoin,
		domain.EventOffer:        r.forward(domain.EventOffer),
		domain.EventAnswer:       r.forward(domain.EventAnswer),
		domain.EventICECandidate: r.forward(domain.EventICECandidate),
	}
	return r
}

// Handle dispatches one inbound envelope, including every fan-out send,
// before returning.
func (r *Relay) Handle(ctx context.Context, sender port.Client, env domain.Envelope) error {
	h, ok := r.handlers[env.Event]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownEvent, env.Event)
	}
	return h(ctx, sender, env.Payload)
}

func (r *Relay) onJoin(ctx context.Context, sender port.Client, payload domain.Payload) error {
	roomID, err := payload.Room()
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := r.rooms.Join(roomID, sender); err != nil {
		return err
	}
	r.broadcast(ctx, sender, roomID, domain.NewEnvelope(domain.EventUserJoined, nil))
	return nil
}

func (r *Relay) forward(event domain.Event) handlerFunc {
	return func(ctx context.Context, sender port.Client, payload domain.Payload) error {
		roomID, err := payload.Room()
		if err != nil {
			return fmt.Errorf("%s: %w", event, err)
		}
		r.broadcast(ctx, sender, roomID, domain.Envelope{Event: event, Payload: payload})
		return nil
	}
}

// broadcast sends env to every member of roomID except sender. A failing
// recipient does not stop delivery to the others.
func (r *Relay) broadcast(ctx context.Context, sender port.Client, roomID domain.RoomID, env domain.Envelope) int {
	recipients := r.rooms.MembersExcluding(roomID, sender.ID())
	delivered := 0
	for _, c := range recipients {
		if err := c.Send(ctx, env); err != nil {
			log.Warn().Err(err).
				Str("client_id", c.ID().String()).
				Str("room", roomID.String()).
				Str("event", env.Event.String()).
				Msg("Error relaying message")
			continue
		}
		delivered++
	}
	log.Debug().
		Str("client_id", sender.ID().String()).
		Str("room", roomID.String()).
		Str("event", env.Event.String()).
		Int("recipients", delivered).
		Msg("Relayed message")
	return delivered
}
