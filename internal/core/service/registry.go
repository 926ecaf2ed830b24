package service

import (
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/rs/zerolog/log"
)

type connState struct {
	client port.Client
	room   domain.RoomID
}

// Registry tracks every live connection and the room it currently belongs to.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connState
	rooms port.RoomDirectory
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[domain.ConnID]*connState),
	}
}

// attach is called once by NewDirectory.
func (r *Registry) attach(rooms port.RoomDirectory) {
	r.rooms = rooms
}

func (r *Registry) Register(c port.Client) domain.ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[c.ID()] = &connState{client: c}
	log.Info().Int("count", len(r.conns)).Str("client_id", c.ID().String()).Msg("Client registered")
	return c.ID()
}

// Unregister forgets the connection and removes it from its room before
// returning. Calling it twice is a no-op.
func (r *Registry) Unregister(id domain.ConnID) {
	r.mu.Lock()
	st, ok := r.conns[id]
	var room domain.RoomID
	if ok {
		room = st.room
		delete(r.conns, id)
	}
	count := len(r.conns)
	r.mu.Unlock()

	if !ok {
		return
	}
	if room != "" && r.rooms != nil {
		r.rooms.Leave(room, id)
	}
	log.Info().Int("count", count).Str("client_id", id.String()).Msg("Client unregistered")
}

func (r *Registry) CurrentRoom(id domain.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.conns[id]
	if !ok || st.room == "" {
		return "", false
	}
	return st.room, true
}

// swapRoom records roomID as the current room and returns the previous one.
// ok is false when the connection is not registered.
func (r *Registry) swapRoom(id domain.ConnID, roomID domain.RoomID) (prev domain.RoomID, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.conns[id]
	if !ok {
		return "", false
	}
	prev = st.room
	st.room = roomID
	return prev, true
}

// clearRoom resets the current room if it still equals roomID.
func (r *Registry) clearRoom(id domain.ConnID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.conns[id]; ok && st.room == roomID {
		st.room = ""
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every live client. Their gateways unregister them as their
// read loops exit.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	clients := make([]port.Client, 0, len(r.conns))
	for _, st := range r.conns {
		clients = append(clients, st.client)
	}
	r.mu.RUnlock()

	log.Info().Int("count", len(clients)).Msg("Closing all clients")
	for _, c := range clients {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Str("client_id", c.ID().String()).Msg("Error closing client connection")
		}
	}
}
