package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Directory maps rooms to their members. A single mutex guards every room;
// it is never held while sending.
type Directory struct {
	mu       sync.Mutex
	rooms    map[domain.RoomID]map[domain.ConnID]port.Client
	registry *Registry
}

func NewDirectory(registry *Registry) *Directory {
	d := &Directory{
		rooms:    make(map[domain.RoomID]map[domain.ConnID]port.Client),
		registry: registry,
	}
	registry.attach(d)
	return d
}

// Join adds c to roomID. A connection belongs to one room at a time, so a
// member of another room leaves it first.
func (d *Directory) Join(roomID domain.RoomID, c port.Client) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := c.ID()
	prev, ok := d.registry.swapRoom(id, roomID)
	if !ok {
		return fmt.Errorf("join %q: %w: %s", roomID, domain.ErrUnknownConnection, id)
	}
	if prev != "" && prev != roomID {
		d.remove(prev, id)
		log.Debug().Str("client_id", id.String()).Str("room", prev.String()).Msg("Client left previous room")
	}

	members, ok := d.rooms[roomID]
	if !ok {
		members = make(map[domain.ConnID]port.Client)
		d.rooms[roomID] = members
	}
	members[id] = c
	log.Info().Int("count", len(members)).Str("client_id", id.String()).Str("room", roomID.String()).Msg("Client joined room")
	return nil
}

func (d *Directory) Leave(roomID domain.RoomID, id domain.ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.remove(roomID, id) {
		d.registry.clearRoom(id, roomID)
		log.Info().Str("client_id", id.String()).Str("room", roomID.String()).Msg("Client left room")
	}
}

// remove must be called with d.mu held.
func (d *Directory) remove(roomID domain.RoomID, id domain.ConnID) bool {
	members, ok := d.rooms[roomID]
	if !ok {
		return false
	}
	if _, ok := members[id]; !ok {
		return false
	}
	delete(members, id)
	if len(members) == 0 {
		delete(d.rooms, roomID)
	}
	return true
}

// MembersExcluding returns a snapshot of every member of roomID except id.
// Absent rooms yield an empty slice.
func (d *Directory) MembersExcluding(roomID domain.RoomID, id domain.ConnID) []port.Client {
	d.mu.Lock()
	defer d.mu.Unlock()

	members := d.rooms[roomID]
	out := make([]port.Client, 0, len(members))
	for memberID, c := range members {
		if memberID == id {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (d *Directory) Rooms() []domain.RoomStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := make([]domain.RoomStats, 0, len(d.rooms))
	for id, members := range d.rooms {
		stats = append(stats, domain.RoomStats{ID: id, Members: len(members)})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ID < stats[j].ID })
	return stats
}
