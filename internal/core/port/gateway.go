package port

import (
	"github.com/Wyydra/rendezvous/internal/core/domain"
)

// RoomDirectory resolves recipients for the relay.
type RoomDirectory interface {
	Join(roomID domain.RoomID, c Client) error
	Leave(roomID domain.RoomID, id domain.ConnID)
	MembersExcluding(roomID domain.RoomID, id domain.ConnID) []Client
}
