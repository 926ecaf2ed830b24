package domain

import (
	"github.com/google/uuid"
)

// ConnID identifies one live transport session. It is assigned at accept
// time and stays stable for the lifetime of the connection.
type ConnID uuid.UUID

// RoomID is supplied by clients and never validated beyond being a
// non-empty string.
type RoomID string

func NewConnID() ConnID {
	return ConnID(uuid.New())
}

func ParseConnID(s string) (ConnID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ConnID{}, err
	}
	return ConnID(id), nil
}

func (id ConnID) String() string {
	return uuid.UUID(id).String()
}

func (id RoomID) String() string {
	return string(id)
}
