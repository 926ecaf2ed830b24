package domain

type RoomStats struct {
	ID      RoomID `json:"id"`
	Members int    `json:"members"`
}
