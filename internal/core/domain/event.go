package domain

type Event string

const (
	EventJoin         Event = "join"
	EventOffer        Event = "offer"
	EventAnswer       Event = "answer"
	EventICECandidate Event = "ice-candidate"

	// server -> client only
	EventUserJoined Event = "user-joined"
)

func (e Event) String() string {
	return string(e)
}
