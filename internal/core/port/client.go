package port

import (
	"context"

	"github.com/Wyydra/rendezvous/internal/core/domain"
)

// Client is the send capability of one live connection.
type Client interface {
	ID() domain.ConnID
	// Send queues env for delivery. It may block until ctx is done or the
	// client is closed.
	Send(ctx context.Context, env domain.Envelope) error
	Close() error
}
