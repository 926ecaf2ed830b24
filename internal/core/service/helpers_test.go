package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
)

type fakeClient struct {
	id domain.ConnID

	mu       sync.Mutex
	received []domain.Envelope
	closed   bool
	sendErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{id: domain.NewConnID()}
}

func (c *fakeClient) ID() domain.ConnID { return c.id }

func (c *fakeClient) Send(ctx context.Context, env domain.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return errors.New("closed")
	}
	c.received = append(c.received, env)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) Received() []domain.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Envelope, len(c.received))
	copy(out, c.received)
	return out
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestDirectory() (*Registry, *Directory) {
	reg := NewRegistry()
	return reg, NewDirectory(reg)
}

func registerAll(reg *Registry, clients ...*fakeClient) {
	for _, c := range clients {
		reg.Register(c)
	}
}

func memberIDs(clients []*fakeClient) map[domain.ConnID]bool {
	out := make(map[domain.ConnID]bool, len(clients))
	for _, c := range clients {
		out[c.ID()] = true
	}
	return out
}
