package service

import (
	"testing"
)

func TestRegistry_RegisterStartsUnjoined(t *testing.T) {
	reg := NewRegistry()
	a := newFakeClient()

	if id := reg.Register(a); id != a.ID() {
		t.Fatalf("Register() = %s, want %s", id, a.ID())
	}
	if room, ok := reg.CurrentRoom(a.ID()); ok {
		t.Fatalf("CurrentRoom = %q, want none", room)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistry_UnregisterLeavesRoom(t *testing.T) {
	reg, dir := newTestDirectory()
	a, b := newFakeClient(), newFakeClient()
	registerAll(reg, a, b)
	_ = dir.Join("r1", a)
	_ = dir.Join("r1", b)

	reg.Unregister(a.ID())

	if got := dir.MembersExcluding("r1", b.ID()); len(got) != 0 {
		t.Fatalf("stale membership after unregister: %d", len(got))
	}
	if _, ok := reg.CurrentRoom(a.ID()); ok {
		t.Fatal("unregistered connection still has a room")
	}
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	reg, dir := newTestDirectory()
	a := newFakeClient()
	reg.Register(a)
	_ = dir.Join("r1", a)

	reg.Unregister(a.ID())
	reg.Unregister(a.ID())

	if reg.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", reg.Len())
	}
	if len(dir.Rooms()) != 0 {
		t.Fatalf("rooms = %+v, want none", dir.Rooms())
	}
}

func TestRegistry_LeaveClearsCurrentRoom(t *testing.T) {
	reg, dir := newTestDirectory()
	a := newFakeClient()
	reg.Register(a)
	_ = dir.Join("r1", a)

	dir.Leave("r1", a.ID())

	if room, ok := reg.CurrentRoom(a.ID()); ok {
		t.Fatalf("CurrentRoom = %q after leave", room)
	}
}

func TestRegistry_CloseAll(t *testing.T) {
	reg := NewRegistry()
	a, b := newFakeClient(), newFakeClient()
	registerAll(reg, a, b)

	reg.CloseAll()

	if !a.isClosed() || !b.isClosed() {
		t.Fatal("CloseAll must close every client")
	}
}
