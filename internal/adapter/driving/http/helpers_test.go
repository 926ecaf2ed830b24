package http

import (
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/persistence/memory"
	"github.com/Wyydra/rendezvous/internal/adapter/driven/transcribe/stub"
	"github.com/Wyydra/rendezvous/internal/core/service"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
)

type testServer struct {
	*httptest.Server
	handler *Handler
	store   *memory.MediaStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	registry := service.NewRegistry()
	directory := service.NewDirectory(registry)
	store := memory.NewMediaStore()

	opts := DefaultOptions()
	opts.MaxUploadBytes = 1 << 10
	opts.ICEServers = []webrtc.ICEServer{{URLs: []string{"stun:stun.example.org:3478"}}}

	h := NewHandler(
		registry,
		directory,
		service.NewRelay(directory),
		service.NewMediaService(store),
		service.NewTextService(stub.NewTranscriber()),
		opts,
	)
	ts := httptest.NewServer(h.NewRouter())
	t.Cleanup(func() {
		registry.CloseAll()
		ts.Close()
	})
	return &testServer{Server: ts, handler: h, store: store}
}

func (s *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
}

func (s *testServer) dial(t *testing.T, subprotocols ...string) *websocket.Conn {
	t.Helper()
	d := websocket.Dialer{Subprotocols: subprotocols, HandshakeTimeout: 2 * time.Second}
	conn, _, err := d.Dial(s.wsURL(), nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitRoomSize polls the directory until roomID has n members.
func (s *testServer) waitRoomSize(t *testing.T, roomID string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := 0
		for _, st := range s.handler.Directory.Rooms() {
			if string(st.ID) == roomID {
				got = st.Members
			}
		}
		if got == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d members (rooms=%+v)", roomID, n, s.handler.Directory.Rooms())
}

type frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func send(t *testing.T, conn *websocket.Conn, event string, data map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(frame{Event: event, Data: data}); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

func recv(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(timeoutIn())
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read: %v", err)
	}
	return f
}

// expectSilence asserts nothing arrives for a short while. A timed out
// websocket cannot be read again, so call it last on a connection.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, data, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("unexpected frame: %s", data)
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("read failed with %v, want timeout", err)
	}
}

func timeoutIn() time.Time {
	return time.Now().Add(2 * time.Second)
}
