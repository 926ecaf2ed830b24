package http

import (
	"net/http"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/pion/webrtc/v4"
)

type iceResponse struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

type roomsResponse struct {
	Rooms []domain.RoomStats `json:"rooms"`
}

// ICEServers lets browsers build their RTCPeerConnection configuration
// from the server's settings.
func (h *Handler) ICEServers(w http.ResponseWriter, r *http.Request) {
	servers := h.opts.ICEServers
	if servers == nil {
		servers = []webrtc.ICEServer{}
	}
	writeJSON(w, http.StatusOK, iceResponse{ICEServers: servers})
}

func (h *Handler) Rooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, roomsResponse{Rooms: h.Directory.Rooms()})
}
