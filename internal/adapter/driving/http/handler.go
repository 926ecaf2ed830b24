package http

import (
	"net/http"
	"slices"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/rendezvous/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
)

const DefaultMaxUploadBytes = 32 << 20

type Options struct {
	WS             ws.Config
	MaxUploadBytes int64
	ICEServers     []webrtc.ICEServer
	AllowedOrigins []string
}

func DefaultOptions() Options {
	return Options{
		WS:             ws.DefaultConfig(),
		MaxUploadBytes: DefaultMaxUploadBytes,
		AllowedOrigins: []string{"*"},
	}
}

type Handler struct {
	Registry     *service.Registry
	Directory    *service.Directory
	Relay        *service.Relay
	MediaService *service.MediaService
	TextService  *service.TextService

	opts     Options
	upgrader websocket.Upgrader
}

func NewHandler(
	registry *service.Registry,
	directory *service.Directory,
	relay *service.Relay,
	mediaService *service.MediaService,
	textService *service.TextService,
	opts Options,
) *Handler {
	h := &Handler{
		Registry:     registry,
		Directory:    directory,
		Relay:        relay,
		MediaService: mediaService,
		TextService:  textService,
		opts:         opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		Subprotocols:    ws.Subprotocols(),
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, "*") || slices.Contains(h.opts.AllowedOrigins, origin)
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("signaling relay running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Get("/ws", h.ServeWS)

	r.Post("/upload", h.Upload)
	r.Post("/transcribe", h.Transcribe)
	r.Post("/summarize", h.Summarize)

	r.Get("/ice", h.ICEServers)
	r.Get("/rooms", h.Rooms)

	return r
}
