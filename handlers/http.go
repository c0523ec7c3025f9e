package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"pantherasmp/core/log"
	"pantherasmp/middleware"
)

// StatusHandler serves the keep-alive endpoints and, for the watcher, the kill-feed socket.
type StatusHandler struct {
	livenessText string
	killFeed     http.Handler
}

// NewStatusHandler creates the handler. killFeed may be nil when the process has no feed.
func NewStatusHandler(livenessText string, killFeed http.Handler) *StatusHandler {
	return &StatusHandler{
		livenessText: livenessText,
		killFeed:     killFeed,
	}
}

func (h *StatusHandler) SetupEndpoints(router *mux.Router) {
	log.Info("🚀 Registering HTTP endpoints")
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet, http.MethodHead)
	if h.killFeed != nil {
		router.Handle("/ws", h.killFeed).Methods(http.MethodGet)
		log.Info("✅ Kill-feed websocket registered on / and /ws")
	}
}

// handleRoot answers liveness probes; websocket upgrades on / join the kill feed.
func (h *StatusHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.killFeed != nil && websocket.IsWebSocketUpgrade(r) {
		h.killFeed.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.livenessText)); err != nil {
		log.Error("❌ Failed to write liveness response: %v", err)
	}
}

func (h *StatusHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Error("❌ Failed to write health check response: %v", err)
	}
}

// NewRouter assembles the full HTTP stack: routes, CORS and panic alerting.
func NewRouter(status *StatusHandler, corsAllowedOrigins string, alerter *middleware.ErrorAlerter) http.Handler {
	router := mux.NewRouter()
	status.SetupEndpoints(router)

	allowedOrigins := strings.Split(corsAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return alerter.HTTPMiddleware(c.Handler(router))
}
