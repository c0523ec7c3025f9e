package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pantherasmp/core/log"
	"pantherasmp/models"
)

const writeDeadline = time.Second

type subscriber struct {
	ID      string
	Conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub pushes kill events to every connected websocket subscriber.
// Subscribers only listen; anything they send is read and discarded.
type Hub struct {
	subscribers map[string]*subscriber
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) Name() string {
	return "websocket"
}

// ServeWS upgrades the request and holds the subscription until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("❌ WebSocket upgrade failed from %s: %v", r.RemoteAddr, err)
		return
	}

	sub := &subscriber{ID: uuid.New().String(), Conn: conn}
	h.add(sub)
	log.Info("✅ Kill-feed subscriber %s connected from %s", sub.ID, r.RemoteAddr)
	defer h.remove(sub.ID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("⚠️ Kill-feed subscriber %s dropped: %v", sub.ID, err)
			} else {
				log.Info("🔌 Kill-feed subscriber %s disconnected", sub.ID)
			}
			return
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWS(w, r)
}

// PublishKill sends the event to every subscriber. Subscribers that fail the write are dropped.
func (h *Hub) PublishKill(_ context.Context, event models.KillEvent) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal kill event: %w", err)
	}

	h.mutex.RLock()
	targets := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		targets = append(targets, sub)
	}
	h.mutex.RUnlock()

	delivered := 0
	for _, sub := range targets {
		if err := h.send(sub, data); err != nil {
			log.Warn("⚠️ Dropping kill-feed subscriber %s: %v", sub.ID, err)
			h.remove(sub.ID)
			continue
		}
		delivered++
	}

	log.Debug("Kill event delivered to %d/%d subscribers", delivered, len(targets))
	return nil
}

// SubscriberCount reports how many subscribers are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, sub := range h.subscribers {
		_ = sub.Conn.Close()
		delete(h.subscribers, id)
	}
}

func (h *Hub) send(sub *subscriber, data []byte) error {
	sub.writeMu.Lock()
	defer sub.writeMu.Unlock()
	if err := sub.Conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return sub.Conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) add(sub *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.subscribers[sub.ID] = sub
	log.Debug("Subscriber %s added. Total subscribers: %d", sub.ID, len(h.subscribers))
}

func (h *Hub) remove(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	sub, ok := h.subscribers[id]
	if !ok {
		return
	}
	_ = sub.Conn.Close()
	delete(h.subscribers, id)
	log.Debug("Subscriber %s removed. Remaining subscribers: %d", id, len(h.subscribers))
}
