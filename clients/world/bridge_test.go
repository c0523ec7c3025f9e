package world

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantherasmp/core"
	"pantherasmp/models"
)

type bridgeRequest struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload"`
}

// fakeBridge answers bridge requests with canned responses and lets tests push events.
type fakeBridge struct {
	t        *testing.T
	server   *httptest.Server
	headers  chan http.Header
	requests chan bridgeRequest
	answer   func(req bridgeRequest) map[string]any

	mu   sync.Mutex
	conn *websocket.Conn
}

func newFakeBridge(t *testing.T, answer func(req bridgeRequest) map[string]any) *fakeBridge {
	fb := &fakeBridge{
		t:        t,
		headers:  make(chan http.Header, 1),
		requests: make(chan bridgeRequest, 32),
		answer:   answer,
	}
	upgrader := websocket.Upgrader{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.headers <- r.Header.Clone()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fb.mu.Lock()
		fb.conn = conn
		fb.mu.Unlock()

		for {
			var req bridgeRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			fb.requests <- req
			resp := map[string]any{"type": EnvelopeResponse, "id": req.ID, "ok": true}
			if fb.answer != nil {
				for k, v := range fb.answer(req) {
					resp[k] = v
				}
			}
			fb.mu.Lock()
			err := conn.WriteJSON(resp)
			fb.mu.Unlock()
			if err != nil {
				return
			}
		}
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBridge) url() string {
	return "ws" + strings.TrimPrefix(fb.server.URL, "http")
}

func (fb *fakeBridge) emit(event string, payload any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	require.NotNil(fb.t, fb.conn)
	require.NoError(fb.t, fb.conn.WriteJSON(map[string]any{"type": EnvelopeEvent, "event": event, "payload": payload}))
}

func (fb *fakeBridge) dropConnection() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	_ = fb.conn.Close()
}

func (fb *fakeBridge) nextRequest(t *testing.T) bridgeRequest {
	t.Helper()
	select {
	case req := <-fb.requests:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bridge request")
		return bridgeRequest{}
	}
}

func nextEvent(t *testing.T, events <-chan models.Event) models.Event {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

var testConnect = models.ConnectOptions{Host: "mc.example.net", Port: 25565, Username: "PantherBot", Auth: "offline"}

func dialFake(t *testing.T, fb *fakeBridge) *BridgeClient {
	t.Helper()
	client, err := NewBridgeDialer(fb.url(), testConnect).Dial(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	connectReq := fb.nextRequest(t)
	assert.Equal(t, OpConnect, connectReq.Op)
	return client.(*BridgeClient)
}

func TestBridgeDialer_Dial(t *testing.T) {
	t.Run("sends session headers and connect options", func(t *testing.T) {
		fb := newFakeBridge(t, nil)
		client := dialFake(t, fb)

		headers := <-fb.headers
		assert.NotEmpty(t, headers.Get(HeaderSession))
		assert.Equal(t, "PantherBot", headers.Get(HeaderUsername))
		assert.Equal(t, "PantherBot", client.Username())
	})

	t.Run("connect rejected by bridge", func(t *testing.T) {
		fb := newFakeBridge(t, func(req bridgeRequest) map[string]any {
			return map[string]any{"ok": false, "error": "server unreachable"}
		})

		_, err := NewBridgeDialer(fb.url(), testConnect).Dial(context.Background())
		require.Error(t, err)
		bridgeErr, ok := core.IsBridgeError(err)
		require.True(t, ok)
		assert.Equal(t, OpConnect, bridgeErr.Op)
		assert.Equal(t, "server unreachable", bridgeErr.Message)
	})

	t.Run("bridge not listening", func(t *testing.T) {
		_, err := NewBridgeDialer("ws://127.0.0.1:1/bridge", testConnect).Dial(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to dial world bridge")
	})
}

func TestBridgeClient_Chat(t *testing.T) {
	fb := newFakeBridge(t, nil)
	client := dialFake(t, fb)

	long := strings.Repeat("a", 300)
	require.NoError(t, client.Chat(context.Background(), long))

	req := fb.nextRequest(t)
	assert.Equal(t, OpChat, req.Op)
	var payload chatRequest
	require.NoError(t, json.Unmarshal(req.Payload, &payload))
	assert.Len(t, payload.Text, MaxChatLength)
}

func TestBridgeClient_Lookups(t *testing.T) {
	fb := newFakeBridge(t, func(req bridgeRequest) map[string]any {
		switch req.Op {
		case OpFindPlayer:
			var body findPlayerRequest
			_ = json.Unmarshal(req.Payload, &body)
			if body.Name == "Steve" {
				return map[string]any{"payload": map[string]any{
					"found":  true,
					"result": map[string]any{"id": "42", "name": "Steve", "type": "player"},
				}}
			}
			return map[string]any{"payload": map[string]any{"found": false}}
		case OpInventory:
			return map[string]any{"payload": []map[string]any{
				{"slot": 36, "name": "dirt", "count": 64},
				{"slot": 37, "name": "cobblestone", "count": 12},
			}}
		case OpFindBlock:
			return map[string]any{"ok": false, "error": "unknown block name"}
		}
		return nil
	})
	client := dialFake(t, fb)
	ctx := context.Background()

	t.Run("player present", func(t *testing.T) {
		player, err := client.FindPlayer(ctx, "Steve")
		require.NoError(t, err)
		require.True(t, player.IsPresent())
		assert.Equal(t, "42", player.MustGet().ID)
		assert.Equal(t, models.EntityPlayer, player.MustGet().Type)
	})

	t.Run("player absent", func(t *testing.T) {
		player, err := client.FindPlayer(ctx, "Alex")
		require.NoError(t, err)
		assert.True(t, player.IsAbsent())
	})

	t.Run("inventory", func(t *testing.T) {
		items, err := client.InventoryItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, models.Item{Slot: 37, Name: "cobblestone", Count: 12}, items[1])
	})

	t.Run("rejected lookup", func(t *testing.T) {
		block, err := client.FindBlock(ctx, "stonee", 32)
		require.Error(t, err)
		assert.True(t, block.IsAbsent())
		_, ok := core.IsBridgeError(err)
		assert.True(t, ok)
	})
}

func TestBridgeClient_Events(t *testing.T) {
	fb := newFakeBridge(t, nil)
	client := dialFake(t, fb)
	events := client.Events()

	fb.emit(EventSpawn, nil)
	fb.emit(EventChat, map[string]any{"username": "Steve", "message": "follow me"})
	fb.emit(EventMessage, map[string]any{"text": "Steve was slain by Zombie", "position": "system"})
	fb.emit(EventEnd, map[string]any{"reason": "kicked"})

	assert.Equal(t, models.LifecycleEvent{Kind: models.LifecycleSpawn}, nextEvent(t, events))

	chat, ok := nextEvent(t, events).(models.ChatEvent)
	require.True(t, ok)
	assert.Equal(t, "Steve", chat.Username)
	assert.Equal(t, "follow me", chat.Message)

	msg, ok := nextEvent(t, events).(models.ServerMessage)
	require.True(t, ok)
	assert.Equal(t, "Steve was slain by Zombie", msg.Text)
	assert.Equal(t, models.PositionSystem, msg.Position)

	assert.Equal(t, models.LifecycleEvent{Kind: models.LifecycleEnd, Reason: "kicked"}, nextEvent(t, events))

	select {
	case _, open := <-events:
		assert.False(t, open, "event channel should be closed after end")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel never closed")
	}

	err := client.Chat(context.Background(), "anyone there?")
	assert.ErrorIs(t, err, core.ErrDisconnected)
}

func TestBridgeClient_DroppedConnection(t *testing.T) {
	fb := newFakeBridge(t, nil)
	client := dialFake(t, fb)

	fb.dropConnection()

	event := nextEvent(t, client.Events())
	lifecycle, ok := event.(models.LifecycleEvent)
	require.True(t, ok)
	assert.Equal(t, models.LifecycleEnd, lifecycle.Kind)
	assert.NotEmpty(t, lifecycle.Reason)
}
