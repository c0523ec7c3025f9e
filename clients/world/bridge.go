package world

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/mo"

	"pantherasmp/clients"
	"pantherasmp/core"
	"pantherasmp/core/log"
	"pantherasmp/models"
	"pantherasmp/utils"
)

// MaxChatLength is the longest chat line the bridge is asked to send.
const MaxChatLength = 240

const (
	eventBufferSize = 256
	writeTimeout    = 10 * time.Second
	connectTimeout  = 15 * time.Second
)

// BridgeDialer opens websocket sessions to the world bridge and logs the bot in.
type BridgeDialer struct {
	url     string
	connect models.ConnectOptions
	dialer  *websocket.Dialer
}

func NewBridgeDialer(bridgeURL string, connect models.ConnectOptions) *BridgeDialer {
	return &BridgeDialer{
		url:     bridgeURL,
		connect: connect,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: connectTimeout,
		},
	}
}

func (d *BridgeDialer) Dial(ctx context.Context) (clients.WorldClient, error) {
	log.Info("🔌 Dialing world bridge at %s for %s@%s:%d", d.url, d.connect.Username, d.connect.Host, d.connect.Port)

	headers := http.Header{
		HeaderSession:  []string{uuid.New().String()},
		HeaderUsername: []string{d.connect.Username},
	}
	conn, _, err := d.dialer.DialContext(ctx, d.url, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial world bridge: %w", err)
	}

	client := newBridgeClient(conn, d.connect.Username)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.call(connectCtx, OpConnect, d.connect, nil); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to open game connection: %w", err)
	}

	log.Info("✅ World bridge accepted connect for %s", d.connect.Username)
	return client, nil
}

// BridgeClient is one websocket session with the world bridge.
// Requests are correlated to responses by ID; events are pushed onto a single queue.
type BridgeClient struct {
	conn     *websocket.Conn
	username string

	writeMu sync.Mutex

	pendingMu    sync.Mutex
	pending      map[string]chan inboundEnvelope
	disconnected bool

	events    chan models.Event
	closed    chan struct{}
	closeOnce sync.Once
}

func newBridgeClient(conn *websocket.Conn, username string) *BridgeClient {
	c := &BridgeClient{
		conn:     conn,
		username: username,
		pending:  make(map[string]chan inboundEnvelope),
		events:   make(chan models.Event, eventBufferSize),
		closed:   make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *BridgeClient) Events() <-chan models.Event {
	return c.events
}

func (c *BridgeClient) Username() string {
	return c.username
}

func (c *BridgeClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *BridgeClient) readLoop() {
	defer close(c.events)

	reason := "connection closed"
read:
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			reason = err.Error()
			break
		}

		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Warn("⚠️ Dropping malformed bridge frame: %v", err)
			continue
		}

		switch env.Type {
		case EnvelopeResponse:
			c.deliver(env)
		case EnvelopeEvent:
			if env.Event == EventEnd {
				var payload endEventPayload
				_ = json.Unmarshal(env.Payload, &payload)
				reason = payload.Reason
				break read
			}
			if event, ok := translateEvent(env); ok {
				c.push(event)
			}
		default:
			log.Warn("⚠️ Unknown bridge envelope type: %s", env.Type)
		}
	}

	c.failPending()
	c.push(models.LifecycleEvent{Kind: models.LifecycleEnd, Reason: reason})
	_ = c.Close()
}

func translateEvent(env inboundEnvelope) (models.Event, bool) {
	now := time.Now()
	switch env.Event {
	case EventLogin:
		return models.LifecycleEvent{Kind: models.LifecycleLogin}, true
	case EventSpawn:
		return models.LifecycleEvent{Kind: models.LifecycleSpawn}, true
	case EventChat:
		var payload chatEventPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			log.Warn("⚠️ Malformed chat event: %v", err)
			return nil, false
		}
		return models.ChatEvent{Username: payload.Username, Message: payload.Message, ReceivedAt: now}, true
	case EventMessage:
		var payload messageEventPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			log.Warn("⚠️ Malformed message event: %v", err)
			return nil, false
		}
		return models.ServerMessage{
			Text:       payload.Text,
			Position:   models.MessagePosition(payload.Position),
			ReceivedAt: now,
		}, true
	case EventError:
		var payload errorEventPayload
		_ = json.Unmarshal(env.Payload, &payload)
		return models.LifecycleEvent{Kind: models.LifecycleError, Reason: payload.Message}, true
	default:
		log.Debug("Ignoring bridge event %s", env.Event)
		return nil, false
	}
}

// push hands an event to the consumer unless the client was closed locally.
func (c *BridgeClient) push(event models.Event) {
	select {
	case c.events <- event:
	case <-c.closed:
	}
}

func (c *BridgeClient) deliver(env inboundEnvelope) {
	if !core.IsValidID(env.ID) {
		log.Warn("⚠️ Dropping bridge response with malformed id %q", env.ID)
		return
	}

	c.pendingMu.Lock()
	ch, ok := c.pending[env.ID]
	delete(c.pending, env.ID)
	c.pendingMu.Unlock()

	if !ok {
		log.Debug("Response for unknown request %s", env.ID)
		return
	}
	ch <- env
}

func (c *BridgeClient) failPending() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.disconnected = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

func (c *BridgeClient) write(env outboundEnvelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(env)
}

func (c *BridgeClient) call(ctx context.Context, op string, payload any, out any) error {
	id := core.NewID("req")
	respCh := make(chan inboundEnvelope, 1)

	c.pendingMu.Lock()
	if c.disconnected {
		c.pendingMu.Unlock()
		return core.ErrDisconnected
	}
	c.pending[id] = respCh
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.write(outboundEnvelope{Type: EnvelopeRequest, ID: id, Op: op, Payload: payload}); err != nil {
		return fmt.Errorf("failed to send %s request: %w", op, err)
	}

	select {
	case resp, ok := <-respCh:
		if !ok {
			return core.ErrDisconnected
		}
		if !resp.OK {
			return &core.BridgeError{Op: op, Message: resp.Error}
		}
		if out != nil && len(resp.Payload) > 0 {
			if err := json.Unmarshal(resp.Payload, out); err != nil {
				return fmt.Errorf("failed to decode %s response: %w", op, err)
			}
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s request abandoned: %w", op, ctx.Err())
	}
}

func lookup[T any](ctx context.Context, c *BridgeClient, op string, payload any) (mo.Option[T], error) {
	var resp lookupResponse[T]
	if err := c.call(ctx, op, payload, &resp); err != nil {
		return mo.None[T](), err
	}
	if !resp.Found {
		return mo.None[T](), nil
	}
	return mo.Some(resp.Result), nil
}

func (c *BridgeClient) Chat(ctx context.Context, text string) error {
	return c.call(ctx, OpChat, chatRequest{Text: utils.TruncateRunes(text, MaxChatLength)}, nil)
}

func (c *BridgeClient) FindPlayer(ctx context.Context, name string) (mo.Option[models.Entity], error) {
	return lookup[models.Entity](ctx, c, OpFindPlayer, findPlayerRequest{Name: name})
}

func (c *BridgeClient) Follow(ctx context.Context, target models.Entity, distance float64) error {
	return c.call(ctx, OpFollow, followRequest{EntityID: target.ID, Distance: distance, Dynamic: true}, nil)
}

func (c *BridgeClient) StopPathing(ctx context.Context) error {
	return c.call(ctx, OpStop, nil, nil)
}

func (c *BridgeClient) FindBlock(ctx context.Context, name string, maxDistance int) (mo.Option[models.Block], error) {
	return lookup[models.Block](ctx, c, OpFindBlock, findBlockRequest{Name: name, MaxDistance: maxDistance})
}

func (c *BridgeClient) CollectBlock(ctx context.Context, block models.Block) error {
	return c.call(ctx, OpCollectBlock, block, nil)
}

func (c *BridgeClient) NearestEntity(ctx context.Context, entityType models.EntityType) (mo.Option[models.Entity], error) {
	return lookup[models.Entity](ctx, c, OpNearestEntity, nearestEntityRequest{Type: string(entityType)})
}

func (c *BridgeClient) Attack(ctx context.Context, target models.Entity) error {
	return c.call(ctx, OpAttack, entityRequest{EntityID: target.ID}, nil)
}

func (c *BridgeClient) InventoryItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.call(ctx, OpInventory, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *BridgeClient) TossStack(ctx context.Context, item models.Item) error {
	return c.call(ctx, OpTossStack, item, nil)
}

func (c *BridgeClient) ConfigureAutoEat(ctx context.Context, opts models.AutoEatOptions) error {
	return c.call(ctx, OpConfigureAutoEat, opts, nil)
}
