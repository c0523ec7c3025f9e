package world

import "encoding/json"

// Envelope types on the bridge socket
const (
	EnvelopeRequest  = "request"
	EnvelopeResponse = "response"
	EnvelopeEvent    = "event"
)

// Bridge operations
const (
	OpConnect          = "connect"
	OpChat             = "chat"
	OpFindPlayer       = "find_player"
	OpFollow           = "follow"
	OpStop             = "stop"
	OpFindBlock        = "find_block"
	OpCollectBlock     = "collect_block"
	OpNearestEntity    = "nearest_entity"
	OpAttack           = "attack"
	OpInventory        = "inventory"
	OpTossStack        = "toss_stack"
	OpConfigureAutoEat = "configure_auto_eat"
)

// Bridge event names
const (
	EventLogin   = "login"
	EventSpawn   = "spawn"
	EventChat    = "chat"
	EventMessage = "message"
	EventEnd     = "end"
	EventError   = "error"
)

const (
	HeaderSession  = "X-Bot-Session"
	HeaderUsername = "X-Bot-Username"
)

type outboundEnvelope struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Op      string `json:"op"`
	Payload any    `json:"payload,omitempty"`
}

type inboundEnvelope struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	OK      bool            `json:"ok,omitempty"`
	Error   string          `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type findPlayerRequest struct {
	Name string `json:"name"`
}

type followRequest struct {
	EntityID string  `json:"entityId"`
	Distance float64 `json:"distance"`
	Dynamic  bool    `json:"dynamic"`
}

type findBlockRequest struct {
	Name        string `json:"name"`
	MaxDistance int    `json:"maxDistance"`
}

type nearestEntityRequest struct {
	Type string `json:"type"`
}

type entityRequest struct {
	EntityID string `json:"entityId"`
}

// lookupResponse wraps optional results; Found=false maps to mo.None.
type lookupResponse[T any] struct {
	Found  bool `json:"found"`
	Result T    `json:"result"`
}

type chatEventPayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type messageEventPayload struct {
	Text     string `json:"text"`
	Position string `json:"position"`
}

type endEventPayload struct {
	Reason string `json:"reason"`
}

type errorEventPayload struct {
	Message string `json:"message"`
}
