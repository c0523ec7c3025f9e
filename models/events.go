package models

import "time"

// Event is one item on the world client's event queue.
// The set of implementations is closed: ChatEvent, ServerMessage, LifecycleEvent.
type Event interface {
	isEvent()
}

// ChatEvent is a player chat line. It lives only for the duration of one handler call.
type ChatEvent struct {
	Username   string
	Message    string
	ReceivedAt time.Time
}

// MessagePosition is where the server placed a text message.
type MessagePosition string

const (
	PositionChat     MessagePosition = "chat"
	PositionSystem   MessagePosition = "system"
	PositionGameInfo MessagePosition = "game_info"
)

// ServerMessage is any text message the server sent, already flattened to plain text.
type ServerMessage struct {
	Text       string
	Position   MessagePosition
	ReceivedAt time.Time
}

type LifecycleKind string

const (
	LifecycleLogin LifecycleKind = "login"
	LifecycleSpawn LifecycleKind = "spawn"
	LifecycleEnd   LifecycleKind = "end"
	LifecycleError LifecycleKind = "error"
)

// LifecycleEvent reports connection state changes. Reason is set for end and error.
type LifecycleEvent struct {
	Kind   LifecycleKind
	Reason string
}

func (ChatEvent) isEvent()      {}
func (ServerMessage) isEvent()  {}
func (LifecycleEvent) isEvent() {}
