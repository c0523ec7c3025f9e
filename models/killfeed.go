package models

import "time"

const KillEventName = "kill"

// KillEvent is a death line forwarded verbatim to kill-feed subscribers.
type KillEvent struct {
	Text       string
	DetectedAt time.Time
}

// KillFeedPayload is the wire shape pushed to websocket subscribers.
type KillFeedPayload struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}

func (e KillEvent) Payload() KillFeedPayload {
	return KillFeedPayload{Event: KillEventName, Text: e.Text}
}
