package connection

import (
	"context"
	"fmt"

	"github.com/gammazero/workerpool"

	"pantherasmp/clients"
	"pantherasmp/middleware"
	"pantherasmp/models"
)

// EventHandler handles one world event.
type EventHandler func(ctx context.Context, event models.Event) error

// Consume feeds every event from the client's queue to handle, one at a time and in
// arrival order. It returns when the queue closes or ctx is done, after the
// handler in flight has finished.
func Consume(ctx context.Context, world clients.WorldClient, alerter *middleware.ErrorAlerter, handle EventHandler) {
	// A single worker keeps handling strictly sequential.
	wp := workerpool.New(1)
	defer wp.StopWait()

	events := world.Events()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			wp.Submit(alerter.WrapEventHandler(EventName(event), func() error {
				return handle(ctx, event)
			}))
		case <-ctx.Done():
			return
		}
	}
}

// EventName labels an event for logs and alerts.
func EventName(event models.Event) string {
	switch e := event.(type) {
	case models.ChatEvent:
		return "chat"
	case models.ServerMessage:
		return "message"
	case models.LifecycleEvent:
		return string(e.Kind)
	default:
		return fmt.Sprintf("%T", event)
	}
}
