package watcher

import (
	"context"
	"fmt"

	"pantherasmp/clients"
	"pantherasmp/core/log"
	"pantherasmp/middleware"
	"pantherasmp/models"
	"pantherasmp/services"
	"pantherasmp/usecases/connection"
)

// Router forwards death lines from one connection to the kill feed.
type Router struct {
	world    clients.WorldClient
	killFeed services.KillFeedService
}

func NewRouter(world clients.WorldClient, killFeed services.KillFeedService) *Router {
	return &Router{world: world, killFeed: killFeed}
}

func (r *Router) HandleEvent(ctx context.Context, event models.Event) error {
	switch e := event.(type) {
	case models.ServerMessage:
		r.killFeed.Inspect(ctx, e)
	case models.ChatEvent:
		// Player chat also arrives as a framed server message; nothing to do here.
	case models.LifecycleEvent:
		switch e.Kind {
		case models.LifecycleLogin:
			log.Info("🔑 %s logged in", r.world.Username())
		case models.LifecycleSpawn:
			log.Info("👁️ %s spawned and is watching", r.world.Username())
		case models.LifecycleError:
			log.Error("[ERROR] %s", e.Reason)
		case models.LifecycleEnd:
			log.Warn("[DISCONNECTED] Reason: %s", e.Reason)
		}
	default:
		return fmt.Errorf("unexpected event type %T", event)
	}
	return nil
}

// NewSession wires a router onto every connection the supervisor opens.
func NewSession(killFeed services.KillFeedService, alerter *middleware.ErrorAlerter) connection.SessionFunc {
	return func(ctx context.Context, world clients.WorldClient) {
		connection.Consume(ctx, world, alerter, NewRouter(world, killFeed).HandleEvent)
	}
}
