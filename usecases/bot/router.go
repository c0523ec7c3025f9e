package bot

import (
	"context"
	"fmt"

	"pantherasmp/clients"
	"pantherasmp/core/log"
	"pantherasmp/models"
	"pantherasmp/services"
)

const (
	msgThinking      = "Thinking... 🤔"
	msgBrainLag      = "Brain lag 😵"
	msgNotUnderstood = "Didn't understand 🤷"
	msgGreeting      = "%s online 🐆 Say 'help'!"
)

// AutoEat is applied once the bot spawns.
var AutoEat = models.AutoEatOptions{Priority: "foodPoints", StartAt: 14}

// Router reacts to one connection's events for the helper bot.
type Router struct {
	world      clients.WorldClient
	classifier services.ClassifierService
	palette    services.PaletteService

	greeted bool
}

func NewRouter(world clients.WorldClient, classifier services.ClassifierService, palette services.PaletteService) *Router {
	return &Router{
		world:      world,
		classifier: classifier,
		palette:    palette,
	}
}

func (r *Router) HandleEvent(ctx context.Context, event models.Event) error {
	switch e := event.(type) {
	case models.ChatEvent:
		r.handleChat(ctx, e)
		return nil
	case models.LifecycleEvent:
		return r.handleLifecycle(ctx, e)
	case models.ServerMessage:
		log.Debug("Server message (%s): %s", e.Position, e.Text)
		return nil
	default:
		return fmt.Errorf("unexpected event type %T", event)
	}
}

func (r *Router) handleLifecycle(ctx context.Context, e models.LifecycleEvent) error {
	switch e.Kind {
	case models.LifecycleLogin:
		log.Info("🔑 Logged in as %s", r.world.Username())
	case models.LifecycleSpawn:
		return r.handleSpawn(ctx)
	case models.LifecycleError:
		log.Error("❌ World error: %s", e.Reason)
	case models.LifecycleEnd:
		log.Warn("[DISCONNECTED] Reason: %s", e.Reason)
	}
	return nil
}

// handleSpawn sets up auto-eat and greets. Respawns on the same connection do not greet again.
func (r *Router) handleSpawn(ctx context.Context) error {
	if r.greeted {
		log.Debug("Respawned")
		return nil
	}
	r.greeted = true
	log.Info("🐆 %s spawned", r.world.Username())

	autoEatErr := r.world.ConfigureAutoEat(ctx, AutoEat)
	r.safeChat(ctx, fmt.Sprintf(msgGreeting, r.world.Username()))

	if autoEatErr != nil {
		return fmt.Errorf("failed to configure auto-eat: %w", autoEatErr)
	}
	return nil
}

func (r *Router) handleChat(ctx context.Context, e models.ChatEvent) {
	if e.Username == r.world.Username() {
		return
	}
	log.Info("💬 <%s> %s", e.Username, e.Message)

	dispatch := r.classifier.Classify(ctx, e.Message, e.Username, func() {
		r.safeChat(ctx, msgThinking)
	})

	switch dispatch.Kind {
	case models.DispatchNoDecision:
		r.safeChat(ctx, msgBrainLag)
	case models.DispatchUnrecognized:
		r.safeChat(ctx, msgNotUnderstood)
	case models.DispatchCommand:
		result := r.palette.Execute(ctx, dispatch.Command)
		if result.IsError() {
			log.Warn("⚠️ %s command %q from %s did not complete: %v", dispatch.Source, dispatch.Command, e.Username, result.Error())
		}
	}
}

func (r *Router) safeChat(ctx context.Context, text string) {
	if err := r.world.Chat(ctx, text); err != nil {
		log.Warn("⚠️ Failed to send chat %q: %v", text, err)
	}
}
