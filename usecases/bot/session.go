package bot

import (
	"context"
	"time"

	"pantherasmp/clients"
	"pantherasmp/middleware"
	"pantherasmp/services"
	"pantherasmp/services/palette"
	"pantherasmp/usecases/connection"
)

// NewSession wires a fresh palette and router onto every connection the supervisor opens.
func NewSession(
	classifier services.ClassifierService,
	actionTimeout time.Duration,
	alerter *middleware.ErrorAlerter,
) connection.SessionFunc {
	return func(ctx context.Context, world clients.WorldClient) {
		router := NewRouter(world, classifier, palette.NewPaletteService(world, actionTimeout))
		connection.Consume(ctx, world, alerter, router.HandleEvent)
	}
}
