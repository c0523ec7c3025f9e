package services

import (
	"context"

	"github.com/samber/mo"

	"pantherasmp/models"
)

// AdvisorService turns a free-text utterance into one grammar line via an LLM
type AdvisorService interface {
	Enabled() bool
	// Decide never fails; every provider problem is reported as None.
	Decide(ctx context.Context, utterance string) mo.Option[string]
}

// ClassifierService maps chat lines to palette dispatches
type ClassifierService interface {
	Classify(ctx context.Context, rawText, speaker string, beforeAdvise func()) models.Dispatch
}

// PaletteService executes palette commands against one world connection
type PaletteService interface {
	Execute(ctx context.Context, cmd models.Command) mo.Result[models.Outcome]
}

// KillFeedService detects death lines and fans them out to the kill-feed sinks
type KillFeedService interface {
	// Inspect reports whether msg was a death line and was published.
	Inspect(ctx context.Context, msg models.ServerMessage) bool
}
