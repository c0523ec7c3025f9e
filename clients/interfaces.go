package clients

import (
	"context"

	"github.com/samber/mo"

	"pantherasmp/models"
)

// WorldClient is the capability the bot drives: one live game connection.
// Movement, pathfinding, collection and combat all run on the world side;
// these calls only start them or ask about the world.
type WorldClient interface {
	// Events is the connection's single event queue. It is closed after the final
	// LifecycleEnd event.
	Events() <-chan models.Event
	Username() string
	Close() error

	Chat(ctx context.Context, text string) error
	FindPlayer(ctx context.Context, name string) (mo.Option[models.Entity], error)
	Follow(ctx context.Context, target models.Entity, distance float64) error
	StopPathing(ctx context.Context) error
	FindBlock(ctx context.Context, name string, maxDistance int) (mo.Option[models.Block], error)
	// CollectBlock blocks until the block is pathed to, mined, and picked up.
	CollectBlock(ctx context.Context, block models.Block) error
	NearestEntity(ctx context.Context, entityType models.EntityType) (mo.Option[models.Entity], error)
	Attack(ctx context.Context, target models.Entity) error
	InventoryItems(ctx context.Context) ([]models.Item, error)
	TossStack(ctx context.Context, item models.Item) error
	ConfigureAutoEat(ctx context.Context, opts models.AutoEatOptions) error
}

// Dialer opens a new world connection. Each reconnect gets a fresh client.
type Dialer interface {
	Dial(ctx context.Context) (WorldClient, error)
}

// LLMClient completes a single prompt with free text.
type LLMClient interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// KillFeedSink receives every detected death line.
type KillFeedSink interface {
	Name() string
	PublishKill(ctx context.Context, event models.KillEvent) error
}
