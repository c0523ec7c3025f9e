package palette

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/mo"

	"pantherasmp/clients"
	"pantherasmp/core"
	"pantherasmp/core/log"
	"pantherasmp/models"
)

const (
	FollowDistance = 1.0
	MineRadius     = 32
)

// Chat lines the palette speaks
const (
	msgPlayerNotFound = "Can't see you 👀"
	msgBlockNotFound  = "Block not found 😔"
	msgMined          = "Mined %s ⛏️"
	msgMineFailed     = "Couldn't mine %s 😔"
	msgBuild          = "House building is basic for now 🏠"
	msgFarm           = "Farming mode 🌾"
	msgNoMobs         = "No mobs nearby 😴"
	msgPatrol         = "Patrolling area 🚓"
	msgTidied         = "Inventory cleaned 🧹"
	msgStopped        = "Stopped 🛑"
)

// PaletteService runs palette commands against one world connection.
type PaletteService struct {
	world         clients.WorldClient
	actionTimeout time.Duration
}

func NewPaletteService(world clients.WorldClient, actionTimeout time.Duration) *PaletteService {
	return &PaletteService{
		world:         world,
		actionTimeout: actionTimeout,
	}
}

// Execute runs one command. Failures come back as an error result; nothing panics
// out and chat failures are never reported.
func (s *PaletteService) Execute(ctx context.Context, cmd models.Command) mo.Result[models.Outcome] {
	log.Info("📋 Starting to execute %s", cmd.String())

	result := s.execute(ctx, cmd)
	if outcome, err := result.Get(); err != nil {
		log.Error("❌ Action %s failed: %v", cmd.Verb(), err)
	} else {
		log.Info("📋 Completed successfully - %s finished with outcome %s", cmd.Verb(), outcome)
	}
	return result
}

func (s *PaletteService) execute(ctx context.Context, cmd models.Command) mo.Result[models.Outcome] {
	switch c := cmd.(type) {
	case models.FollowCommand:
		return s.follow(ctx, c.Target)
	case models.MineCommand:
		return s.mine(ctx, c.Block)
	case models.BuildCommand:
		return s.acknowledge(ctx, msgBuild)
	case models.FarmCommand:
		return s.acknowledge(ctx, msgFarm)
	case models.FightCommand:
		return s.fight(ctx)
	case models.PatrolCommand:
		return s.acknowledge(ctx, msgPatrol)
	case models.TidyCommand:
		return s.tidy(ctx)
	case models.ReplyCommand:
		return s.acknowledge(ctx, c.Text)
	case models.StopCommand:
		return s.stop(ctx)
	default:
		return mo.Err[models.Outcome](fmt.Errorf("unsupported command %T", cmd))
	}
}

func (s *PaletteService) follow(ctx context.Context, name string) mo.Result[models.Outcome] {
	player, err := s.world.FindPlayer(ctx, name)
	if err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to look up player %s: %w", name, err))
	}
	target, ok := player.Get()
	if !ok {
		s.safeChat(ctx, msgPlayerNotFound)
		return mo.Ok(models.OutcomeNotFound)
	}

	if err := s.world.Follow(ctx, target, FollowDistance); err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to follow %s: %w", name, err))
	}
	return mo.Ok(models.OutcomeStarted)
}

func (s *PaletteService) mine(ctx context.Context, name string) mo.Result[models.Outcome] {
	if name == "" {
		s.safeChat(ctx, msgBlockNotFound)
		return mo.Ok(models.OutcomeNotFound)
	}

	found, err := s.world.FindBlock(ctx, name, MineRadius)
	if core.IsNotFoundError(err) {
		// unknown block names are rejected by the bridge registry lookup
		found, err = mo.None[models.Block](), nil
	}
	if err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to search for %s: %w", name, err))
	}
	block, ok := found.Get()
	if !ok {
		s.safeChat(ctx, msgBlockNotFound)
		return mo.Ok(models.OutcomeNotFound)
	}

	collectCtx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()
	if err := s.world.CollectBlock(collectCtx, block); err != nil {
		s.safeChat(ctx, fmt.Sprintf(msgMineFailed, name))
		return mo.Err[models.Outcome](fmt.Errorf("failed to collect %s at %s: %w", name, block.Position, err))
	}

	s.safeChat(ctx, fmt.Sprintf(msgMined, name))
	return mo.Ok(models.OutcomeDone)
}

func (s *PaletteService) fight(ctx context.Context) mo.Result[models.Outcome] {
	nearest, err := s.world.NearestEntity(ctx, models.EntityHostile)
	if err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to look for hostile mobs: %w", err))
	}
	mob, ok := nearest.Get()
	if !ok {
		s.safeChat(ctx, msgNoMobs)
		return mo.Ok(models.OutcomeNotFound)
	}

	if err := s.world.Attack(ctx, mob); err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to attack %s: %w", mob.Name, err))
	}
	return mo.Ok(models.OutcomeStarted)
}

// tidy drops every stack one by one. A failed drop is logged and the rest continue.
func (s *PaletteService) tidy(ctx context.Context) mo.Result[models.Outcome] {
	items, err := s.world.InventoryItems(ctx)
	if err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to list inventory: %w", err))
	}

	dropped := 0
	for _, item := range items {
		if err := s.world.TossStack(ctx, item); err != nil {
			log.Warn("⚠️ Failed to drop %dx %s from slot %d: %v", item.Count, item.Name, item.Slot, err)
			continue
		}
		dropped++
	}
	log.Info("🧹 Dropped %d/%d stacks", dropped, len(items))

	s.safeChat(ctx, msgTidied)
	return mo.Ok(models.OutcomeDone)
}

func (s *PaletteService) stop(ctx context.Context) mo.Result[models.Outcome] {
	if err := s.world.StopPathing(ctx); err != nil {
		return mo.Err[models.Outcome](fmt.Errorf("failed to clear pathfinding goal: %w", err))
	}
	s.safeChat(ctx, msgStopped)
	return mo.Ok(models.OutcomeAcknowledged)
}

func (s *PaletteService) acknowledge(ctx context.Context, text string) mo.Result[models.Outcome] {
	s.safeChat(ctx, text)
	return mo.Ok(models.OutcomeAcknowledged)
}

// safeChat sends best-effort chat. Errors are logged and dropped.
func (s *PaletteService) safeChat(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if err := s.world.Chat(ctx, text); err != nil {
		log.Warn("⚠️ Failed to send chat %q: %v", text, err)
	}
}

