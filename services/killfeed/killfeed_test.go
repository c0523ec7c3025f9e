package killfeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pantherasmp/clients"
	"pantherasmp/models"
)

func TestIsDeathMessage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		position models.MessagePosition
		expected bool
	}{
		{"slain on chat", "Steve was slain by Zombie", models.PositionChat, true},
		{"fell on system", "Alex fell from a high place", models.PositionSystem, true},
		{"shot", "Steve was shot by Skeleton", models.PositionSystem, true},
		{"blew up", "Steve blew up", models.PositionSystem, false},
		{"blew up mid line", "Steve blew up with style", models.PositionSystem, true},
		{"void", "Alex fell out of the world into the void ", models.PositionSystem, true},
		{"keyword at line end", "Steve died", models.PositionSystem, false},
		{"ordinary sentence", "The plant died yesterday", models.PositionSystem, true},
		{"player chat framing", "<Steve> I was slain earlier", models.PositionChat, false},
		{"bracket framing", "[Server] Steve was slain by Zombie", models.PositionSystem, false},
		{"action bar", "Steve was slain by Zombie", models.PositionGameInfo, false},
		{"case sensitive", "Steve was SLAIN by Zombie", models.PositionChat, false},
		{"partial word", "Steve fellowship", models.PositionChat, false},
		{"chat hello", "<Steve> hello", models.PositionChat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := models.ServerMessage{Text: tt.text, Position: tt.position}
			assert.Equal(t, tt.expected, IsDeathMessage(msg))
		})
	}
}

func TestKillFeedService_Inspect(t *testing.T) {
	ctx := context.Background()

	t.Run("death line goes to every sink once", func(t *testing.T) {
		hub := clients.NewMockKillFeedSink("websocket")
		discord := clients.NewMockKillFeedSink("discord")
		expected := func(event models.KillEvent) bool {
			return event.Text == "Steve was slain by Zombie" && !event.DetectedAt.IsZero()
		}
		hub.On("PublishKill", ctx, mock.MatchedBy(expected)).Return(nil).Once()
		discord.On("PublishKill", ctx, mock.MatchedBy(expected)).Return(nil).Once()
		service := NewKillFeedService(hub, discord)

		published := service.Inspect(ctx, models.ServerMessage{
			Text:     "Steve was slain by Zombie",
			Position: models.PositionChat,
		})

		assert.True(t, published)
		hub.AssertExpectations(t)
		discord.AssertExpectations(t)
	})

	t.Run("framed chat is never published", func(t *testing.T) {
		hub := clients.NewMockKillFeedSink("websocket")
		service := NewKillFeedService(hub)

		published := service.Inspect(ctx, models.ServerMessage{Text: "<Steve> hello", Position: models.PositionChat})

		assert.False(t, published)
		hub.AssertNotCalled(t, "PublishKill", mock.Anything, mock.Anything)
	})

	t.Run("failing sink does not block the others", func(t *testing.T) {
		discord := clients.NewMockKillFeedSink("discord")
		hub := clients.NewMockKillFeedSink("websocket")
		receivedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		want := models.KillEvent{Text: "Alex burned to death in lava", DetectedAt: receivedAt}
		discord.On("PublishKill", ctx, want).Return(errors.New("rate limited")).Once()
		hub.On("PublishKill", ctx, want).Return(nil).Once()
		service := NewKillFeedService(discord, hub)

		published := service.Inspect(ctx, models.ServerMessage{
			Text:       "Alex burned to death in lava",
			Position:   models.PositionSystem,
			ReceivedAt: receivedAt,
		})

		assert.True(t, published)
		discord.AssertExpectations(t)
		hub.AssertExpectations(t)
	})
}
