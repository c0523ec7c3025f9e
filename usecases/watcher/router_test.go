package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantherasmp/clients"
	"pantherasmp/clients/world"
	"pantherasmp/middleware"
	"pantherasmp/models"
	"pantherasmp/services"
	"pantherasmp/services/killfeed"
)

func TestRouter_HandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("server messages go to the kill feed", func(t *testing.T) {
		client := world.NewMockWorldClient("PantheraWatcher")
		feed := &services.MockKillFeedService{}
		msg := models.ServerMessage{Text: "Steve was slain by Zombie", Position: models.PositionChat}
		feed.On("Inspect", ctx, msg).Return(true).Once()
		router := NewRouter(client, feed)

		require.NoError(t, router.HandleEvent(ctx, msg))
		feed.AssertExpectations(t)
	})

	t.Run("chat and lifecycle events never reach the kill feed", func(t *testing.T) {
		client := world.NewMockWorldClient("PantheraWatcher")
		feed := &services.MockKillFeedService{}
		router := NewRouter(client, feed)

		require.NoError(t, router.HandleEvent(ctx, models.ChatEvent{Username: "Steve", Message: "I died lol"}))
		require.NoError(t, router.HandleEvent(ctx, models.LifecycleEvent{Kind: models.LifecycleSpawn}))
		require.NoError(t, router.HandleEvent(ctx, models.LifecycleEvent{Kind: models.LifecycleEnd, Reason: "kicked"}))

		feed.AssertNotCalled(t, "Inspect", mock.Anything, mock.Anything)
		client.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})
}

func TestNewSession_BroadcastsInArrivalOrder(t *testing.T) {
	client := world.NewMockWorldClient("PantheraWatcher")
	sink := clients.NewMockKillFeedSink("websocket")

	var published []string
	sink.On("PublishKill", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		published = append(published, args.Get(1).(models.KillEvent).Text)
	})

	session := NewSession(killfeed.NewKillFeedService(sink), middleware.NewErrorAlerter(middleware.SlackAlertConfig{}))

	client.Emit(models.ServerMessage{Text: "Steve was slain by Zombie", Position: models.PositionChat})
	client.Emit(models.ServerMessage{Text: "<Steve> hello", Position: models.PositionChat})
	client.Emit(models.ServerMessage{Text: "Alex was shot by Skeleton", Position: models.PositionSystem})
	client.Emit(models.ServerMessage{Text: "Steve was slain by Zombie", Position: models.PositionChat})
	client.Disconnect("server closed")

	done := make(chan struct{})
	go func() {
		session(context.Background(), client)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not return after disconnect")
	}

	assert.Equal(t, []string{
		"Steve was slain by Zombie",
		"Alex was shot by Skeleton",
		"Steve was slain by Zombie",
	}, published)
}
