package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"pantherasmp/models"
)

// KillFeedChannel mirrors kill events into a Discord text channel.
type KillFeedChannel struct {
	session   *discordgo.Session
	channelID string
}

// NewKillFeedChannel creates a Discord sink posting as the given bot.
// A nil httpClient keeps discordgo's default client.
func NewKillFeedChannel(httpClient *http.Client, botToken, channelID string) (*KillFeedChannel, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord bot token cannot be empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID cannot be empty")
	}

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if httpClient != nil {
		session.Client = httpClient
	}

	return &KillFeedChannel{session: session, channelID: channelID}, nil
}

func (c *KillFeedChannel) Name() string {
	return "discord"
}

func (c *KillFeedChannel) PublishKill(ctx context.Context, event models.KillEvent) error {
	content := "☠️ " + event.Text
	if _, err := c.session.ChannelMessageSend(c.channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post kill event to channel %s: %w", c.channelID, err)
	}
	return nil
}
