package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pantherasmp/clients"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("PantherBot", "Can you get me some Wood?")

	assert.Contains(t, prompt, "You are PantherBot, a Minecraft helper bot.")
	assert.Contains(t, prompt, `Player said: "Can you get me some Wood?"`)
	assert.Contains(t, prompt, "follow <player>\nmine <block>\nbuild house\nfarm\nfight\npatrol\ntidy\nreply <text>\n")
	assert.Contains(t, prompt, "Respond with ONE line only.")
	assert.NotContains(t, prompt, "stop")
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single line", "mine stone", "mine stone"},
		{"surrounding whitespace", "  \n mine stone \n", "mine stone"},
		{"multiple lines", "reply hi there\nand more\n", "reply hi there"},
		{"windows line endings", "farm\r\nfight", "farm"},
		{"blank", "   \n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstLine(tt.input))
		})
	}
}

func TestAdvisorService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without providers", func(t *testing.T) {
		service := NewAdvisorService("PantherBot")

		assert.False(t, service.Enabled())
		assert.True(t, service.Decide(ctx, "hello").IsAbsent())
	})

	t.Run("first provider answers", func(t *testing.T) {
		primary := clients.NewMockLLMClient("gemini").WithCompletion("mine stone\nbecause you asked")
		fallback := clients.NewMockLLMClient("claude")
		service := NewAdvisorService("PantherBot", primary, fallback)

		decision := service.Decide(ctx, "get me stone")

		assert.Equal(t, "mine stone", decision.MustGet())
		primary.AssertExpectations(t)
		fallback.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("falls back when first provider fails", func(t *testing.T) {
		primary := clients.NewMockLLMClient("gemini").WithError(errors.New("quota exceeded"))
		fallback := clients.NewMockLLMClient("claude").WithCompletion("reply hi!")
		service := NewAdvisorService("PantherBot", primary, fallback)

		assert.Equal(t, "reply hi!", service.Decide(ctx, "hello").MustGet())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("blank answer counts as no decision", func(t *testing.T) {
		only := clients.NewMockLLMClient("gemini").WithCompletion("  \n")
		service := NewAdvisorService("PantherBot", only)

		assert.True(t, service.Decide(ctx, "hello").IsAbsent())
	})

	t.Run("every provider fails", func(t *testing.T) {
		primary := clients.NewMockLLMClient("gemini").WithError(errors.New("timeout"))
		fallback := clients.NewMockLLMClient("claude").WithError(errors.New("overloaded"))
		service := NewAdvisorService("PantherBot", primary, fallback)

		assert.True(t, service.Decide(ctx, "hello").IsAbsent())
	})

	t.Run("prompt carries original case utterance", func(t *testing.T) {
		provider := clients.NewMockLLMClient("gemini")
		provider.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, `"Build Me A HOUSE"`)
		})).Return("build house", nil)
		service := NewAdvisorService("PantherBot", provider)

		assert.Equal(t, "build house", service.Decide(ctx, "Build Me A HOUSE").MustGet())
		provider.AssertExpectations(t)
	})
}
