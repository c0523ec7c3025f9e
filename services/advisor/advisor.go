package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"pantherasmp/clients"
	"pantherasmp/core"
	"pantherasmp/core/log"
	"pantherasmp/models"
)

const promptTemplate = `
You are %s, a Minecraft helper bot.

Player said: "%s"

Choose ONE action only:
%s
Respond with ONE line only.
`

// grammarLines are the action forms offered to the model, one per palette verb.
var grammarLines = map[models.Verb]string{
	models.VerbFollow: "follow <player>",
	models.VerbMine:   "mine <block>",
	models.VerbBuild:  "build house",
	models.VerbFarm:   "farm",
	models.VerbFight:  "fight",
	models.VerbPatrol: "patrol",
	models.VerbTidy:   "tidy",
	models.VerbReply:  "reply <text>",
}

type AdvisorService struct {
	botName   string
	providers []clients.LLMClient
}

// NewAdvisorService builds an advisor over the given providers, tried in order.
// With no providers the advisor is disabled and every decision is None.
func NewAdvisorService(botName string, providers ...clients.LLMClient) *AdvisorService {
	return &AdvisorService{
		botName:   botName,
		providers: providers,
	}
}

func (s *AdvisorService) Enabled() bool {
	return len(s.providers) > 0
}

func (s *AdvisorService) Decide(ctx context.Context, utterance string) mo.Option[string] {
	if !s.Enabled() {
		log.Debug("%v, no decision for %q", core.ErrAdvisorDisabled, utterance)
		return mo.None[string]()
	}

	log.Info("📋 Starting to ask advisor about: %q", utterance)
	prompt := BuildPrompt(s.botName, utterance)

	for _, provider := range s.providers {
		text, err := provider.Complete(ctx, prompt)
		if err != nil {
			log.Error("❌ Advisor provider %s failed: %v", provider.Name(), err)
			continue
		}

		line := FirstLine(text)
		if line == "" {
			log.Warn("⚠️ Advisor provider %s returned no usable line", provider.Name())
			continue
		}

		log.Info("📋 Completed successfully - %s decided: %q", provider.Name(), line)
		return mo.Some(line)
	}

	log.Warn("⚠️ %v for %q", core.ErrNoDecision, utterance)
	return mo.None[string]()
}

// BuildPrompt renders the grammar prompt with the utterance embedded as written.
func BuildPrompt(botName, utterance string) string {
	var grammar strings.Builder
	for _, verb := range models.PaletteVerbs {
		grammar.WriteString(grammarLines[verb])
		grammar.WriteString("\n")
	}
	return fmt.Sprintf(promptTemplate, botName, utterance, grammar.String())
}

// FirstLine returns the first line of the model output, trimmed.
func FirstLine(text string) string {
	text = strings.TrimSpace(text)
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
