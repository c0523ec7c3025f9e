package killfeed

import (
	"context"
	"strings"
	"time"

	"pantherasmp/clients"
	"pantherasmp/core/log"
	"pantherasmp/models"
)

// deathKeywords are matched case-sensitively as substrings. The padding keeps
// partial words out, which also means a keyword at the very end of a line never matches.
var deathKeywords = []string{
	" slain ",
	" fell ",
	" shot ",
	" burned ",
	" killed ",
	" void ",
	" blew up ",
	" died ",
	" magic ",
	" starved ",
}

// IsDeathMessage reports whether a server message looks like a death line.
func IsDeathMessage(msg models.ServerMessage) bool {
	if msg.Position != models.PositionSystem && msg.Position != models.PositionChat {
		return false
	}
	if strings.HasPrefix(msg.Text, "<") || strings.HasPrefix(msg.Text, "[") {
		return false
	}
	for _, keyword := range deathKeywords {
		if strings.Contains(msg.Text, keyword) {
			return true
		}
	}
	return false
}

type KillFeedService struct {
	sinks []clients.KillFeedSink
}

func NewKillFeedService(sinks ...clients.KillFeedSink) *KillFeedService {
	return &KillFeedService{sinks: sinks}
}

func (s *KillFeedService) Inspect(ctx context.Context, msg models.ServerMessage) bool {
	if !IsDeathMessage(msg) {
		return false
	}

	log.Info("[BLOOD SHED] %s", msg.Text)
	detectedAt := msg.ReceivedAt
	if detectedAt.IsZero() {
		detectedAt = time.Now()
	}
	event := models.KillEvent{Text: msg.Text, DetectedAt: detectedAt}

	for _, sink := range s.sinks {
		if err := sink.PublishKill(ctx, event); err != nil {
			log.Error("❌ Kill-feed sink %s failed: %v", sink.Name(), err)
		}
	}
	return true
}
