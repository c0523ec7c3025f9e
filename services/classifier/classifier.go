package classifier

import (
	"context"
	"strings"

	"github.com/samber/mo"

	"pantherasmp/core/log"
	"pantherasmp/models"
	"pantherasmp/services"
)

const HelpText = "Commands: follow me, mine <block>, farm, fight, patrol, tidy, stop"

type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
)

type literalRule struct {
	kind    matchKind
	pattern string
	build   func(rest, speaker string) models.Command
}

// literalRules are checked in order against the case-folded text; first match wins.
var literalRules = []literalRule{
	{matchExact, "help", func(_, _ string) models.Command { return models.ReplyCommand{Text: HelpText} }},
	{matchExact, "follow me", func(_, speaker string) models.Command { return models.FollowCommand{Target: speaker} }},
	{matchPrefix, "mine ", func(rest, _ string) models.Command { return models.MineCommand{Block: firstWord(rest)} }},
	{matchExact, "farm", func(_, _ string) models.Command { return models.FarmCommand{} }},
	{matchExact, "fight", func(_, _ string) models.Command { return models.FightCommand{} }},
	{matchExact, "stop", func(_, _ string) models.Command { return models.StopCommand{} }},
	{matchExact, "tidy", func(_, _ string) models.Command { return models.TidyCommand{} }},
	{matchExact, "patrol", func(_, _ string) models.Command { return models.PatrolCommand{} }},
}

type ClassifierService struct {
	advisor services.AdvisorService
}

func NewClassifierService(advisor services.AdvisorService) *ClassifierService {
	return &ClassifierService{advisor: advisor}
}

// MatchLiteral checks the built-in command table. It never consults the advisor.
func (s *ClassifierService) MatchLiteral(rawText, speaker string) mo.Option[models.Command] {
	text := strings.ToLower(rawText)
	for _, rule := range literalRules {
		switch rule.kind {
		case matchExact:
			if text == rule.pattern {
				return mo.Some(rule.build("", speaker))
			}
		case matchPrefix:
			if rest, ok := strings.CutPrefix(text, rule.pattern); ok {
				return mo.Some(rule.build(rest, speaker))
			}
		}
	}
	return mo.None[models.Command]()
}

func (s *ClassifierService) AdvisorEnabled() bool {
	return s.advisor.Enabled()
}

// Advise asks the advisor about the original-case text and parses its line.
func (s *ClassifierService) Advise(ctx context.Context, rawText string) models.Dispatch {
	line, ok := s.advisor.Decide(ctx, rawText).Get()
	if !ok {
		return models.Dispatch{Kind: models.DispatchNoDecision, Source: models.SourceAdvisor}
	}
	return ParseAdvice(line)
}

// Classify tries the literal table, then the advisor. beforeAdvise runs only when
// the advisor is enabled and is about to be asked; it may be nil.
func (s *ClassifierService) Classify(ctx context.Context, rawText, speaker string, beforeAdvise func()) models.Dispatch {
	if cmd, ok := s.MatchLiteral(rawText, speaker).Get(); ok {
		log.Debug("Literal command %q from %s", cmd.String(), speaker)
		return models.Dispatch{Kind: models.DispatchCommand, Source: models.SourceLiteral, Command: cmd}
	}
	if beforeAdvise != nil && s.AdvisorEnabled() {
		beforeAdvise()
	}
	return s.Advise(ctx, rawText)
}

// ParseAdvice splits an advisor line on the first space into verb and argument.
// Verbs outside the palette produce an unrecognized dispatch.
func ParseAdvice(line string) models.Dispatch {
	line = strings.TrimSpace(line)
	verb, argument, _ := strings.Cut(line, " ")

	cmd, ok := models.NewCommand(models.Verb(strings.ToLower(verb)), argument)
	if !ok {
		log.Warn("⚠️ Advisor answered with unknown action %q", line)
		return models.Dispatch{Kind: models.DispatchUnrecognized, Source: models.SourceAdvisor, Advice: line}
	}
	return models.Dispatch{Kind: models.DispatchCommand, Source: models.SourceAdvisor, Command: cmd, Advice: line}
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
