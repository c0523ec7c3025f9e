package models

import "fmt"

// Verb names one entry of the action palette.
type Verb string

const (
	VerbFollow Verb = "follow"
	VerbMine   Verb = "mine"
	VerbBuild  Verb = "build"
	VerbFarm   Verb = "farm"
	VerbFight  Verb = "fight"
	VerbPatrol Verb = "patrol"
	VerbTidy   Verb = "tidy"
	VerbReply  Verb = "reply"
	// VerbStop is reachable from the literal table only; the advisor grammar never offers it.
	VerbStop Verb = "stop"
)

// PaletteVerbs is the advisor grammar, in prompt order.
var PaletteVerbs = []Verb{VerbFollow, VerbMine, VerbBuild, VerbFarm, VerbFight, VerbPatrol, VerbTidy, VerbReply}

// Command is a parsed palette invocation. Implementations are the closed set below.
type Command interface {
	Verb() Verb
	fmt.Stringer
}

type FollowCommand struct {
	Target string
}

type MineCommand struct {
	Block string
}

type BuildCommand struct {
	Structure string
}

type FarmCommand struct{}

type FightCommand struct{}

type PatrolCommand struct{}

type TidyCommand struct{}

type ReplyCommand struct {
	Text string
}

type StopCommand struct{}

func (FollowCommand) Verb() Verb { return VerbFollow }
func (MineCommand) Verb() Verb   { return VerbMine }
func (BuildCommand) Verb() Verb  { return VerbBuild }
func (FarmCommand) Verb() Verb   { return VerbFarm }
func (FightCommand) Verb() Verb  { return VerbFight }
func (PatrolCommand) Verb() Verb { return VerbPatrol }
func (TidyCommand) Verb() Verb   { return VerbTidy }
func (ReplyCommand) Verb() Verb  { return VerbReply }
func (StopCommand) Verb() Verb   { return VerbStop }

func (c FollowCommand) String() string { return "follow " + c.Target }
func (c MineCommand) String() string   { return "mine " + c.Block }
func (c BuildCommand) String() string  { return "build " + c.Structure }
func (FarmCommand) String() string     { return "farm" }
func (FightCommand) String() string    { return "fight" }
func (PatrolCommand) String() string   { return "patrol" }
func (TidyCommand) String() string     { return "tidy" }
func (c ReplyCommand) String() string  { return "reply " + c.Text }
func (StopCommand) String() string     { return "stop" }

// NewCommand builds the variant for a palette verb. ok is false for anything outside the palette.
func NewCommand(verb Verb, argument string) (Command, bool) {
	switch verb {
	case VerbFollow:
		return FollowCommand{Target: argument}, true
	case VerbMine:
		return MineCommand{Block: argument}, true
	case VerbBuild:
		return BuildCommand{Structure: argument}, true
	case VerbFarm:
		return FarmCommand{}, true
	case VerbFight:
		return FightCommand{}, true
	case VerbPatrol:
		return PatrolCommand{}, true
	case VerbTidy:
		return TidyCommand{}, true
	case VerbReply:
		return ReplyCommand{Text: argument}, true
	default:
		return nil, false
	}
}

type DispatchKind string

const (
	// DispatchCommand carries a palette command to execute.
	DispatchCommand DispatchKind = "command"
	// DispatchUnrecognized means the advisor answered with a verb outside the palette.
	DispatchUnrecognized DispatchKind = "unrecognized"
	// DispatchNoDecision means the advisor was disabled, failed, or returned nothing.
	DispatchNoDecision DispatchKind = "no_decision"
)

type DispatchSource string

const (
	SourceLiteral DispatchSource = "literal"
	SourceAdvisor DispatchSource = "advisor"
)

// Dispatch is the classifier's verdict for one chat line.
type Dispatch struct {
	Kind    DispatchKind
	Source  DispatchSource
	Command Command
	// Advice is the raw advisor line, empty for literal matches.
	Advice string
}

// Outcome is what a palette action reports back to the router. It is logged, never stored.
type Outcome string

const (
	OutcomeDone         Outcome = "done"
	OutcomeStarted      Outcome = "started"
	OutcomeAcknowledged Outcome = "acknowledged"
	OutcomeNotFound     Outcome = "not_found"
)
