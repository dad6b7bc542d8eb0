// Package session is the game controller: it owns the player, the world
// graph, and the turn counter, dispatches commands, and drives the combat
// resolver. One session per process; strictly synchronous.
package session

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/emberforge/adventure/internal/art"
	"github.com/emberforge/adventure/internal/combat"
	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/entity"
	"github.com/emberforge/adventure/internal/item"
	"github.com/emberforge/adventure/internal/scenario"
	"github.com/emberforge/adventure/internal/world"
)

// State is the session's position in its lifecycle.
type State int

const (
	StateStarting State = iota
	StateExploring
	StateInCombat
	StateVictory
	StateDefeat
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateExploring:
		return "exploring"
	case StateInCombat:
		return "in combat"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session accepts no further commands.
func (s State) Terminal() bool {
	return s == StateVictory || s == StateDefeat
}

// Encounter tuning. Once the turn counter passes bossTurnThreshold, each
// encounter roll may spawn the antagonist instead of a regular enemy.
const (
	encounterChance   = 0.30
	bossChance        = 0.30
	bossTurnThreshold = 40
)

// storyStage tracks narrative progress for the `story` command.
type storyStage int

const (
	stageBeginning storyStage = iota
	stageInvestigation
	stageConfrontation
	stageComplete
)

func (s storyStage) String() string {
	switch s {
	case stageBeginning:
		return "The Beginning"
	case stageInvestigation:
		return "Investigation"
	case stageConfrontation:
		return "Face Off"
	case stageComplete:
		return "Victory"
	default:
		return "unknown"
	}
}

// Options configure a new session.
type Options struct {
	PlayerName string
	Encounters bool
	Roll       dice.Source
	Log        *slog.Logger
}

// Response is the outcome of one command.
type Response struct {
	Text  string
	State State
	Quit  bool
}

// Session holds all game state for one playthrough.
type Session struct {
	state   State
	player  *entity.Entity
	graph   *world.Graph
	current *world.Location
	bundle  *scenario.Bundle
	roll    dice.Source
	log     *slog.Logger

	turns      int
	combat     *combat.Resolver
	stage      storyStage
	encounters bool
}

// New builds a session from a validated scenario bundle: world graph,
// player, starting inventory. Returns scenario.ErrConfiguration (wrapped)
// when the bundle references anything it did not declare.
func New(bundle *scenario.Bundle, opts Options) (*Session, error) {
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if opts.Roll == nil {
		opts.Roll = dice.NewSeeded(1)
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.PlayerName == "" {
		opts.PlayerName = "Adventurer"
	}

	s := &Session{
		state:      StateStarting,
		bundle:     bundle,
		roll:       opts.Roll,
		log:        opts.Log,
		encounters: opts.Encounters,
	}

	items := make(map[string]item.Item, len(bundle.Items))
	for _, tpl := range bundle.Items {
		it, err := item.New(tpl.ID, tpl.Name, tpl.Description, tpl.Category, tpl.Power, tpl.OneTimeUse)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", scenario.ErrConfiguration, tpl.ID, err)
		}
		items[tpl.ID] = it
	}

	s.graph = world.NewGraph()
	for _, tpl := range bundle.Locations {
		s.graph.AddLocation(&world.Location{
			ID:           tpl.ID,
			Name:         tpl.Name,
			ShortDesc:    tpl.Short,
			LongDesc:     tpl.Long,
			RequiredItem: tpl.RequiredItem,
			GateLocked:   tpl.GateLocked,
		})
	}
	for _, tpl := range bundle.Locations {
		for _, ex := range tpl.Exits {
			kind := world.TransitionKind(ex.Kind)
			if ex.Kind == "" {
				kind = world.KindNormal
			}
			if err := s.graph.Connect(tpl.ID, ex.To, kind, ex.Direction); err != nil {
				return nil, fmt.Errorf("%w: %v", scenario.ErrConfiguration, err)
			}
		}
		for _, id := range tpl.Items {
			if err := s.graph.PlaceItem(tpl.ID, items[id]); err != nil {
				return nil, fmt.Errorf("%w: %v", scenario.ErrConfiguration, err)
			}
		}
		for _, name := range tpl.NPCs {
			npcTpl, _ := bundle.NPC(name)
			npc := &world.NPC{
				Name:           npcTpl.Name,
				Description:    npcTpl.Description,
				Greeting:       npcTpl.Greeting,
				Dialogue:       npcTpl.Dialogue,
				UnlockLocation: npcTpl.Unlocks,
			}
			if npcTpl.Reward != "" {
				reward := items[npcTpl.Reward]
				npc.Reward = &reward
			}
			if err := s.graph.PlaceNPC(tpl.ID, npc); err != nil {
				return nil, fmt.Errorf("%w: %v", scenario.ErrConfiguration, err)
			}
		}
	}

	s.player = entity.NewPlayer(opts.PlayerName, bundle.PlayerHealth)
	for _, id := range bundle.StartingItems {
		if err := s.player.AddItem(items[id]); err != nil {
			return nil, fmt.Errorf("%w: starting inventory: %v", scenario.ErrConfiguration, err)
		}
	}

	start, err := s.graph.Location(bundle.StartLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scenario.ErrConfiguration, err)
	}
	start.Visited = true
	s.current = start
	s.state = StateExploring

	s.log.Info("session started",
		"player", opts.PlayerName,
		"genre", bundle.Genre,
		"title", bundle.Title,
		"encounters", opts.Encounters)
	return s, nil
}

// State returns the session state.
func (s *Session) State() State { return s.state }

// Player returns the player entity, for status displays.
func (s *Session) Player() *entity.Entity { return s.player }

// Turns returns the turn counter.
func (s *Session) Turns() int { return s.turns }

// Location returns the current location.
func (s *Session) Location() *world.Location { return s.current }

// Enemy returns the active combat opponent, or nil outside combat.
func (s *Session) Enemy() *entity.Entity {
	if s.combat == nil {
		return nil
	}
	return s.combat.Enemy()
}

// Title returns the scenario title.
func (s *Session) Title() string { return s.bundle.Title }

// Intro renders the opening text shown once at the start of play.
func (s *Session) Intro() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", s.bundle.Title)
	fmt.Fprintf(&b, "Your goal: %s.\n\n", s.bundle.Goal)
	b.WriteString(s.current.LongDesc)
	if block := art.ForLocation(s.current.Name); block != "" {
		b.WriteString("\n" + block)
	}
	return b.String()
}

// Execute runs one command. An accepted command increments the turn counter
// exactly once whether or not its operation succeeds; unrecognized tokens
// and commands that don't apply to the current state return a hint and do
// not consume a turn.
func (s *Session) Execute(input string) Response {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.respond("Please enter a command.", false)
	}

	parts := strings.SplitN(strings.ToLower(input), " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	if s.state.Terminal() {
		return s.respond("The adventure is over. Start a new game to play again.", false)
	}

	if cmd == "quit" || cmd == "exit" {
		s.log.Info("player quit", "turns", s.turns)
		return Response{Text: "Farewell.", State: s.state, Quit: true}
	}

	s.log.Debug("command", "cmd", cmd, "arg", arg, "state", s.state.String(), "turn", s.turns)

	if s.state == StateInCombat {
		return s.executeCombat(cmd)
	}
	return s.executeExploring(cmd, arg)
}

// respond wraps a message, bumping the turn counter when the command was
// accepted.
func (s *Session) respond(text string, accepted bool) Response {
	if accepted {
		s.turns++
	}
	return Response{Text: text, State: s.state}
}
