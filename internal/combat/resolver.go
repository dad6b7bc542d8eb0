// Package combat resolves turn-based encounters. A Resolver owns one fight:
// the player acts, then the enemy attacks, until one side drops or the
// player escapes.
package combat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/entity"
)

// ErrNoHealingItem is returned when the player heals with nothing to heal
// with. The round is still consumed: healing forfeits the attack whether or
// not a potion was found, and the enemy acts either way.
var ErrNoHealingItem = errors.New("no healing item available")

// ErrCombatOver is returned when an action arrives after the fight reached a
// terminal state.
var ErrCombatOver = errors.New("combat is already over")

// State is the resolver's position in its lifecycle.
type State int

const (
	StateReady State = iota
	StateRoundInProgress
	StateVictory
	StateDefeat
	StateFled
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRoundInProgress:
		return "round in progress"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the fight is finished.
func (s State) Terminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateFled
}

// Action is one of the player's combat options.
type Action string

const (
	ActionAttack Action = "attack"
	ActionDefend Action = "defend"
	ActionHeal   Action = "heal"
	ActionFlee   Action = "flee"
)

const (
	fleeChance  = 0.60
	defendBonus = 5 // extra armor for the round the player braces
	minDamage   = 1 // armor never fully negates a hit
)

// Regular and boss enemy stat blocks.
const (
	RegularHealth = 30
	RegularDamage = 8
	RegularArmor  = 2

	BossHealth = 80
	BossDamage = 15
	BossArmor  = 5
)

// NewRegularEnemy builds a standard encounter enemy.
func NewRegularEnemy(name string) *entity.Entity {
	return entity.NewEnemy(name, RegularHealth, RegularDamage, RegularArmor)
}

// NewBoss builds the antagonist's stat block.
func NewBoss(name string) *entity.Entity {
	return entity.NewEnemy(name, BossHealth, BossDamage, BossArmor)
}

// Report describes what happened in one round.
type Report struct {
	Round       int
	Log         string
	DamageDealt int
	DamageTaken int
	State       State
}

// Resolver runs one encounter between the player and an enemy.
type Resolver struct {
	player *entity.Entity
	enemy  *entity.Entity
	roll   dice.Source
	boss   bool

	state State
	round int
}

// New starts an encounter in StateReady.
func New(player, enemy *entity.Entity, roll dice.Source, boss bool) *Resolver {
	return &Resolver{player: player, enemy: enemy, roll: roll, boss: boss}
}

// Enemy returns the opposing combatant.
func (r *Resolver) Enemy() *entity.Entity { return r.enemy }

// Boss reports whether this encounter is against the antagonist.
func (r *Resolver) Boss() bool { return r.boss }

// State returns the resolver's current state.
func (r *Resolver) State() State { return r.state }

// Round resolves one round for the chosen player action. The player acts
// first; the enemy then attacks unless the player escaped or the enemy is
// already down. Health checks short-circuit after each action.
func (r *Resolver) Round(action Action) (Report, error) {
	if r.state.Terminal() {
		return Report{State: r.state}, ErrCombatOver
	}
	r.state = StateRoundInProgress
	r.round++

	rep := Report{Round: r.round}
	var log strings.Builder
	fmt.Fprintf(&log, "Round %d:\n", r.round)

	var actionErr error
	playerArmorBonus := 0

	switch action {
	case ActionAttack:
		dealt := r.damage(r.player.AttackPower(), r.enemy.ArmorValue())
		r.enemy.TakeDamage(dealt)
		rep.DamageDealt = dealt
		fmt.Fprintf(&log, "  You attack the %s for %d damage.\n", r.enemy.Name, dealt)

	case ActionDefend:
		playerArmorBonus = defendBonus
		fmt.Fprintf(&log, "  You brace for impact (+%d armor this round).\n", defendBonus)

	case ActionHeal:
		// Healing forfeits the attack; the enemy acts regardless of
		// whether a potion was found.
		if it, ok := r.player.FindHealing(); ok {
			if it.OneTimeUse {
				r.player.RemoveItem(it.ID)
			}
			r.player.Heal(it.Power)
			fmt.Fprintf(&log, "  You use the %s and recover %d HP.\n", it.Name, it.Power)
		} else {
			actionErr = ErrNoHealingItem
			log.WriteString("  You fumble for a healing item and find nothing!\n")
		}

	case ActionFlee:
		if r.roll.Float64() < fleeChance {
			log.WriteString("  You manage to escape!\n")
			r.state = StateFled
			rep.Log = log.String()
			rep.State = r.state
			return rep, nil
		}
		fmt.Fprintf(&log, "  You can't escape the %s!\n", r.enemy.Name)

	default:
		return Report{State: r.state}, fmt.Errorf("unknown combat action %q", action)
	}

	if r.enemy.Defeated() {
		r.state = StateVictory
		fmt.Fprintf(&log, "\nVICTORY! You defeated the %s!", r.enemy.Name)
		rep.Log = log.String()
		rep.State = r.state
		return rep, actionErr
	}

	taken := r.damage(r.enemy.AttackPower(), r.player.ArmorValue()+playerArmorBonus)
	r.player.TakeDamage(taken)
	rep.DamageTaken = taken
	fmt.Fprintf(&log, "  The %s attacks you for %d damage.\n", r.enemy.Name, taken)

	if r.player.Defeated() {
		r.state = StateDefeat
		log.WriteString("\nDEFEAT! You have fallen.")
	} else {
		fmt.Fprintf(&log, "  Your HP: %d/%d | %s HP: %d/%d",
			r.player.Health, r.player.MaxHealth,
			r.enemy.Name, r.enemy.Health, r.enemy.MaxHealth)
	}

	rep.Log = log.String()
	rep.State = r.state
	return rep, actionErr
}

// damage applies armor mitigation then a ±20% variance, flooring at
// minDamage so attacks are never fully negated.
func (r *Resolver) damage(attack, armor int) int {
	raw := attack - armor
	if raw < minDamage {
		raw = minDamage
	}
	variance := raw * 20 / 100
	raw += r.roll.Intn(2*variance+1) - variance
	if raw < minDamage {
		raw = minDamage
	}
	return raw
}
