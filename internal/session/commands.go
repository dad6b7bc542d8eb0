package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emberforge/adventure/internal/art"
	"github.com/emberforge/adventure/internal/combat"
	"github.com/emberforge/adventure/internal/entity"
	"github.com/emberforge/adventure/internal/item"
	"github.com/emberforge/adventure/internal/world"
)

const usageHint = "Unknown command. Type 'help' for the list of commands."

var cardinals = map[string]bool{
	"north": true, "south": true, "east": true, "west": true, "up": true, "down": true,
}

func (s *Session) executeExploring(cmd, arg string) Response {
	switch cmd {
	case "look":
		return s.respond(s.cmdLook(), true)
	case "go":
		return s.respond(s.cmdGo(arg), true)
	case "teleport":
		return s.respond(s.cmdGo("teleport"), true)
	case "enter":
		return s.respond(s.cmdGo(strings.TrimSpace("enter "+arg)), true)
	case "take":
		return s.respond(s.cmdTake(arg), true)
	case "drop":
		return s.respond(s.cmdDrop(arg), true)
	case "inventory":
		return s.respond(s.cmdInventory(), true)
	case "equip":
		return s.respond(s.cmdEquip(arg), true)
	case "unequip":
		return s.respond(s.cmdUnequip(arg), true)
	case "use":
		return s.respond(s.cmdUse(arg), true)
	case "talk":
		return s.respond(s.cmdTalk(arg), true)
	case "inspect":
		return s.respond(s.cmdInspect(arg), true)
	case "status":
		return s.respond(s.cmdStatus(), true)
	case "story":
		return s.respond(s.cmdStory(), true)
	case "help":
		return s.respond(exploringHelp, true)
	case "attack", "defend", "heal", "flee":
		return s.respond("You're not in combat.", false)
	default:
		if cardinals[cmd] {
			return s.respond(s.cmdGo(cmd), true)
		}
		return s.respond(usageHint, false)
	}
}

func (s *Session) executeCombat(cmd string) Response {
	switch cmd {
	case "attack":
		return s.combatRound(combat.ActionAttack)
	case "defend":
		return s.combatRound(combat.ActionDefend)
	case "heal":
		return s.combatRound(combat.ActionHeal)
	case "flee":
		return s.combatRound(combat.ActionFlee)
	case "help":
		return s.respond(combatHelp, true)
	default:
		return s.respond(fmt.Sprintf("You're fighting the %s! Your options: attack, defend, heal, flee.",
			s.combat.Enemy().Name), false)
	}
}

func (s *Session) cmdLook() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", s.current.Name, s.current.LongDesc)
	if block := art.ForLocation(s.current.Name); block != "" {
		b.WriteString(block + "\n")
	}
	if exits := s.current.Exits(); len(exits) > 0 {
		fmt.Fprintf(&b, "\nExits: %s\n", strings.Join(exits, ", "))
	}
	if items := s.current.Items(); len(items) > 0 {
		b.WriteString("\nItems here:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it.Name)
		}
	}
	if npcs := s.current.NPCs(); len(npcs) > 0 {
		b.WriteString("\nPeople here:\n")
		for _, npc := range npcs {
			fmt.Fprintf(&b, "  - %s\n", npc.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) cmdGo(label string) string {
	if label == "" {
		return "Go where?"
	}

	var unlocked string
	firstVisit := false
	if dest, err := s.graph.Peek(s.current.ID, label); err == nil {
		if dest.RequiredItem != "" {
			if key, ok := s.player.Item(dest.RequiredItem); ok {
				s.graph.Unlock(dest.ID)
				unlocked = fmt.Sprintf("You use the %s to open the way.\n\n", key.Name)
			}
		}
		firstVisit = !dest.Visited
	}

	loc, err := s.graph.Move(s.current.ID, label)
	if err != nil {
		return playerMessage(err)
	}
	s.current = loc
	if s.stage == stageBeginning {
		s.stage = stageInvestigation
	}
	s.log.Debug("moved", "to", loc.ID, "first_visit", firstVisit)

	var b strings.Builder
	b.WriteString(unlocked)
	b.WriteString(s.graph.Describe(loc, firstVisit))
	if firstVisit {
		if block := art.ForLocation(loc.Name); block != "" {
			b.WriteString("\n" + block)
		}
	}

	if s.encounters && s.roll.Float64() < encounterChance {
		b.WriteString("\n\n" + s.startEncounter())
	}
	return b.String()
}

// startEncounter spawns an enemy and hands control to the combat resolver.
// Past the boss turn threshold the antagonist can show up instead.
func (s *Session) startEncounter() string {
	boss := s.turns > bossTurnThreshold && s.roll.Float64() < bossChance

	var enemy *entity.Entity
	var b strings.Builder
	if boss {
		enemy = combat.NewBoss(s.bundle.Antagonist)
		s.stage = stageConfrontation
		fmt.Fprintf(&b, "BOSS ENCOUNTER! %s appears!", s.bundle.Antagonist)
	} else {
		name := s.bundle.Enemies[s.roll.Intn(len(s.bundle.Enemies))]
		enemy = combat.NewRegularEnemy(name)
		fmt.Fprintf(&b, "An enemy appears! A %s blocks your path!", name)
	}
	if block := art.ForCreature(enemy.Name, boss); block != "" {
		b.WriteString("\n" + block)
	}
	b.WriteString("\nYour options: attack, defend, heal, flee.")

	s.combat = combat.New(s.player, enemy, s.roll, boss)
	s.state = StateInCombat
	s.log.Info("encounter", "enemy", enemy.Name, "boss", boss, "turn", s.turns)
	return b.String()
}

func (s *Session) combatRound(action combat.Action) Response {
	rep, err := s.combat.Round(action)
	if err != nil && !errors.Is(err, combat.ErrNoHealingItem) {
		return s.respond(playerMessage(err), false)
	}

	text := rep.Log
	switch rep.State {
	case combat.StateVictory:
		if s.combat.Boss() {
			text += "\n\n" + s.finishVictory()
		} else {
			xp := 10 + s.roll.Intn(41)
			text += fmt.Sprintf("\n\nYou gain %d experience points!", xp)
			s.state = StateExploring
			s.log.Info("enemy defeated", "enemy", s.combat.Enemy().Name, "turn", s.turns)
		}
		s.combat = nil
	case combat.StateDefeat:
		text += "\n\n" + s.finishDefeat()
		s.combat = nil
	case combat.StateFled:
		text += "\nYou slip back the way you came, heart pounding."
		s.state = StateExploring
		s.combat = nil
	}
	return s.respond(text, true)
}

func (s *Session) finishVictory() string {
	s.state = StateVictory
	s.stage = stageComplete
	ending := s.bundle.Endings[s.roll.Intn(len(s.bundle.Endings))]
	s.log.Info("victory", "turns", s.turns)

	var b strings.Builder
	fmt.Fprintf(&b, "YOU HAVE DEFEATED %s!\n\n", strings.ToUpper(s.bundle.Antagonist))
	b.WriteString(ending + "\n\n")
	b.WriteString("--- FINAL STATISTICS ---\n")
	fmt.Fprintf(&b, "Character:       %s\n", s.player.Name)
	fmt.Fprintf(&b, "Final Health:    %d/%d HP\n", s.player.Health, s.player.MaxHealth)
	fmt.Fprintf(&b, "Total Turns:     %d\n", s.turns+1)
	fmt.Fprintf(&b, "Items Collected: %d", len(s.player.Inventory()))
	return b.String()
}

func (s *Session) finishDefeat() string {
	s.state = StateDefeat
	s.log.Info("defeat", "turns", s.turns)
	return "You have fallen in your quest...\nBetter luck next time, adventurer."
}

func (s *Session) cmdTake(target string) string {
	if target == "" {
		return "Take what?"
	}
	it, err := s.graph.TakeItem(s.current.ID, target)
	if err != nil {
		return playerMessage(err)
	}
	if err := s.player.AddItem(it); err != nil {
		// Item stays where it was.
		s.graph.PlaceItem(s.current.ID, it)
		return playerMessage(err)
	}
	return fmt.Sprintf("You took the %s.", it.Name)
}

func (s *Session) cmdDrop(target string) string {
	if target == "" {
		return "Drop what?"
	}
	it, err := s.player.RemoveItem(target)
	if err != nil {
		return playerMessage(err)
	}
	s.graph.PlaceItem(s.current.ID, it)
	return fmt.Sprintf("You dropped the %s.", it.Name)
}

func (s *Session) cmdInventory() string {
	var b strings.Builder
	inv := s.player.Inventory()
	if len(inv) == 0 {
		b.WriteString("Your inventory is empty.")
	} else {
		fmt.Fprintf(&b, "Inventory (%d/%d):\n", len(inv), entity.PlayerInventoryCapacity)
		for _, it := range inv {
			fmt.Fprintf(&b, "  - %s\n", it.Detail())
		}
	}
	if w := s.player.Weapon(); w != nil {
		fmt.Fprintf(&b, "\nEquipped weapon: %s (+%d damage)", w.Name, w.Power)
	}
	if a := s.player.EquippedArmor(); a != nil {
		fmt.Fprintf(&b, "\nEquipped armor: %s (+%d armor)", a.Name, a.Power)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) cmdEquip(target string) string {
	if target == "" {
		return "Equip what?"
	}
	it, ok := s.player.Item(target)
	if err := s.player.Equip(target); err != nil {
		return playerMessage(err)
	}
	if !ok {
		return "You equipped it."
	}
	return fmt.Sprintf("You equipped the %s.", it.Name)
}

func (s *Session) cmdUnequip(target string) string {
	if target == "" {
		return "Unequip what?"
	}
	if err := s.player.UnequipItem(target); err != nil {
		return playerMessage(err)
	}
	return fmt.Sprintf("You unequipped the %s.", target)
}

func (s *Session) cmdUse(target string) string {
	if target == "" {
		return "Use what?"
	}
	it, ok := s.player.Item(target)
	if !ok {
		return fmt.Sprintf("You don't have a %s.", target)
	}
	if it.Category != item.CategoryHealing {
		return fmt.Sprintf("You can't use the %s right now.", it.Name)
	}
	if it.OneTimeUse {
		s.player.RemoveItem(it.ID)
	}
	s.player.Heal(it.Power)
	return fmt.Sprintf("You used the %s. Restored %d HP (%d/%d).",
		it.Name, it.Power, s.player.Health, s.player.MaxHealth)
}

func (s *Session) cmdTalk(arg string) string {
	if arg == "" {
		return "Talk to whom?"
	}

	npc, err := s.graph.NPC(s.current.ID, arg)
	topic := ""
	if err != nil {
		// Allow "talk <npc> <topic>": retry with the last word as topic.
		if i := strings.LastIndex(arg, " "); i > 0 {
			if n2, err2 := s.graph.NPC(s.current.ID, arg[:i]); err2 == nil {
				npc, topic = n2, arg[i+1:]
			}
		}
		if npc == nil {
			return playerMessage(err)
		}
	}

	var b strings.Builder
	if topic != "" {
		response, ok := npc.Dialogue[topic]
		if !ok {
			fmt.Fprintf(&b, "%s has nothing to say about that.", npc.Name)
			return b.String()
		}
		fmt.Fprintf(&b, "%s: %q", npc.Name, response)
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %q\n", npc.Name, npc.Greeting)
	if !npc.TalkedTo {
		npc.TalkedTo = true
		if s.stage == stageBeginning {
			s.stage = stageInvestigation
		}
		if reward, ok := npc.TakeReward(); ok {
			if err := s.player.AddItem(reward); err != nil {
				s.graph.PlaceItem(s.current.ID, reward)
				fmt.Fprintf(&b, "%s offers you the %s, but your hands are full. It is set down beside you.\n",
					npc.Name, reward.Name)
			} else {
				fmt.Fprintf(&b, "%s gives you the %s.\n", npc.Name, reward.Name)
			}
		}
		if npc.UnlockLocation != "" {
			s.graph.Unlock(npc.UnlockLocation)
			if loc, err := s.graph.Location(npc.UnlockLocation); err == nil {
				fmt.Fprintf(&b, "The way to %s is now open.\n", loc.Name)
			}
		}
	}
	if len(npc.Dialogue) > 0 {
		topics := make([]string, 0, len(npc.Dialogue))
		for t := range npc.Dialogue {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		fmt.Fprintf(&b, "You could ask about: %s. (talk %s <topic>)",
			strings.Join(topics, ", "), strings.ToLower(npc.Name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) cmdInspect(target string) string {
	if target == "" {
		return "Inspect what?"
	}
	for _, it := range s.current.Items() {
		if it.Matches(target) {
			return it.Detail()
		}
	}
	if it, ok := s.player.Item(target); ok {
		return it.Detail()
	}
	if npc, err := s.graph.NPC(s.current.ID, target); err == nil {
		return fmt.Sprintf("%s: %s", npc.Name, npc.Description)
	}
	return fmt.Sprintf("You examine the %s carefully. Nothing special.", target)
}

func (s *Session) cmdStatus() string {
	return fmt.Sprintf(`Status:
  Name:         %s
  Health:       %d/%d
  Damage Bonus: +%d
  Armor:        %d
  Turns:        %d
  Location:     %s`,
		s.player.Name,
		s.player.Health, s.player.MaxHealth,
		s.player.AttackPower(),
		s.player.ArmorValue(),
		s.turns,
		s.current.Name)
}

func (s *Session) cmdStory() string {
	return fmt.Sprintf(`Story: %s
Goal: %s
Chapter: %s
Antagonist: %s`,
		s.bundle.Title,
		s.bundle.Goal,
		s.stage,
		s.bundle.Antagonist)
}

// playerMessage turns a domain error into player-facing text. All of these
// are non-fatal; the session stays in its current state.
func playerMessage(err error) string {
	switch {
	case errors.Is(err, world.ErrNoTransition),
		errors.Is(err, world.ErrBlocked),
		errors.Is(err, world.ErrItemNotFound),
		errors.Is(err, world.ErrNPCNotFound),
		errors.Is(err, entity.ErrInventoryFull),
		errors.Is(err, entity.ErrNotEquippable),
		errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrNotEquipped):
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	default:
		return err.Error()
	}
}

const exploringHelp = `Available commands:
  look                 Look around
  go <direction>       Move (north/south/east/west/up/down, enter <place>)
  take <item>          Pick an item up
  drop <item>          Drop an item
  inventory            Show your inventory
  equip <item>         Equip a weapon or armor
  unequip <item>       Remove equipment
  use <item>           Use a healing item
  talk <npc> [topic]   Talk to someone
  inspect <object>     Examine something
  status               Show your status
  story                Show story progress
  help                 This message
  quit                 Leave the game

In combat: attack, defend, heal, flee.`

const combatHelp = `Combat commands:
  attack   Strike with your equipped weapon
  defend   Brace for the next hit (+5 armor this round)
  heal     Use a healing item (forfeits your attack)
  flee     Try to escape (60% chance)`
