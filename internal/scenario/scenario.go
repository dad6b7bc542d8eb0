// Package scenario supplies the content a session is built from: location,
// item, and NPC templates per genre, plus the antagonist and goal. Bundles
// come from embedded YAML templates or, optionally, from a generative model;
// both paths go through the same validation.
package scenario

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration marks malformed template data. It is the one error that
// aborts session setup instead of being reported to the player.
var ErrConfiguration = errors.New("invalid scenario configuration")

// ItemTemplate declares an item the bundle can place or grant.
type ItemTemplate struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Category    string `yaml:"category" validate:"required,oneof=weapon armor healing quest"`
	Power       int    `yaml:"power" validate:"gte=0"`
	OneTimeUse  bool   `yaml:"one_time_use"`
}

// NPCTemplate declares a character: dialogue topics, an optional one-time
// reward item, and an optional quest-gated location opened by talking.
type NPCTemplate struct {
	Name        string            `yaml:"name" validate:"required"`
	Description string            `yaml:"description"`
	Greeting    string            `yaml:"greeting" validate:"required"`
	Dialogue    map[string]string `yaml:"dialogue"`
	Reward      string            `yaml:"reward"`  // item id
	Unlocks     string            `yaml:"unlocks"` // location id
}

// ExitTemplate declares one outgoing transition of a location.
type ExitTemplate struct {
	Direction string `yaml:"direction" validate:"required"`
	To        string `yaml:"to" validate:"required"`
	Kind      string `yaml:"kind" validate:"omitempty,oneof=normal one_way teleport enter"`
}

// LocationTemplate declares a node of the world graph.
type LocationTemplate struct {
	ID           string         `yaml:"id" validate:"required"`
	Name         string         `yaml:"name" validate:"required"`
	Short        string         `yaml:"short" validate:"required"`
	Long         string         `yaml:"long" validate:"required"`
	Exits        []ExitTemplate `yaml:"exits" validate:"dive"`
	Items        []string       `yaml:"items"`
	NPCs         []string       `yaml:"npcs"`
	RequiredItem string         `yaml:"required_item"`
	GateLocked   bool           `yaml:"gate_locked"`
}

// Bundle is everything the session needs to build a world: resolved once at
// start, never consulted again.
type Bundle struct {
	Genre         string             `yaml:"genre" validate:"required"`
	Title         string             `yaml:"title" validate:"required"`
	Antagonist    string             `yaml:"antagonist" validate:"required"`
	Goal          string             `yaml:"goal" validate:"required"`
	Endings       []string           `yaml:"endings" validate:"min=1"`
	Enemies       []string           `yaml:"enemies" validate:"min=1"`
	PlayerHealth  int                `yaml:"player_health" validate:"gt=0"`
	StartLocation string             `yaml:"start_location" validate:"required"`
	StartingItems []string           `yaml:"starting_items"`
	Items         []ItemTemplate     `yaml:"items" validate:"min=1,dive"`
	NPCs          []NPCTemplate      `yaml:"npcs" validate:"dive"`
	Locations     []LocationTemplate `yaml:"locations" validate:"min=2,dive"`
}

var validate = validator.New()

// Validate checks struct constraints and cross-references: every exit,
// placement, reward, and unlock must point at a declared id. Violations wrap
// ErrConfiguration.
func (b *Bundle) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	itemIDs := make(map[string]bool, len(b.Items))
	for _, it := range b.Items {
		if itemIDs[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrConfiguration, it.ID)
		}
		itemIDs[it.ID] = true
	}
	locIDs := make(map[string]bool, len(b.Locations))
	for _, loc := range b.Locations {
		if locIDs[loc.ID] {
			return fmt.Errorf("%w: duplicate location id %q", ErrConfiguration, loc.ID)
		}
		locIDs[loc.ID] = true
	}
	npcNames := make(map[string]bool, len(b.NPCs))
	for _, npc := range b.NPCs {
		npcNames[npc.Name] = true
		if npc.Reward != "" && !itemIDs[npc.Reward] {
			return fmt.Errorf("%w: npc %q rewards unknown item %q", ErrConfiguration, npc.Name, npc.Reward)
		}
	}
	// Unlock targets checked after all locations are collected.
	for _, npc := range b.NPCs {
		if npc.Unlocks != "" && !locIDs[npc.Unlocks] {
			return fmt.Errorf("%w: npc %q unlocks unknown location %q", ErrConfiguration, npc.Name, npc.Unlocks)
		}
	}

	if !locIDs[b.StartLocation] {
		return fmt.Errorf("%w: unknown start location %q", ErrConfiguration, b.StartLocation)
	}
	for _, id := range b.StartingItems {
		if !itemIDs[id] {
			return fmt.Errorf("%w: unknown starting item %q", ErrConfiguration, id)
		}
	}
	for _, loc := range b.Locations {
		for _, ex := range loc.Exits {
			if !locIDs[ex.To] {
				return fmt.Errorf("%w: location %q exit %q leads to unknown location %q",
					ErrConfiguration, loc.ID, ex.Direction, ex.To)
			}
		}
		for _, id := range loc.Items {
			if !itemIDs[id] {
				return fmt.Errorf("%w: location %q places unknown item %q", ErrConfiguration, loc.ID, id)
			}
		}
		for _, name := range loc.NPCs {
			if !npcNames[name] {
				return fmt.Errorf("%w: location %q places unknown npc %q", ErrConfiguration, loc.ID, name)
			}
		}
	}
	return nil
}

// Item looks an item template up by id.
func (b *Bundle) Item(id string) (ItemTemplate, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemTemplate{}, false
}

// NPC looks an NPC template up by name.
func (b *Bundle) NPC(name string) (NPCTemplate, bool) {
	for _, npc := range b.NPCs {
		if npc.Name == name {
			return npc, true
		}
	}
	return NPCTemplate{}, false
}
