package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/scenario"
	"github.com/emberforge/adventure/internal/session"
)

// Headless driver: plays a full scenario with a simple scripted policy and
// prints the transcript. Useful for eyeballing pacing and encounter rates
// across seeds without sitting through the TUI.

const maxCommands = 300

func main() {
	genre := flag.String("genre", "scifi", "scenario genre")
	seed := flag.Int64("seed", 42, "dice seed")
	flag.Parse()

	ctx := context.Background()
	provider := scenario.NewTemplateProvider()
	bundle, err := provider.Bundle(ctx, *genre, nil)
	if err != nil {
		log.Fatalf("Failed to build scenario: %v", err)
	}

	sess, err := session.New(bundle, session.Options{
		PlayerName: "Simulant",
		Encounters: true,
		Roll:       dice.NewSeeded(*seed),
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fmt.Println(sess.Intro())
	fmt.Println()

	// Opening tour: grab and equip whatever the scenario put nearby.
	opening := []string{
		"look", "north", "take laser gun", "equip laser gun",
		"east", "talk ship ai", "take nano serum", "west",
		"enter armory", "take plasma rifle", "take combat suit",
		"equip plasma rifle", "equip combat suit", "back",
		"status", "story",
	}

	i := 0
	for n := 0; n < maxCommands; n++ {
		cmd := nextCommand(sess, opening, &i)
		fmt.Printf("> %s\n", cmd)
		resp := sess.Execute(cmd)
		fmt.Println(resp.Text)
		fmt.Println()

		if resp.Quit || resp.State.Terminal() {
			break
		}
	}

	p := sess.Player()
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Final state: %s after %d turns, %d/%d HP\n",
		sess.State(), sess.Turns(), p.Health, p.MaxHealth)
}

// nextCommand is the player policy: fight when fighting, heal when hurt,
// otherwise follow the opening tour and then pace the map until the
// antagonist shows up.
func nextCommand(sess *session.Session, opening []string, i *int) string {
	if sess.State() == session.StateInCombat {
		p := sess.Player()
		if p.Health <= p.MaxHealth/4 {
			if _, ok := p.FindHealing(); ok {
				return "heal"
			}
		}
		return "attack"
	}
	if *i < len(opening) {
		cmd := opening[*i]
		*i++
		return cmd
	}
	// Pace the map round-robin to farm encounter rolls.
	exits := sess.Location().Exits()
	if len(exits) == 0 {
		return "look"
	}
	return "go " + exits[sess.Turns()%len(exits)]
}
