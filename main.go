package main

import (
	"fmt"
	"os"
	"time"

	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/scenario"
	"github.com/emberforge/adventure/internal/tui"
)

// Convenience entrypoint: offline play with the built-in scenario templates.
// cmd/game wires the full config, logging, and AI provider stack.
func main() {
	err := tui.Run(scenario.NewTemplateProvider(), tui.Options{
		DefaultGenre: "fantasy",
		Encounters:   true,
		Roll:         dice.NewSeeded(time.Now().UnixNano()),
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
