package main

import (
	"context"
	"fmt"
	"os"

	"github.com/emberforge/adventure/internal/config"
	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/logger"
	"github.com/emberforge/adventure/internal/scenario"
	"github.com/emberforge/adventure/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log := logger.ForSession(logger.NewSessionID())

	var provider scenario.Provider
	if cfg.GeminiAPIKey != "" {
		ai, err := scenario.NewAIProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			fmt.Printf("Error creating scenario provider: %v\n", err)
			os.Exit(1)
		}
		defer ai.Close()
		provider = ai
	} else {
		provider = scenario.NewTemplateProvider()
	}

	err = tui.Run(provider, tui.Options{
		DefaultGenre: cfg.Genre,
		Encounters:   cfg.Encounters,
		Roll:         dice.NewSeeded(cfg.Seed),
		Log:          log,
	})
	if err != nil {
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}
