package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "snake.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	var scores *game.HighScoreService
	if cfg.Storage.DBPath != "" {
		scores, err = game.NewHighScoreService(cfg.Storage.DBPath)
		if err != nil {
			log.Warn("High scores disabled", "error", err)
			scores = nil
		} else {
			defer scores.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	deps, cleanup, err := ui.NewDeps(ctx, cfg, scores)
	if err != nil {
		cancel()
		log.Error("Failed to set up game", "error", err)
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
	// Stop the game loop before releasing its input source.
	defer cleanup()
	defer cancel()

	p := tea.NewProgram(ui.NewControllerModel(deps, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
