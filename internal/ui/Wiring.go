package ui

import (
	"context"
	"fmt"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
)

// NewDeps builds one player's session, input source and driver from cfg.
// scores may be nil. The returned cleanup releases the input source.
func NewDeps(ctx context.Context, cfg config.Config, scores *game.HighScoreService) (Deps, func(), error) {
	session, err := game.NewSession(cfg.SessionOptions())
	if err != nil {
		return Deps{}, nil, fmt.Errorf("failed to create session: %w", err)
	}

	deps := Deps{Ctx: ctx, Updates: game.NewMessageRenderer(ctx.Done())}
	cleanup := func() {}

	var input game.DirectionSource
	switch cfg.Autopilot.Mode {
	case config.AutopilotGreedy:
		input = game.NewGreedyPilot()
	case config.AutopilotLua:
		pilot, err := game.NewLuaPilot(cfg.Autopilot.Script)
		if err != nil {
			return Deps{}, nil, err
		}
		if cfg.Autopilot.Watch {
			go func() {
				if err := pilot.Watch(ctx); err != nil {
					log.Error("Lua script watcher stopped", "error", err)
				}
			}()
		}
		input = pilot
		cleanup = pilot.Close
	default:
		deps.Keyboard = game.NewChannelSource()
		input = deps.Keyboard
	}

	opts := []game.ManagerOption{
		game.WithTickDuration(cfg.Game.Tick),
		game.WithRenderer(deps.Updates),
	}
	if scores != nil {
		opts = append(opts, game.WithScoreRecorder(scores))
		deps.Leaderboard = scores
	}
	deps.GameManager = game.NewGameManager(session, input, opts...)
	return deps, cleanup, nil
}
