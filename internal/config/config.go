// Package config loads the YAML configuration shared by both entry points.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Mshel/gridsnake/internal/game"
	"gopkg.in/yaml.v3"
)

const (
	PrivateKeyPathEnv = "SNAKE_PRIVATE_KEY_PATH"
	DBPathEnv         = "SNAKE_DB_PATH"
)

// Config is the complete application configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Storage   StorageConfig   `yaml:"storage"`
	SSH       SSHConfig       `yaml:"ssh"`
	HTTP      HTTPConfig      `yaml:"http"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Log       LogConfig       `yaml:"log"`
}

type GameConfig struct {
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Reward int           `yaml:"reward"`
	Tick   time.Duration `yaml:"tick"`
	// Seed 0 seeds each session from the clock.
	Seed int64 `yaml:"seed"`
	// MaxSegments 0 sizes the body storage to the interior.
	MaxSegments int `yaml:"max_segments"`
}

type StorageConfig struct {
	// DBPath empty disables high scores.
	DBPath string `yaml:"db_path"`
}

type SSHConfig struct {
	Host                string `yaml:"host"`
	Port                string `yaml:"port"`
	HostKeyPath         string `yaml:"host_key_path"`
	MaxConnectionsPerIP int    `yaml:"max_connections_per_ip"`
}

type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

const (
	AutopilotNone   = "none"
	AutopilotGreedy = "greedy"
	AutopilotLua    = "lua"
)

type AutopilotConfig struct {
	Mode   string `yaml:"mode"`
	Script string `yaml:"script"`
	// Watch reloads the script when it changes.
	Watch bool `yaml:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File is where cmd/snake logs, since the terminal belongs to the UI.
	File string `yaml:"file"`
}

func Default() Config {
	return Config{
		Game: GameConfig{
			Width:  game.DefaultWidth,
			Height: game.DefaultHeight,
			Reward: game.DefaultReward,
			Tick:   game.GameTickDuration,
		},
		Storage: StorageConfig{DBPath: "highscores.db"},
		SSH: SSHConfig{
			Host:                "0.0.0.0",
			Port:                "6996",
			HostKeyPath:         ".ssh/id_ed25519",
			MaxConnectionsPerIP: 2,
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Address: ":8080",
		},
		Autopilot: AutopilotConfig{Mode: AutopilotNone},
		Log: LogConfig{
			Level: "info",
			File:  "snake.log",
		},
	}
}

// Load starts from Default and overlays the file at path. A missing file is
// created with the defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(PrivateKeyPathEnv); v != "" {
		cfg.SSH.HostKeyPath = v
	}
	if v := os.Getenv(DBPathEnv); v != "" {
		cfg.Storage.DBPath = v
	}
}

func (c Config) Validate() error {
	if _, err := game.NewDimensions(c.Game.Width, c.Game.Height); err != nil {
		return err
	}
	if c.Game.Reward <= 0 {
		return fmt.Errorf("game.reward must be positive, got %d", c.Game.Reward)
	}
	if c.Game.Tick <= 0 {
		return fmt.Errorf("game.tick must be positive, got %s", c.Game.Tick)
	}
	if c.Game.MaxSegments < 0 {
		return fmt.Errorf("game.max_segments must not be negative, got %d", c.Game.MaxSegments)
	}
	switch c.Autopilot.Mode {
	case "", AutopilotNone, AutopilotGreedy:
	case AutopilotLua:
		if c.Autopilot.Script == "" {
			return errors.New("autopilot.script is required in lua mode")
		}
	default:
		return fmt.Errorf("unknown autopilot.mode %q", c.Autopilot.Mode)
	}
	return nil
}

// SessionOptions maps the game section onto engine options.
func (c Config) SessionOptions() game.SessionOptions {
	return game.SessionOptions{
		Dimensions:  game.Dimensions{Width: c.Game.Width, Height: c.Game.Height},
		Reward:      c.Game.Reward,
		MaxSegments: c.Game.MaxSegments,
		Seed:        c.Game.Seed,
	}
}
