package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// Config holds all application configuration
type Config struct {
	OpenAI  OpenAIConfig
	Game    GameConfig
	Logging LoggingConfig
	Observe ObserveConfig
}

// OpenAIConfig holds the narrative collaborator's credentials
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// GameConfig holds game-related configuration
type GameConfig struct {
	Players        int           `env:"PLAYERS" envDefault:"9"`
	Seed           int64         `env:"SEED"`
	Delay          time.Duration `env:"PHASE_DELAY" envDefault:"0s"`
	GameFile       string        `env:"GAME_FILE"`
	TranscriptPath string        `env:"TRANSCRIPT_PATH"`
	Scripted       bool          `env:"SCRIPTED"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// ObserveConfig holds the spectator feed configuration
type ObserveConfig struct {
	Enabled bool   `env:"OBSERVE"`
	Addr    string `env:"OBSERVE_ADDR" envDefault:"127.0.0.1:8089"`
}

// Load reads configuration from the environment, after loading a .env
// file if one is present. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// GameFile is the optional YAML cast sheet: a fixed roster with names,
// personalities and (optionally) pinned roles.
type GameFile struct {
	Players []game.PlayerConfig `yaml:"players"`
	Events  []string            `yaml:"events,omitempty"`
}

// LoadGameFile reads and parses a YAML cast sheet
func LoadGameFile(path string) (*GameFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game file: %w", err)
	}
	var gf GameFile
	if err := yaml.Unmarshal(raw, &gf); err != nil {
		return nil, fmt.Errorf("parse game file: %w", err)
	}
	if len(gf.Players) == 0 {
		return nil, fmt.Errorf("game file %s has no players", path)
	}
	for i, p := range gf.Players {
		if p.Role == "" {
			continue
		}
		role, ok := domain.ParseRole(string(p.Role))
		if !ok {
			return nil, fmt.Errorf("game file %s: unknown role %q for %s", path, p.Role, p.Name)
		}
		gf.Players[i].Role = role
	}
	return &gf, nil
}
