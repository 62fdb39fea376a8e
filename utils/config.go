package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	BotToken    string `env:"BOT_TOKEN"`
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	// GuildID registers commands in one guild instead of globally.
	GuildID string `env:"GUILD_ID"`

	// JackpotConfig is the path of the YAML game file. Empty means the
	// built-in copy.
	JackpotConfig string `env:"JACKPOT_CONFIG"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`
}

// LoadConfig reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address of the health server.
func (c Config) Addr() string {
	return ":" + c.Port
}
