package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment
type Config struct {
	Discord Discord
	Redis   Redis

	// DefaultLocale is the language used for group announcements
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	// ShuffleSeed makes deck order reproducible when non-zero
	ShuffleSeed int64 `env:"SHUFFLE_SEED" envDefault:"0"`
}

// Discord holds the bot credentials
type Discord struct {
	Token         string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`

	// GuildID registers commands in one guild only, for development
	GuildID string `env:"GUILD_ID"`
}

// Redis holds the match history connection settings
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled returns true if a Redis address was configured
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Load reads the given dotenv files, or .env when none are given, and then parses
// the environment. Missing dotenv files are skipped and variables that are already
// set win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	return &cfg, nil
}

// RequireDiscord checks the settings the Discord bot cannot start without
func (c *Config) RequireDiscord() error {
	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}
	return nil
}
