// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is everything the application reads from the environment.
type Config struct {
	Store     string   `env:"CROSSWORD_STORE" envDefault:"file"`
	File      string   `env:"CROSSWORD_FILE" envDefault:"crosswords.json"`
	DB        string   `env:"CROSSWORD_DB" envDefault:"./data/crossword.db"`
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile   string   `env:"LOG_FILE"`
	HTTPAddr  string   `env:"HTTP_ADDR" envDefault:":5175"`
	DailySalt string   `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	NoColor   Presence `env:"NO_COLOR"`
}

// Presence is true whenever its variable holds any non-empty value, so
// NO_COLOR=1 and NO_COLOR=yes both disable colour.
type Presence bool

func (p *Presence) UnmarshalText(text []byte) error {
	*p = Presence(len(text) > 0)
	return nil
}

// Load reads an optional .env file and then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("CROSSWORD_STORE must be %s, %s or %s, got %q", StoreFile, StoreSQLite, StoreMemory, c.Store)
	}
	if c.Store == StoreFile && c.File == "" {
		return fmt.Errorf("CROSSWORD_FILE is required for the file store")
	}
	if c.Store == StoreSQLite && c.DB == "" {
		return fmt.Errorf("CROSSWORD_DB is required for the sqlite store")
	}
	return nil
}
