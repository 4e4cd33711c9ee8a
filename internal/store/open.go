package store

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TLohan/crossword-app/internal/config"
)

// Open builds the Store selected by cfg.Store.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		log.Info().Str("path", cfg.File).Msg("using file store")
		return NewFileStore(cfg.File), nil
	case config.StoreSQLite:
		log.Info().Str("dsn", cfg.DB).Msg("using sqlite store")
		return OpenSQLite(cfg.DB)
	case config.StoreMemory:
		log.Info().Msg("using memory store")
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
