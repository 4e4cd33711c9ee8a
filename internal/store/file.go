// internal/store/file.go
//
// Flat-file Store: every crossword lives in one JSON document,
//
//	{"version": 1, "boards": [ <snapshot>, ... ]}
//
// Writes go to a temp file in the same directory and are renamed over the
// target, so a crash mid-save leaves the previous file intact.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/TLohan/crossword-app/internal/crossword"
)

// ErrNoFile is returned by Load when RequireExisting is set and the file is missing.
var ErrNoFile = errors.New("crosswords file does not exist")

// FileStore keeps all boards in a single JSON file.
type FileStore struct {
	path            string
	requireExisting bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// RequireExisting makes Load fail with ErrNoFile instead of starting empty.
func RequireExisting() FileOption {
	return func(s *FileStore) { s.requireExisting = true }
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*FileStore)(nil)

// Path is the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) ([]*crossword.Board, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.requireExisting {
			return nil, fmt.Errorf("%s: %w", s.path, ErrNoFile)
		}
		log.Debug().Str("path", s.path).Msg("no crosswords file yet")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if env.Version != fileVersion {
		return nil, fmt.Errorf("decode %s: file version %d, want %d", s.path, env.Version, fileVersion)
	}
	boards, err := restoreAll(env.Boards)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("boards", len(boards)).Msg("loaded crosswords")
	return boards, nil
}

func (s *FileStore) Save(ctx context.Context, boards []*crossword.Board) error {
	out, err := json.MarshalIndent(envelope{Version: fileVersion, Boards: snapshotAll(boards)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode crosswords: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("boards", len(boards)).Msg("saved crosswords")
	return nil
}

func (s *FileStore) Close() error { return nil }
