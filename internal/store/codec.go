package store

import (
	"fmt"

	"github.com/TLohan/crossword-app/internal/crossword"
)

// fileVersion tags the flat-file envelope; board snapshots carry their own version.
const fileVersion = 1

// envelope is the on-disk shape of a crosswords file.
type envelope struct {
	Version int                  `json:"version"`
	Boards  []crossword.Snapshot `json:"boards"`
}

func snapshotAll(boards []*crossword.Board) []crossword.Snapshot {
	out := make([]crossword.Snapshot, 0, len(boards))
	for _, b := range boards {
		out = append(out, b.Snapshot())
	}
	return out
}

func restoreAll(snaps []crossword.Snapshot) ([]*crossword.Board, error) {
	out := make([]*crossword.Board, 0, len(snaps))
	for i, s := range snaps {
		b, err := crossword.Restore(s)
		if err != nil {
			return nil, fmt.Errorf("restore board %d (%s): %w", i, s.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}
