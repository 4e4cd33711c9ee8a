// Package history records how each checked crossword turned out.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Result struct {
	BoardID   string    `json:"boardId"`
	Date      string    `json:"date"`
	Incorrect int       `json:"incorrect"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store writes to the play_results table created by the store migrations.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO play_results(board_id, date, incorrect, complete) VALUES(?,?,?,?)`,
		r.BoardID, r.Date, r.Incorrect, r.Complete,
	)
	return err
}

// Recent returns the latest results for a board, newest first. Default limit is 10.
func (s *Store) Recent(ctx context.Context, boardID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT board_id, date, incorrect, complete, created_at
		FROM play_results
		WHERE board_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, boardID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var created string
		if err := rows.Scan(&r.BoardID, &r.Date, &r.Incorrect, &r.Complete, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		r.CreatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}

// Solved reports whether the board was ever checked with no incorrect squares.
func (s *Store) Solved(ctx context.Context, boardID string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM play_results WHERE board_id=? AND complete=1 AND incorrect=0`,
		boardID,
	).Scan(&cnt)
	return cnt > 0, err
}
