package crossword

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// SchemaVersion is bumped whenever Snapshot changes shape.
const SchemaVersion = 1

// Snapshot is the persisted form of a Board. It is plain data so any codec
// (JSON file, SQLite blob) can carry it.
type Snapshot struct {
	Version   int                `json:"version"`
	ID        string             `json:"id"`
	Title     string             `json:"title,omitempty"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Played    bool               `json:"played"`
	CreatedAt time.Time          `json:"created_at"`
	Questions []QuestionSnapshot `json:"questions"`
	Overlay   []OverlayCell      `json:"overlay,omitempty"`
}

// QuestionSnapshot is one placed clue with its guess state.
type QuestionSnapshot struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Answer  string `json:"answer"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Guess   string `json:"guess,omitempty"`
	Guessed bool   `json:"guessed,omitempty"`
}

// OverlayCell is a non-blank square of the guesses grid.
type OverlayCell struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Kind  CellKind `json:"kind"`
	Value string   `json:"value,omitempty"`
}

// Snapshot captures the full observable state of the board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Version:   SchemaVersion,
		ID:        b.id,
		Title:     b.title,
		Width:     b.width,
		Height:    b.height,
		Played:    b.played,
		CreatedAt: b.createdAt,
		Questions: make([]QuestionSnapshot, 0, len(b.questions)),
	}
	for _, q := range b.questions {
		s.Questions = append(s.Questions, QuestionSnapshot{
			Key:     q.key,
			Text:    q.text,
			Answer:  q.answer,
			X:       q.x,
			Y:       q.y,
			Guess:   q.guess,
			Guessed: q.guessed,
		})
	}
	for y, row := range b.GuessCells(false) {
		for x, c := range row {
			if c.Kind == CellBlank {
				continue
			}
			s.Overlay = append(s.Overlay, OverlayCell{X: x, Y: y, Kind: c.Kind, Value: c.Value})
		}
	}
	return s
}

// Restore rebuilds a board from a snapshot. Every clue is placed again, so a
// snapshot describing an impossible board is rejected rather than loaded.
func Restore(s Snapshot) (*Board, error) {
	const op = "board.restore"
	if s.Version != SchemaVersion {
		return nil, &Error{
			Op:   op,
			Kind: KindUnsupportedVersion,
			Msg:  fmt.Sprintf("snapshot version %d, want %d", s.Version, SchemaVersion),
		}
	}
	b, err := NewBoard(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if s.ID != "" {
		b.id = s.ID
	}
	if !s.CreatedAt.IsZero() {
		b.createdAt = s.CreatedAt
	}
	b.title = s.Title
	b.played = s.Played

	for _, qs := range s.Questions {
		q, err := NewQuestion(qs.Key, qs.Text, qs.Answer)
		if err != nil {
			return nil, err
		}
		if err := b.AddQuestion(q, qs.X, qs.Y); err != nil {
			return nil, fmt.Errorf("%s: question %s: %w", op, qs.Key, err)
		}
		placed := b.index[q.key]
		if utf8.RuneCountInString(qs.Guess) > placed.Length() {
			return nil, &Error{Op: op, Kind: KindGuessTooLong, Key: qs.Key, Msg: "stored guess longer than answer"}
		}
		placed.guess, placed.guessed = qs.Guess, qs.Guessed
	}

	if s.Overlay == nil {
		return b, nil
	}
	for y := range b.guesses {
		for x := range b.guesses[y] {
			b.guesses[y][x] = overlay{kind: CellBlank}
		}
	}
	for _, c := range s.Overlay {
		if c.X < 0 || c.Y < 0 || c.X >= b.width || c.Y >= b.height {
			return nil, fmt.Errorf("%s: overlay square (%d, %d) outside %dx%d board", op, c.X, c.Y, b.width, b.height)
		}
		o, err := decodeOverlay(c)
		if err != nil {
			return nil, fmt.Errorf("%s: overlay square (%d, %d): %w", op, c.X, c.Y, err)
		}
		b.guesses[c.Y][c.X] = o
	}
	return b, nil
}

func decodeOverlay(c OverlayCell) (overlay, error) {
	switch c.Kind {
	case CellBlank:
		return overlay{kind: CellBlank}, nil
	case CellPlaceholder:
		return overlay{kind: CellPlaceholder}, nil
	case CellLabel:
		n, err := strconv.Atoi(c.Value)
		if err != nil || n < 1 {
			return overlay{}, fmt.Errorf("bad label %q", c.Value)
		}
		return overlay{kind: CellLabel, label: n}, nil
	case CellLetter:
		r, size := utf8.DecodeRuneInString(c.Value)
		if r == utf8.RuneError || size != len(c.Value) {
			return overlay{}, fmt.Errorf("bad letter %q", c.Value)
		}
		return overlay{kind: CellLetter, letter: r}, nil
	}
	return overlay{}, fmt.Errorf("unknown kind %q", c.Kind)
}
