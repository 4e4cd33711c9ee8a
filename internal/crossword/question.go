package crossword

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var keyPattern = regexp.MustCompile(`^([1-9][0-9]?)([AD])$`)

// Question is a single clue: key, prompt, answer and the player's guess.
//
// A Question is a value. Placing it on a Board copies it; the board's copy
// is only changed through Board methods.
type Question struct {
	key         string
	number      int
	orientation Orientation
	text        string
	answer      string

	guess   string
	guessed bool

	x, y   int
	placed bool
}

// NewQuestion validates key and builds an unplaced question.
func NewQuestion(key, text, answer string) (Question, error) {
	var q Question
	if err := q.SetKey(key); err != nil {
		return Question{}, err
	}
	q.text = text
	q.answer = answer
	return q, nil
}

// SetKey validates and normalizes a clue key such as "12A" or "3D".
// The orientation follows the trailing letter.
func (q *Question) SetKey(key string) error {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return &Error{
			Op:   "question.key",
			Kind: KindInvalidKeyFormat,
			Key:  key,
			Msg:  fmt.Sprintf("invalid key %q: want a clue number 1-99 followed by A or D", key),
		}
	}
	n, _ := strconv.Atoi(m[1])
	q.number = n
	q.orientation = Down
	if m[2] == "A" {
		q.orientation = Across
	}
	q.key = fmt.Sprintf("%d%c", n, q.orientation.Letter())
	return nil
}

// SetText replaces the clue prompt.
func (q *Question) SetText(text string) { q.text = text }

// SetAnswer replaces the answer.
func (q *Question) SetAnswer(answer string) { q.answer = answer }

func (q Question) Key() string              { return q.key }
func (q Question) Number() int              { return q.number }
func (q Question) Orientation() Orientation { return q.orientation }
func (q Question) Text() string             { return q.text }
func (q Question) Answer() string           { return q.answer }
func (q Question) Guess() string            { return q.guess }
func (q Question) Guessed() bool            { return q.guessed }

// Length is the number of letters in the answer.
func (q Question) Length() int { return utf8.RuneCountInString(q.answer) }

// Coordinates returns the 0-based column and row of the first letter.
// placed is false until a board has placed the question.
func (q Question) Coordinates() (x, y int, placed bool) { return q.x, q.y, q.placed }

func (q Question) X() int { return q.x }
func (q Question) Y() int { return q.y }

// span lists the cells covered by answer when started at (x, y).
func (q Question) span(x, y int, answer string) []position {
	dx, dy := q.orientation.step()
	out := make([]position, 0, len(answer))
	i := 0
	for _, r := range answer {
		out = append(out, position{x: x + i*dx, y: y + i*dy, letter: upper(r)})
		i++
	}
	return out
}

// cells lists the cells the placed question covers.
func (q Question) cells() []position { return q.span(q.x, q.y, q.answer) }
