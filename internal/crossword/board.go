// internal/crossword/board.go
//
// Board model and guess-validation engine.
// Responsibilities:
//   - Own the answers grid, the guesses overlay and the placed questions.
//   - Validate placements (bounds, crossing letters, unique keys) before
//     writing anything, so a failed placement leaves the board untouched.
//   - Apply guesses, report completion and count incorrect squares.
//
// Notes:
//   - A Board is not safe for concurrent use; one caller drives it at a time.
//   - Questions handed out by the board are copies.

package crossword

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultWidth  = 15
	DefaultHeight = 15
)

// Board is the puzzle frame: both grids plus every placed clue.
type Board struct {
	id        string
	title     string
	width     int
	height    int
	createdAt time.Time
	played    bool

	questions []*Question
	index     map[string]*Question

	answers [][]rune    // 0 means unused
	guesses [][]overlay // what the player sees
}

// NewBoard builds an empty width x height board.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, &Error{
			Op:   "board.new",
			Kind: KindInvalidDimensions,
			Msg:  fmt.Sprintf("board must be at least 1x1, got %dx%d", width, height),
		}
	}
	b := &Board{
		id:        uuid.NewString(),
		width:     width,
		height:    height,
		createdAt: time.Now().UTC(),
		index:     make(map[string]*Question),
	}
	b.answers = make([][]rune, height)
	b.guesses = make([][]overlay, height)
	for y := 0; y < height; y++ {
		b.answers[y] = make([]rune, width)
		b.guesses[y] = make([]overlay, width)
		for x := range b.guesses[y] {
			b.guesses[y][x] = overlay{kind: CellBlank}
		}
	}
	return b, nil
}

func (b *Board) ID() string           { return b.id }
func (b *Board) Title() string        { return b.title }
func (b *Board) SetTitle(t string)    { b.title = t }
func (b *Board) Width() int           { return b.width }
func (b *Board) Height() int          { return b.height }
func (b *Board) CreatedAt() time.Time { return b.createdAt }

// Played reports whether the board has been entered into play at least once.
func (b *Board) Played() bool { return b.played }

// MarkPlayed flags the board as played.
func (b *Board) MarkPlayed() { b.played = true }

// Name is a short human label: the title if set, otherwise dimensions and clue count.
func (b *Board) Name() string {
	if b.title != "" {
		return b.title
	}
	return fmt.Sprintf("%dx%d crossword, %d clues", b.width, b.height, len(b.questions))
}

// AddQuestion places q with its first letter at column x, row y.
//
// Errors: DoesNotFit, LetterConflict, DuplicateKey, InvalidAnswer,
// InvalidKeyFormat (for a zero Question). On error nothing is changed.
func (b *Board) AddQuestion(q Question, x, y int) error {
	const op = "board.add_question"
	if q.key == "" {
		return &Error{Op: op, Kind: KindInvalidKeyFormat, Msg: "question has no key"}
	}
	if _, ok := b.index[q.key]; ok {
		return &Error{
			Op:   op,
			Kind: KindDuplicateKey,
			Key:  q.key,
			Msg:  fmt.Sprintf("question %s is already on the board", q.key),
		}
	}
	cells, err := b.validatePlacement(op, q, x, y, q.answer, "")
	if err != nil {
		return err
	}

	for _, c := range cells {
		b.answers[c.y][c.x] = c.letter
	}
	q.x, q.y, q.placed = x, y, true
	q.guess, q.guessed = "", false
	placed := &q
	b.questions = append(b.questions, placed)
	b.index[placed.key] = placed
	b.paint(placed)
	return nil
}

// validatePlacement checks that answer fits at (x, y) and agrees with every
// crossing letter. Letters of the question keyed exclude are ignored.
func (b *Board) validatePlacement(op string, q Question, x, y int, answer, exclude string) ([]position, error) {
	n := utf8.RuneCountInString(answer)
	if n == 0 {
		return nil, &Error{Op: op, Kind: KindInvalidAnswer, Key: q.key, Msg: "answer must not be empty"}
	}
	endX, endY := x+n, y+1
	if q.orientation == Down {
		endX, endY = x+1, y+n
	}
	if x < 0 || y < 0 || endX > b.width || endY > b.height {
		return nil, &Error{
			Op:   op,
			Kind: KindDoesNotFit,
			Key:  q.key,
			Msg: fmt.Sprintf("answer %q (%d letters, %s) will not fit a %dx%d board at (%d, %d)",
				answer, n, q.orientation, b.width, b.height, x, y),
		}
	}

	grid := b.answers
	if exclude != "" {
		grid = b.answerGrid(exclude)
	}
	cells := q.span(x, y, answer)
	for _, c := range cells {
		cur := grid[c.y][c.x]
		if cur != 0 && cur != c.letter {
			return nil, &Error{
				Op:       op,
				Kind:     KindLetterConflict,
				Key:      q.key,
				X:        c.x,
				Y:        c.y,
				Existing: cur,
				Incoming: c.letter,
				Msg: fmt.Sprintf("the letter %c at square (%d, %d) does not match new letter %c",
					cur, c.x, c.y, c.letter),
			}
		}
	}
	return cells, nil
}

// answerGrid rebuilds the answers grid from the placed questions,
// skipping the one keyed exclude (empty skips nothing).
func (b *Board) answerGrid(exclude string) [][]rune {
	grid := make([][]rune, b.height)
	for y := range grid {
		grid[y] = make([]rune, b.width)
	}
	for _, q := range b.questions {
		if q.key == exclude {
			continue
		}
		for _, c := range q.cells() {
			grid[c.y][c.x] = c.letter
		}
	}
	return grid
}

// paint writes the unattempted look of q into the overlay: its number on the
// start square, placeholders elsewhere. Labels and guessed letters already on
// the grid are kept.
func (b *Board) paint(q *Question) {
	for i, c := range q.cells() {
		cur := &b.guesses[c.y][c.x]
		switch {
		case cur.kind == CellLetter || cur.kind == CellLabel:
		case i == 0:
			*cur = overlay{kind: CellLabel, label: q.number}
		default:
			*cur = overlay{kind: CellPlaceholder}
		}
	}
}

// Question looks a clue up by its normalized key.
func (b *Board) Question(key string) (Question, error) {
	q, err := b.lookup("board.question", key)
	if err != nil {
		return Question{}, err
	}
	return *q, nil
}

func (b *Board) lookup(op, key string) (*Question, error) {
	q, ok := b.index[key]
	if !ok {
		return nil, &Error{
			Op:   op,
			Kind: KindUnknownQuestionKey,
			Key:  key,
			Msg:  fmt.Sprintf("%s is not a valid question key", key),
		}
	}
	return q, nil
}

// Questions returns copies of the placed clues in placement order.
func (b *Board) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = *q
	}
	return out
}

// Across returns the across clues in placement order.
func (b *Board) Across() []Question { return b.byOrientation(Across) }

// Down returns the down clues in placement order.
func (b *Board) Down() []Question { return b.byOrientation(Down) }

func (b *Board) byOrientation(o Orientation) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.orientation == o {
			out = append(out, *q)
		}
	}
	return out
}

// MakeGuess records guess for the clue keyed key and writes its letters
// onto the overlay. A guess shorter than the answer leaves the remaining
// squares as they were.
func (b *Board) MakeGuess(key, guess string) error {
	const op = "board.make_guess"
	q, err := b.lookup(op, key)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(guess); n > q.Length() {
		return &Error{
			Op:   op,
			Kind: KindGuessTooLong,
			Key:  key,
			Msg:  fmt.Sprintf("guess %q has %d letters but %s needs %d", guess, n, key, q.Length()),
		}
	}

	q.guess = guess
	q.guessed = true
	for _, c := range q.span(q.x, q.y, guess) {
		b.guesses[c.y][c.x] = overlay{kind: CellLetter, letter: c.letter}
	}
	return nil
}

// ResetGuesses returns the board to its unattempted state: every clue's
// guess is cleared and the overlay shows labels and placeholders again.
func (b *Board) ResetGuesses() {
	for y := range b.guesses {
		for x := range b.guesses[y] {
			b.guesses[y][x] = overlay{kind: CellBlank}
		}
	}
	for _, q := range b.questions {
		q.guess, q.guessed = "", false
		b.paint(q)
	}
}

// IsComplete reports whether every placed clue has been attempted.
// It says nothing about correctness.
func (b *Board) IsComplete() bool {
	for _, q := range b.questions {
		if !q.guessed {
			return false
		}
	}
	return true
}

// CheckGuesses counts the squares where the overlay differs from the answers,
// row by row. Unguessed squares of a clue count as incorrect.
func (b *Board) CheckGuesses() int {
	incorrect := 0
	for y := range b.answers {
		for x, want := range b.answers[y] {
			got := b.guesses[y][x]
			switch {
			case want == 0 && got.kind == CellBlank:
			case got.kind == CellLetter && got.letter == want:
			default:
				incorrect++
			}
		}
	}
	return incorrect
}

// IncorrectLetters counts guessed letters that disagree with the answer.
// Unlike CheckGuesses it ignores squares nobody has guessed yet.
func (b *Board) IncorrectLetters() int {
	n := 0
	for y := range b.guesses {
		for x, g := range b.guesses[y] {
			if g.kind == CellLetter && g.letter != b.answers[y][x] {
				n++
			}
		}
	}
	return n
}

// UpdateQuestion edits a placed clue. Empty text or answer keeps the current
// value. A new answer goes through the same fit and crossing checks as
// AddQuestion against every other clue; on success the clue's guess is
// cleared and its squares are redrawn.
func (b *Board) UpdateQuestion(key, text, answer string) error {
	const op = "board.update_question"
	q, err := b.lookup(op, key)
	if err != nil {
		return err
	}
	if answer == "" || answer == q.answer {
		if text != "" {
			q.text = text
		}
		return nil
	}
	if _, err := b.validatePlacement(op, *q, q.x, q.y, answer, q.key); err != nil {
		return err
	}

	old := q.cells()
	if text != "" {
		q.text = text
	}
	q.answer = answer
	q.guess, q.guessed = "", false
	b.answers = b.answerGrid("")

	for _, c := range append(old, q.cells()...) {
		b.repaint(c.x, c.y, q)
	}
	return nil
}

// repaint recomputes one overlay square after edited changed shape. The
// square shows a letter only when another guessed clue's own guess reaches
// it; otherwise it falls back to a label or placeholder.
func (b *Board) repaint(x, y int, edited *Question) {
	var covering []*Question
	for _, q := range b.questions {
		for _, c := range q.cells() {
			if c.x == x && c.y == y {
				covering = append(covering, q)
				break
			}
		}
	}
	if len(covering) == 0 {
		b.guesses[y][x] = overlay{kind: CellBlank}
		return
	}
	for _, q := range covering {
		if q == edited || !q.guessed {
			continue
		}
		i := x - q.x + y - q.y // offset along q; one of the two terms is zero
		if guess := []rune(q.guess); i < len(guess) {
			b.guesses[y][x] = overlay{kind: CellLetter, letter: upper(guess[i])}
			return
		}
	}
	for _, q := range covering {
		if q.x == x && q.y == y {
			b.guesses[y][x] = overlay{kind: CellLabel, label: q.number}
			return
		}
	}
	b.guesses[y][x] = overlay{kind: CellPlaceholder}
}

// GuessCells is the overlay as renderer data. With check set, guessed
// letters are marked correct or incorrect against the answers.
func (b *Board) GuessCells(check bool) [][]Cell {
	out := make([][]Cell, b.height)
	for y := range b.guesses {
		out[y] = make([]Cell, b.width)
		for x, g := range b.guesses[y] {
			c := Cell{Kind: g.kind}
			switch g.kind {
			case CellLabel:
				c.Value = strconv.Itoa(g.label)
			case CellLetter:
				c.Value = string(g.letter)
				if check {
					c.Status = StatusIncorrect
					if g.letter == b.answers[y][x] {
						c.Status = StatusCorrect
					}
				}
			}
			out[y][x] = c
		}
	}
	return out
}

// AnswerCells is the solved grid as renderer data.
func (b *Board) AnswerCells() [][]Cell {
	out := make([][]Cell, b.height)
	for y := range b.answers {
		out[y] = make([]Cell, b.width)
		for x, r := range b.answers[y] {
			if r == 0 {
				out[y][x] = Cell{Kind: CellBlank}
				continue
			}
			out[y][x] = Cell{Kind: CellLetter, Value: string(r)}
		}
	}
	return out
}

func upper(r rune) rune { return unicode.ToUpper(r) }
