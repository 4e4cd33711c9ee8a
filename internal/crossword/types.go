// internal/crossword/types.go
//
// Shared type definitions for the crossword model.
// Defines:
//   - Orientation: direction a clue's answer runs in (across/down).
//   - Cell: structured read-only view of one grid square for renderers.

package crossword

// Orientation is the direction of a clue's answer.
type Orientation int

const (
	Across Orientation = iota + 1
	Down
)

func (o Orientation) String() string {
	switch o {
	case Across:
		return "across"
	case Down:
		return "down"
	}
	return "unknown"
}

// Letter is the trailing letter used in clue keys ('A' or 'D').
func (o Orientation) Letter() byte {
	if o == Across {
		return 'A'
	}
	return 'D'
}

// step returns the column/row delta between consecutive letters.
func (o Orientation) step() (dx, dy int) {
	if o == Across {
		return 1, 0
	}
	return 0, 1
}

// CellKind says what a grid square currently shows.
type CellKind string

const (
	CellBlank       CellKind = "blank"       // unused square
	CellLabel       CellKind = "label"       // clue number at a clue's start square
	CellPlaceholder CellKind = "placeholder" // part of a clue, nothing guessed yet
	CellLetter      CellKind = "letter"      // an answer letter or a guessed letter
)

// CellStatus is only set on guessed letters when a check is requested.
type CellStatus string

const (
	StatusUnchecked CellStatus = ""
	StatusCorrect   CellStatus = "correct"
	StatusIncorrect CellStatus = "incorrect"
)

// Cell is the renderer-facing view of a square.
type Cell struct {
	Kind   CellKind   `json:"kind"`
	Value  string     `json:"value,omitempty"`
	Status CellStatus `json:"status,omitempty"`
}

// overlay is one square of the guesses grid.
type overlay struct {
	kind   CellKind
	label  int  // clue number, CellLabel only
	letter rune // CellLetter only
}

// position is a grid coordinate paired with the letter expected there.
type position struct {
	x, y   int
	letter rune
}
