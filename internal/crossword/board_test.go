package crossword

import (
	"errors"
	"reflect"
	"testing"
)

func mustQuestion(t *testing.T, key, text, answer string) Question {
	t.Helper()
	q, err := NewQuestion(key, text, answer)
	if err != nil {
		t.Fatalf("NewQuestion(%s): %v", key, err)
	}
	return q
}

func mustBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	b, err := NewBoard(w, h)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func dublinBoard(t *testing.T) *Board {
	t.Helper()
	b := mustBoard(t, DefaultWidth, DefaultHeight)
	if err := b.AddQuestion(mustQuestion(t, "1A", "Capital City of Ireland", "Dublin"), 0, 0); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	return b
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewBoard(d[0], d[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("%dx%d: expected ErrInvalidDimensions, got %v", d[0], d[1], err)
		}
	}
}

func TestAddQuestionFit(t *testing.T) {
	cases := []struct {
		name string
		key  string
		x, y int
		ok   bool
	}{
		{"across at boundary", "1A", 0, 2, true},
		{"across one past", "1A", 1, 2, false},
		{"down at boundary", "1D", 2, 0, true},
		{"down one past", "1D", 2, 1, false},
		{"negative column", "1A", -1, 0, false},
		{"negative row", "1D", 0, -1, false},
		{"row outside", "1A", 0, 5, false},
	}
	for _, tc := range cases {
		b := mustBoard(t, 5, 5)
		err := b.AddQuestion(mustQuestion(t, tc.key, "five", "Paris"), tc.x, tc.y)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok {
			if !errors.Is(err, ErrDoesNotFit) {
				t.Fatalf("%s: expected ErrDoesNotFit, got %v", tc.name, err)
			}
			if len(b.Questions()) != 0 {
				t.Fatalf("%s: failed placement should not add a question", tc.name)
			}
		}
	}
}

func TestAddQuestionWritesGrids(t *testing.T) {
	b := mustBoard(t, 15, 15)
	q := mustQuestion(t, "12D", "Capital City of France", "Paris")
	if err := b.AddQuestion(q, 2, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := b.Question("12D")
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	if x, y, placed := got.Coordinates(); !placed || x != 2 || y != 0 {
		t.Fatalf("expected placed at (2, 0), got (%d, %d) placed=%v", x, y, placed)
	}

	answers := b.AnswerCells()
	for i, want := range "PARIS" {
		if c := answers[i][2]; c.Kind != CellLetter || c.Value != string(want) {
			t.Fatalf("answer row %d: expected %c, got %+v", i, want, c)
		}
	}

	guesses := b.GuessCells(false)
	if c := guesses[0][2]; c.Kind != CellLabel || c.Value != "12" {
		t.Fatalf("expected label 12 at start, got %+v", c)
	}
	for y := 1; y < 5; y++ {
		if c := guesses[y][2]; c.Kind != CellPlaceholder {
			t.Fatalf("expected placeholder at row %d, got %+v", y, c)
		}
	}
	if c := guesses[0][3]; c.Kind != CellBlank {
		t.Fatalf("expected blank next to the clue, got %+v", c)
	}
}

func TestCrossingCluesShareLetter(t *testing.T) {
	b := mustBoard(t, 15, 15)
	if err := b.AddQuestion(mustQuestion(t, "1A", "Capital City of Ireland", "Dublin"), 0, 0); err != nil {
		t.Fatalf("1A: %v", err)
	}
	if err := b.AddQuestion(mustQuestion(t, "1D", "Copenhagen is its capital city", "Denmark"), 0, 0); err != nil {
		t.Fatalf("1D: %v", err)
	}

	guesses := b.GuessCells(false)
	if c := guesses[0][0]; c.Kind != CellLabel || c.Value != "1" {
		t.Fatalf("shared start square should keep label 1, got %+v", c)
	}
	if c := guesses[1][0]; c.Kind != CellPlaceholder {
		t.Fatalf("expected placeholder below start, got %+v", c)
	}
	if len(b.Across()) != 1 || len(b.Down()) != 1 {
		t.Fatalf("expected one across and one down clue, got %d/%d", len(b.Across()), len(b.Down()))
	}
}

func TestLaterStartSquareGetsLabel(t *testing.T) {
	b := mustBoard(t, 5, 5)
	_ = b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1)
	if err := b.AddQuestion(mustQuestion(t, "2D", "ape", "ALE"), 1, 1); err != nil {
		t.Fatalf("2D: %v", err)
	}
	if c := b.GuessCells(false)[1][1]; c.Kind != CellLabel || c.Value != "2" {
		t.Fatalf("expected label 2 over the placeholder, got %+v", c)
	}

	// A placeholder never replaces a label.
	if err := b.AddQuestion(mustQuestion(t, "4D", "frozen water", "ICE"), 0, 0); err != nil {
		t.Fatalf("4D: %v", err)
	}
	cells := b.GuessCells(false)
	if c := cells[1][0]; c.Kind != CellLabel || c.Value != "1" {
		t.Fatalf("expected label 1 to survive, got %+v", c)
	}
	if c := cells[0][0]; c.Kind != CellLabel || c.Value != "4" {
		t.Fatalf("expected label 4, got %+v", c)
	}
}

func TestLetterConflictLeavesBoardUntouched(t *testing.T) {
	b := mustBoard(t, 5, 5)
	if err := b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1); err != nil {
		t.Fatalf("1A: %v", err)
	}
	before := b.Snapshot()

	err := b.AddQuestion(mustQuestion(t, "2D", "container", "BOX"), 1, 0)
	if !errors.Is(err, ErrLetterConflict) {
		t.Fatalf("expected ErrLetterConflict, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ce.X != 1 || ce.Y != 1 || ce.Existing != 'A' || ce.Incoming != 'O' {
		t.Fatalf("expected conflict A/O at (1, 1), got %c/%c at (%d, %d)", ce.Existing, ce.Incoming, ce.X, ce.Y)
	}

	// The B at (1, 0) comes before the conflict and must not have been written.
	if c := b.AnswerCells()[0][1]; c.Kind != CellBlank {
		t.Fatalf("expected (1, 0) to stay blank, got %+v", c)
	}
	if !reflect.DeepEqual(before, b.Snapshot()) {
		t.Fatal("failed placement changed the board")
	}
	if _, err := b.Question("2D"); !errors.Is(err, ErrUnknownQuestionKey) {
		t.Fatalf("2D should not be on the board, got %v", err)
	}
}

func TestConflictIsCaseInsensitive(t *testing.T) {
	b := mustBoard(t, 15, 15)
	_ = b.AddQuestion(mustQuestion(t, "12D", "Capital City of France", "paris"), 0, 0)
	if err := b.AddQuestion(mustQuestion(t, "1A", "Fruit", "Pear"), 0, 0); err != nil {
		t.Fatalf("expected p/P to agree: %v", err)
	}
	if err := b.AddQuestion(mustQuestion(t, "2A", "Capital City of Ireland", "Dublin"), 0, 1); !errors.Is(err, ErrLetterConflict) {
		t.Fatalf("expected conflict on A/D, got %v", err)
	}
}

func TestAddQuestionRejectsDuplicateKey(t *testing.T) {
	b := dublinBoard(t)
	err := b.AddQuestion(mustQuestion(t, "1A", "Capital City of Wales", "Cardiff"), 0, 5)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if c := b.AnswerCells()[5][0]; c.Kind != CellBlank {
		t.Fatalf("duplicate should not write letters, got %+v", c)
	}
}

func TestAddQuestionRejectsEmptyAnswer(t *testing.T) {
	b := mustBoard(t, 5, 5)
	if err := b.AddQuestion(mustQuestion(t, "1A", "nothing", ""), 0, 0); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if err := b.AddQuestion(Question{}, 0, 0); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Fatalf("expected ErrInvalidKeyFormat for zero question, got %v", err)
	}
}

func TestQuestionReturnsCopy(t *testing.T) {
	b := dublinBoard(t)
	q, _ := b.Question("1A")
	q.SetAnswer("Cork")
	q.SetText("changed")

	again, _ := b.Question("1A")
	if again.Answer() != "Dublin" || again.Text() != "Capital City of Ireland" {
		t.Fatalf("mutating a returned question changed the board: %q %q", again.Text(), again.Answer())
	}
}

func TestQuestionUnknownKey(t *testing.T) {
	b := dublinBoard(t)
	if _, err := b.Question("2D"); !errors.Is(err, ErrUnknownQuestionKey) {
		t.Fatalf("expected ErrUnknownQuestionKey, got %v", err)
	}
}

func TestMakeGuessCorrect(t *testing.T) {
	b := dublinBoard(t)
	if err := b.MakeGuess("1A", "Dublin"); err != nil {
		t.Fatalf("MakeGuess: %v", err)
	}
	if !b.IsComplete() {
		t.Fatal("expected board to be complete")
	}
	if n := b.CheckGuesses(); n != 0 {
		t.Fatalf("expected 0 incorrect squares, got %d", n)
	}
	q, _ := b.Question("1A")
	if !q.Guessed() || q.Guess() != "Dublin" {
		t.Fatalf("expected raw guess stored, got %q guessed=%v", q.Guess(), q.Guessed())
	}
}

func TestMakeGuessOneWrongLetter(t *testing.T) {
	b := dublinBoard(t)
	if err := b.MakeGuess("1A", "Dublln"); err != nil {
		t.Fatalf("MakeGuess: %v", err)
	}
	if !b.IsComplete() {
		t.Fatal("a wrong guess still completes the clue")
	}
	if n := b.CheckGuesses(); n != 1 {
		t.Fatalf("expected 1 incorrect square, got %d", n)
	}

	cells := b.GuessCells(true)
	if c := cells[0][4]; c.Value != "L" || c.Status != StatusIncorrect {
		t.Fatalf("expected incorrect L at (4, 0), got %+v", c)
	}
	if c := cells[0][0]; c.Value != "D" || c.Status != StatusCorrect {
		t.Fatalf("expected correct D at (0, 0), got %+v", c)
	}
	if c := b.GuessCells(false)[0][4]; c.Status != StatusUnchecked {
		t.Fatalf("unchecked view should not carry status, got %+v", c)
	}
}

func TestMakeGuessTooLong(t *testing.T) {
	b := mustBoard(t, 15, 15)
	_ = b.AddQuestion(mustQuestion(t, "12D", "Capital City of France", "Paris"), 0, 0)
	before := b.GuessCells(false)

	err := b.MakeGuess("12D", "TooLong")
	if !errors.Is(err, ErrGuessTooLong) {
		t.Fatalf("expected ErrGuessTooLong, got %v", err)
	}
	q, _ := b.Question("12D")
	if q.Guessed() || q.Guess() != "" {
		t.Fatal("a rejected guess must not mark the clue guessed")
	}
	if !reflect.DeepEqual(before, b.GuessCells(false)) {
		t.Fatal("a rejected guess must not touch the overlay")
	}
}

func TestMakeGuessUnknownKey(t *testing.T) {
	b := dublinBoard(t)
	err := b.MakeGuess("3D", "abc")
	if !errors.Is(err, ErrUnknownQuestionKey) {
		t.Fatalf("expected ErrUnknownQuestionKey, got %v", err)
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Key != "3D" {
		t.Fatalf("expected error to name 3D, got %q", ce.Key)
	}
}

func TestMakeGuessShortLeavesRest(t *testing.T) {
	b := dublinBoard(t)
	if err := b.MakeGuess("1A", "dub"); err != nil {
		t.Fatalf("MakeGuess: %v", err)
	}
	q, _ := b.Question("1A")
	if !q.Guessed() {
		t.Fatal("short guess should mark the clue guessed")
	}
	row := b.GuessCells(false)[0]
	for i, want := range "DUB" {
		if row[i].Kind != CellLetter || row[i].Value != string(want) {
			t.Fatalf("square %d: expected %c, got %+v", i, want, row[i])
		}
	}
	for i := 3; i < 6; i++ {
		if row[i].Kind != CellPlaceholder {
			t.Fatalf("square %d: expected placeholder, got %+v", i, row[i])
		}
	}
	if n := b.CheckGuesses(); n != 3 {
		t.Fatalf("expected 3 incorrect squares, got %d", n)
	}
	if n := b.IncorrectLetters(); n != 0 {
		t.Fatalf("expected no wrong letters, got %d", n)
	}
}

func TestIsComplete(t *testing.T) {
	b := mustBoard(t, 15, 15)
	_ = b.AddQuestion(mustQuestion(t, "1A", "Capital City of Ireland", "Dublin"), 0, 0)
	_ = b.AddQuestion(mustQuestion(t, "1D", "Copenhagen is its capital city", "Denmark"), 0, 0)

	if b.IsComplete() {
		t.Fatal("no clue guessed yet")
	}
	_ = b.MakeGuess("1A", "Dublin")
	if b.IsComplete() {
		t.Fatal("1D still unguessed")
	}
	_ = b.MakeGuess("1D", "Denmark")
	if !b.IsComplete() {
		t.Fatal("expected complete")
	}
	if n := b.CheckGuesses(); n != 0 {
		t.Fatalf("expected 0 incorrect squares, got %d", n)
	}
}

func TestResetGuesses(t *testing.T) {
	b := mustBoard(t, 15, 15)
	_ = b.AddQuestion(mustQuestion(t, "1A", "Capital City of Ireland", "Dublin"), 0, 0)
	_ = b.AddQuestion(mustQuestion(t, "1D", "Copenhagen is its capital city", "Denmark"), 0, 0)
	fresh := b.GuessCells(false)

	_ = b.MakeGuess("1A", "Dublin")
	_ = b.MakeGuess("1D", "Dxnmark")
	b.ResetGuesses()

	if !reflect.DeepEqual(fresh, b.GuessCells(false)) {
		t.Fatal("reset should restore labels and placeholders")
	}
	if b.IsComplete() {
		t.Fatal("reset should clear guessed flags")
	}
	for _, q := range b.Questions() {
		if q.Guess() != "" {
			t.Fatalf("%s: expected guess cleared, got %q", q.Key(), q.Guess())
		}
	}
}

func TestUpdateQuestion(t *testing.T) {
	b := mustBoard(t, 5, 5)
	_ = b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1)
	_ = b.AddQuestion(mustQuestion(t, "2D", "beer", "ALE"), 1, 1)
	_ = b.MakeGuess("1A", "cat")

	// Text only keeps the guess.
	if err := b.UpdateQuestion("1A", "feline", ""); err != nil {
		t.Fatalf("text update: %v", err)
	}
	q, _ := b.Question("1A")
	if q.Text() != "feline" || !q.Guessed() {
		t.Fatalf("text update should keep the guess, got %q guessed=%v", q.Text(), q.Guessed())
	}

	// A new answer that breaks the crossing is rejected.
	if err := b.UpdateQuestion("1A", "", "COT"); !errors.Is(err, ErrLetterConflict) {
		t.Fatalf("expected ErrLetterConflict, got %v", err)
	}
	if err := b.UpdateQuestion("1A", "", "CATS"); err != nil {
		t.Fatalf("CATS fits: %v", err)
	}
	if err := b.UpdateQuestion("1A", "", "CATSUP"); !errors.Is(err, ErrDoesNotFit) {
		t.Fatalf("expected ErrDoesNotFit, got %v", err)
	}

	q, _ = b.Question("1A")
	if q.Answer() != "CATS" || q.Guessed() {
		t.Fatalf("expected CATS with guess cleared, got %q guessed=%v", q.Answer(), q.Guessed())
	}
	answers := b.AnswerCells()
	if c := answers[1][3]; c.Value != "S" {
		t.Fatalf("expected S at (3, 1), got %+v", c)
	}
	guesses := b.GuessCells(false)
	if c := guesses[1][0]; c.Kind != CellLabel || c.Value != "1" {
		t.Fatalf("expected label 1 back at start, got %+v", c)
	}
	if c := guesses[1][1]; c.Kind != CellLabel || c.Value != "2" {
		t.Fatalf("expected label 2 at crossing, got %+v", c)
	}
	if c := guesses[1][3]; c.Kind != CellPlaceholder {
		t.Fatalf("expected placeholder on new square, got %+v", c)
	}

	// Shrinking the answer frees squares.
	if err := b.UpdateQuestion("1A", "", "CA"); err != nil {
		t.Fatalf("CA: %v", err)
	}
	if c := b.GuessCells(false)[1][2]; c.Kind != CellBlank {
		t.Fatalf("expected freed square to be blank, got %+v", c)
	}
	if c := b.AnswerCells()[1][2]; c.Kind != CellBlank {
		t.Fatalf("expected freed answer square to be blank, got %+v", c)
	}

	if err := b.UpdateQuestion("9D", "x", "y"); !errors.Is(err, ErrUnknownQuestionKey) {
		t.Fatalf("expected ErrUnknownQuestionKey, got %v", err)
	}
}

func TestUpdateQuestionKeepsCrossingGuess(t *testing.T) {
	b := mustBoard(t, 5, 5)
	_ = b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1)
	_ = b.AddQuestion(mustQuestion(t, "2D", "beer", "ALE"), 1, 1)
	_ = b.MakeGuess("2D", "ale")

	if err := b.UpdateQuestion("1A", "", "BAT"); err != nil {
		t.Fatalf("BAT: %v", err)
	}
	if c := b.GuessCells(false)[1][1]; c.Kind != CellLetter || c.Value != "A" {
		t.Fatalf("2D's guessed letter should survive, got %+v", c)
	}
}

func TestUpdateQuestionRestoresCrossingGuessLetter(t *testing.T) {
	b := mustBoard(t, 5, 5)
	_ = b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1)
	_ = b.AddQuestion(mustQuestion(t, "2D", "beer", "ALE"), 1, 1)
	_ = b.MakeGuess("2D", "axe")
	_ = b.MakeGuess("1A", "cxt") // overwrites 2D's A at (1,1)

	if err := b.UpdateQuestion("1A", "", "BAT"); err != nil {
		t.Fatalf("BAT: %v", err)
	}
	if c := b.GuessCells(false)[1][1]; c.Kind != CellLetter || c.Value != "A" {
		t.Fatalf("expected 2D's own letter A at (1,1), got %+v", c)
	}
	if c := b.GuessCells(false)[1][0]; c.Kind != CellLabel || c.Value != "1" {
		t.Fatalf("expected 1A's label at (0,1), got %+v", c)
	}
}

func TestUpdateQuestionDropsLetterWhenCrossingGuessIsEmpty(t *testing.T) {
	b := mustBoard(t, 5, 5)
	_ = b.AddQuestion(mustQuestion(t, "1A", "pet", "CAT"), 0, 1)
	_ = b.AddQuestion(mustQuestion(t, "2D", "beer", "ALE"), 1, 1)
	_ = b.MakeGuess("1A", "cat")
	_ = b.MakeGuess("2D", "")

	if err := b.UpdateQuestion("1A", "", "BAT"); err != nil {
		t.Fatalf("BAT: %v", err)
	}
	if c := b.GuessCells(false)[1][1]; c.Kind != CellLabel || c.Value != "2" {
		t.Fatalf("expected 2D's label at (1,1), got %+v", c)
	}
	if n := b.IncorrectLetters(); n != 0 {
		t.Fatalf("no guessed letters remain, got %d incorrect", n)
	}
}

func TestPlayedFlag(t *testing.T) {
	b := dublinBoard(t)
	if b.Played() {
		t.Fatal("new board should be unplayed")
	}
	b.MarkPlayed()
	if !b.Played() {
		t.Fatal("expected played")
	}
}
