// internal/session/session.go
//
// Interactive menu loop for the terminal crossword.
// Responsibilities:
//   - Menu: play, create, edit, daily crossword, quit.
//   - Play: pick the first unplayed board (or replay an old one), accept
//     "<key> <guess>" lines, check on completion.
//   - Create/Edit: prompt for dimensions and clues, validate through the
//     board, save or discard.
//   - Persist through the configured store whenever a mode finishes.
//
// Notes:
//   - Input is line oriented; end of input behaves like Quit after saving.
//   - Board rule violations are shown to the player and re-prompted; only
//     store failures and read errors end the session.

package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TLohan/crossword-app/internal/crossword"
	"github.com/TLohan/crossword-app/internal/daily"
	"github.com/TLohan/crossword-app/internal/history"
	"github.com/TLohan/crossword-app/internal/render"
	"github.com/TLohan/crossword-app/internal/store"
)

const (
	cmdLeave = "-1"
	cmdCheck = "check"
)

// Session drives one player's interaction with the stored crosswords.
type Session struct {
	in      *bufio.Scanner
	out     *render.Renderer
	store   store.Store
	history *history.Store
	salt    string
	now     func() time.Time
	clear   func()

	boards []*crossword.Board
}

// Option configures a Session.
type Option func(*Session)

// WithHistory records every completed check.
func WithHistory(h *history.Store) Option {
	return func(s *Session) { s.history = h }
}

// WithDailySalt sets the salt for the crossword of the day.
func WithDailySalt(salt string) Option {
	return func(s *Session) { s.salt = salt }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithClearScreen sets the function called before redrawing a board.
func WithClearScreen(clear func()) Option {
	return func(s *Session) { s.clear = clear }
}

// New builds a session reading commands from in and drawing with out.
func New(st store.Store, in io.Reader, out *render.Renderer, opts ...Option) *Session {
	s := &Session{
		in:    bufio.NewScanner(in),
		out:   out,
		store: st,
		salt:  "local_dev_salt",
		now:   time.Now,
		clear: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Boards returns the boards currently held by the session.
func (s *Session) Boards() []*crossword.Board { return s.boards }

// Run loads the stored crosswords and shows the menu until the player quits.
func (s *Session) Run(ctx context.Context) error {
	boards, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load crosswords: %w", err)
	}
	s.boards = boards
	log.Info().Int("boards", len(boards)).Msg("session started")

	welcome := "Welcome to Crossword Program"
	line := strings.Repeat("=", len(welcome))
	s.printf("%s\n%s\n%s\n", line, welcome, line)

	err = s.menu(ctx)
	if errors.Is(err, io.EOF) {
		if serr := s.save(ctx); serr != nil {
			return serr
		}
		s.printf("\nGoodbye!\n")
		return nil
	}
	return err
}

func (s *Session) menu(ctx context.Context) error {
	for {
		s.out.Info("\nMENU\n____\n")
		mode, err := s.chooseMode()
		if err != nil {
			return err
		}
		switch mode {
		case "P":
			s.clear()
			err = s.play(ctx)
		case "C":
			s.clear()
			err = s.create(ctx)
		case "E":
			err = s.edit(ctx)
		case "D":
			s.clear()
			err = s.daily(ctx)
		case "Q":
			s.printf("\nGoodbye!\n")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) chooseMode() (string, error) {
	for {
		s.printf("-> Play crossword (P)\n")
		s.printf("-> Create new crossword (C)\n")
		s.printf("-> Edit crossword (E)\n")
		s.printf("-> Crossword of the day (D)\n")
		s.printf("-> Quit (Q)\n\n")
		in, err := s.prompt(">>  ")
		if err != nil {
			return "", err
		}
		switch mode := strings.ToUpper(in); mode {
		case "P", "C", "E", "D", "Q":
			return mode, nil
		}
		s.out.Error("\nInvalid option. Please try again.\n")
	}
}

// ---------------------------------------------------------------------------
// play

func (s *Session) play(ctx context.Context) error {
	if len(s.boards) == 0 {
		s.out.Error("No crosswords in the database please add one to play.")
		return nil
	}

	again := true
	for again {
		b := s.firstUnplayed()
		if b == nil {
			replay, err := s.confirm("No unplayed crosswords remain. Would you like to play an old one?")
			if err != nil {
				return err
			}
			if !replay {
				break
			}
			b = s.boards[0]
			b.ResetGuesses()
		}
		var err error
		if again, err = s.playBoard(ctx, b); err != nil {
			return err
		}
	}
	return s.save(ctx)
}

func (s *Session) firstUnplayed() *crossword.Board {
	for _, b := range s.boards {
		if !b.Played() {
			return b
		}
	}
	return nil
}

// playBoard runs the guess loop for one board and reports whether the
// player wants to keep playing.
func (s *Session) playBoard(ctx context.Context, b *crossword.Board) (bool, error) {
	b.MarkPlayed()
	s.out.Info("%s", b.Name())
	s.out.Guesses(b, false)
	s.out.Questions(b)

	for done := false; !done; {
		in, err := s.prompt("\nEnter the question key followed by your guess.\n>\t")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(in) {
		case cmdLeave:
			done = true
			continue
		case cmdCheck:
			s.clear()
			s.out.Guesses(b, true)
			s.out.Questions(b)
			continue
		}

		fields := strings.Fields(in)
		if len(fields) != 2 {
			s.out.Error("Enter a question key and a guess, for example: 1A dublin")
			continue
		}
		if err := b.MakeGuess(strings.ToUpper(fields[0]), fields[1]); err != nil {
			s.out.Error("%s", describe(err))
			continue
		}

		if !b.IsComplete() {
			s.clear()
			s.out.Guesses(b, false)
			s.out.Questions(b)
			continue
		}

		s.out.Info("All questions answered.")
		incorrect := b.CheckGuesses()
		s.record(ctx, b, incorrect)
		if incorrect == 0 {
			s.out.Success("Congratulations you completed the crossword correctly.")
			done = true
			continue
		}
		s.out.Guesses(b, true)
		s.out.Error("Oh no! There are %d incorrect squares.", incorrect)
		s.out.Questions(b)
	}

	again, err := s.confirm("Would you like to play again?")
	s.clear()
	return again, err
}

func (s *Session) record(ctx context.Context, b *crossword.Board, incorrect int) {
	log.Info().Str("board", b.ID()).Int("incorrect", incorrect).Msg("crossword checked")
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, history.Result{
		BoardID:   b.ID(),
		Date:      daily.DateKey(s.now()),
		Incorrect: incorrect,
		Complete:  b.IsComplete(),
	})
	if err != nil {
		log.Warn().Err(err).Str("board", b.ID()).Msg("record play result")
	}
}

// ---------------------------------------------------------------------------
// daily

func (s *Session) daily(ctx context.Context) error {
	// BoardIndex returns -1 for an empty collection.
	idx := daily.BoardIndex(s.now(), s.salt, len(s.boards))
	if idx < 0 {
		s.out.Error("No crosswords in the database please add one to play.")
		return nil
	}
	b := s.boards[idx]
	s.out.Info("Crossword of the day (%s)", daily.DateKey(s.now()))

	if b.Played() && b.IsComplete() {
		again, err := s.confirm("You have already finished today's crossword. Play it again?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		b.ResetGuesses()
	}
	if _, err := s.playBoard(ctx, b); err != nil {
		return err
	}
	return s.save(ctx)
}

// ---------------------------------------------------------------------------
// create

func (s *Session) create(ctx context.Context) error {
	s.out.Info("Create a new Crossword.")

	var b *crossword.Board
	for b == nil {
		height, err := s.readInt("Number of squares high")
		if err != nil {
			return err
		}
		width, err := s.readInt("Number of squares across")
		if err != nil {
			return err
		}
		if b, err = crossword.NewBoard(width, height); err != nil {
			s.out.Error("Oops! %s. Try again!", describe(err))
		}
	}
	title, err := s.prompt("Title (optional):  ")
	if err != nil {
		return err
	}
	b.SetTitle(title)

	add, err := s.confirm("Add question?")
	if err != nil {
		return err
	}
	for add {
		q, err := s.readQuestion()
		if err != nil {
			return err
		}
		col, err := s.readInt("Column")
		if err != nil {
			return err
		}
		row, err := s.readInt("Row")
		if err != nil {
			return err
		}
		if err := b.AddQuestion(q, col, row); err != nil {
			s.out.Error("Cannot add that question. %s", describe(err))
			s.out.Error("Please try again.")
			continue
		}
		s.clear()
		s.out.Answers(b)
		s.out.Success("Question added!")
		if add, err = s.confirm("Add another question?"); err != nil {
			return err
		}
	}

	keep, err := s.confirm("Save crossword?")
	if err != nil {
		return err
	}
	if !keep {
		discard, err := s.confirm("Are you sure you want to discard this crossword?")
		if err != nil {
			return err
		}
		keep = !discard
	}
	if !keep {
		s.out.Info("Crossword discarded.")
		return nil
	}
	s.boards = append(s.boards, b)
	if err := s.save(ctx); err != nil {
		return err
	}
	s.out.Success("Crossword Saved!")
	return nil
}

func (s *Session) readQuestion() (crossword.Question, error) {
	var q crossword.Question
	for {
		key, err := s.prompt("Question Key:  ")
		if err != nil {
			return q, err
		}
		if err := q.SetKey(strings.ToUpper(key)); err != nil {
			s.out.Error("Oops, %s", describe(err))
			continue
		}
		break
	}
	text, err := s.prompt("Question:  ")
	if err != nil {
		return q, err
	}
	answer, err := s.prompt("Answer:  ")
	if err != nil {
		return q, err
	}
	q.SetText(text)
	q.SetAnswer(answer)
	return q, nil
}

// ---------------------------------------------------------------------------
// edit

func (s *Session) edit(ctx context.Context) error {
	if len(s.boards) == 0 {
		s.out.Error("No crosswords in the database please add one to edit.")
		return nil
	}
	s.out.Info("EDIT\n______")
	s.printf("Select a crossword to edit\n")
	for i, b := range s.boards {
		s.printf("%d %s\n", i, b.Name())
	}

	var b *crossword.Board
	for b == nil {
		n, err := s.readInt("Number")
		if err != nil {
			return err
		}
		if n < 0 || n >= len(s.boards) {
			s.out.Error("Invalid number! Please try again.")
			continue
		}
		b = s.boards[n]
	}

	s.out.Answers(b)
	s.out.Questions(b)
	for {
		key, err := s.prompt("\nKey: ")
		if err != nil {
			return err
		}
		if key == cmdLeave {
			break
		}
		s.clear()
		key = strings.ToUpper(key)
		if _, err := b.Question(key); err != nil {
			s.out.Error("%s Please try again.", describe(err))
		} else if err := s.editQuestion(b, key); err != nil {
			return err
		}
		s.out.Answers(b)
		s.out.Questions(b)
	}

	if err := s.save(ctx); err != nil {
		return err
	}
	s.out.Success("Edit saved!")
	return nil
}

func (s *Session) editQuestion(b *crossword.Board, key string) error {
	text, err := s.prompt("Question: ")
	if err != nil {
		return err
	}
	answer, err := s.prompt("Answer: ")
	if err != nil {
		return err
	}
	if err := b.UpdateQuestion(key, text, answer); err != nil {
		s.out.Error("Cannot change %s. %s", key, describe(err))
	}
	return nil
}

// ---------------------------------------------------------------------------
// helpers

func (s *Session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.boards); err != nil {
		log.Error().Err(err).Msg("save crosswords")
		return fmt.Errorf("save crosswords: %w", err)
	}
	log.Info().Int("boards", len(s.boards)).Msg("crosswords saved")
	return nil
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out.Writer(), format, args...)
}

// prompt prints msg and returns the next trimmed input line.
func (s *Session) prompt(msg string) (string, error) {
	s.printf("%s", msg)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// confirm asks a yes/no question until it gets y or n.
func (s *Session) confirm(msg string) (bool, error) {
	for {
		in, err := s.prompt(msg + " (y/n) ")
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(in) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		s.out.Error("Invalid input. Please try again.")
	}
}

// readInt asks for an integer until it gets one.
func (s *Session) readInt(metric string) (int, error) {
	for {
		in, err := s.prompt(metric + ":  ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(in)
		if err == nil {
			return n, nil
		}
		s.out.Error("Oops! Value must be an integer. Try again!")
	}
}

// describe turns a board error into the message shown to the player.
func describe(err error) string {
	var ce *crossword.Error
	if errors.As(err, &ce) && ce.Msg != "" {
		return ce.Msg
	}
	return err.Error()
}
