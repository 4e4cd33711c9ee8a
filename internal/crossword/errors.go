// internal/crossword/errors.go
//
// Error kinds raised by the board and question model.
// Every failure is synchronous and returned to the caller untouched;
// nothing in this package logs or retries.

package crossword

import (
	"errors"
	"fmt"
)

// Kind classifies a crossword error.
type Kind string

const (
	KindInvalidKeyFormat   Kind = "invalid_key_format"
	KindDoesNotFit         Kind = "does_not_fit"
	KindLetterConflict     Kind = "letter_conflict"
	KindUnknownQuestionKey Kind = "unknown_question_key"
	KindGuessTooLong       Kind = "guess_too_long"
	KindDuplicateKey       Kind = "duplicate_key"
	KindInvalidAnswer      Kind = "invalid_answer"
	KindInvalidDimensions  Kind = "invalid_dimensions"
	KindUnsupportedVersion Kind = "unsupported_version"
)

// Sentinels, matched through errors.Is against any *Error of the same kind.
var (
	ErrInvalidKeyFormat   = errors.New("invalid key format")
	ErrDoesNotFit         = errors.New("answer does not fit the board")
	ErrLetterConflict     = errors.New("conflicting letter")
	ErrUnknownQuestionKey = errors.New("unknown question key")
	ErrGuessTooLong       = errors.New("guess too long")
	ErrDuplicateKey       = errors.New("duplicate question key")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrInvalidDimensions  = errors.New("invalid board dimensions")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

var sentinels = map[Kind]error{
	KindInvalidKeyFormat:   ErrInvalidKeyFormat,
	KindDoesNotFit:         ErrDoesNotFit,
	KindLetterConflict:     ErrLetterConflict,
	KindUnknownQuestionKey: ErrUnknownQuestionKey,
	KindGuessTooLong:       ErrGuessTooLong,
	KindDuplicateKey:       ErrDuplicateKey,
	KindInvalidAnswer:      ErrInvalidAnswer,
	KindInvalidDimensions:  ErrInvalidDimensions,
	KindUnsupportedVersion: ErrUnsupportedVersion,
}

// Error carries the operation, kind and whatever cell or key context applies.
type Error struct {
	Op   string
	Kind Kind
	Msg  string

	// Key is set for key lookups and key validation.
	Key string

	// X, Y, Existing and Incoming are set for letter conflicts.
	X, Y     int
	Existing rune
	Incoming rune

	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrLetterConflict) match without exposing the struct.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinels[e.Kind] == target
}

// IsKind reports whether err is a crossword error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
