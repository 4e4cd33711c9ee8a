// internal/render/render.go
//
// Console presentation of crossword boards.
// Responsibilities:
//   - Draw the guesses overlay (optionally checked) and the answers grid.
//   - List clues in across/down columns, dimming the ones already attempted.
//   - Print coloured status messages for the session loop.
//
// Notes:
//   - Only crossword.Cell and Question data are read; boards are never mutated.
//   - Colour comes from lipgloss and follows the writer's terminal profile,
//     so output to a file or buffer is plain text.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TLohan/crossword-app/internal/crossword"
)

const placeholder = "???"

// Theme groups the styles used for cells and messages.
type Theme struct {
	Grid        lipgloss.Style
	Label       lipgloss.Style
	Placeholder lipgloss.Style
	Letter      lipgloss.Style
	Correct     lipgloss.Style
	Incorrect   lipgloss.Style
	Open        lipgloss.Style
	Done        lipgloss.Style
	Info        lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultTheme mirrors a classic terminal palette.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Grid:        r.NewStyle().Foreground(lipgloss.Color("8")),
		Label:       r.NewStyle().Foreground(lipgloss.Color("12")),
		Placeholder: r.NewStyle().Foreground(lipgloss.Color("12")),
		Letter:      r.NewStyle().Foreground(lipgloss.Color("13")),
		Correct:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Incorrect:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Open:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Done:        r.NewStyle().Faint(true),
		Info:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes boards and messages to w.
type Renderer struct {
	w     io.Writer
	theme Theme
	plain bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutColor disables styling regardless of the terminal.
func WithoutColor() Option {
	return func(r *Renderer) { r.plain = true }
}

// New returns a Renderer for w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, theme: DefaultTheme(lipgloss.NewRenderer(w))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Writer is the underlying output.
func (r *Renderer) Writer() io.Writer { return r.w }

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// Guesses draws the player's grid. With check set, guessed letters are
// coloured by correctness and the number of wrong letters is returned.
func (r *Renderer) Guesses(b *crossword.Board, check bool) int {
	incorrect := 0
	cells := b.GuessCells(check)
	r.grid(b.Width(), cells, func(c crossword.Cell) string {
		switch c.Kind {
		case crossword.CellLabel:
			return r.paint(r.theme.Label, fmt.Sprintf("%-3s", c.Value))
		case crossword.CellPlaceholder:
			return r.paint(r.theme.Placeholder, placeholder)
		case crossword.CellLetter:
			text := " " + c.Value + " "
			switch c.Status {
			case crossword.StatusCorrect:
				return r.paint(r.theme.Correct, text)
			case crossword.StatusIncorrect:
				incorrect++
				return r.paint(r.theme.Incorrect, text)
			}
			return r.paint(r.theme.Letter, text)
		}
		return "   "
	})
	return incorrect
}

// Answers draws the solved grid.
func (r *Renderer) Answers(b *crossword.Board) {
	r.grid(b.Width(), b.AnswerCells(), func(c crossword.Cell) string {
		if c.Kind == crossword.CellLetter {
			return r.paint(r.theme.Letter, " "+c.Value+" ")
		}
		return "   "
	})
}

func (r *Renderer) grid(width int, cells [][]crossword.Cell, draw func(crossword.Cell) string) {
	line := r.paint(r.theme.Grid, strings.Repeat("+---", width)+"+")
	bar := r.paint(r.theme.Grid, "|")

	var sb strings.Builder
	sb.WriteString("\n")
	for _, row := range cells {
		sb.WriteString(line)
		sb.WriteString("\n")
		for _, c := range row {
			sb.WriteString(bar)
			sb.WriteString(draw(c))
		}
		sb.WriteString(bar)
		sb.WriteString("\n")
	}
	sb.WriteString(line)
	sb.WriteString("\n")
	_, _ = io.WriteString(r.w, sb.String())
}

// Questions lists across clues beside down clues.
func (r *Renderer) Questions(b *crossword.Board) {
	across, down := b.Across(), b.Down()
	left := make([]string, len(across))
	colWidth := len("ACROSS")
	for i, q := range across {
		left[i] = clueLine(q)
		if w := lipgloss.Width(left[i]); w > colWidth {
			colWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.paint(r.theme.Info, pad("ACROSS", colWidth)))
	sb.WriteString("    ")
	sb.WriteString(r.paint(r.theme.Info, "DOWN"))
	sb.WriteString("\n")

	rows := max(len(across), len(down))
	for i := 0; i < rows; i++ {
		if i < len(across) {
			sb.WriteString(r.paint(r.clueStyle(across[i]), pad(left[i], colWidth)))
		} else {
			sb.WriteString(strings.Repeat(" ", colWidth))
		}
		if i < len(down) {
			sb.WriteString("    ")
			sb.WriteString(r.paint(r.clueStyle(down[i]), clueLine(down[i])))
		}
		sb.WriteString("\n")
	}
	_, _ = io.WriteString(r.w, sb.String())
}

func (r *Renderer) clueStyle(q crossword.Question) lipgloss.Style {
	if q.Guessed() {
		return r.theme.Done
	}
	return r.theme.Open
}

func clueLine(q crossword.Question) string {
	return fmt.Sprintf("%s: %s (%d)", q.Key(), q.Text(), q.Length())
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Info prints a neutral message.
func (r *Renderer) Info(format string, args ...any) { r.message(r.theme.Info, format, args...) }

// Success prints a positive message.
func (r *Renderer) Success(format string, args ...any) { r.message(r.theme.Success, format, args...) }

// Error prints a failure message.
func (r *Renderer) Error(format string, args ...any) { r.message(r.theme.Error, format, args...) }

func (r *Renderer) message(s lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintln(r.w, r.paint(s, fmt.Sprintf(format, args...)))
}
