// internal/puzzles/puzzles.go
//
// Loads crossword definitions written in YAML and turns them into boards.
//
// File format:
//
//	puzzles:
//	  - title: Capitals
//	    width: 15
//	    height: 15
//	    clues:
//	      - {key: 1A, text: Capital City of Ireland, answer: Dublin, x: 0, y: 0}
//
// Sources:
//   - LoadFile: a YAML file on disk.
//   - Embedded: the sample puzzles compiled into the binary (assets/sample.yaml).
//
// Every clue is placed through Board.AddQuestion, so a definition with
// overlapping letters that disagree is rejected with the clue named.

package puzzles

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TLohan/crossword-app/assets"
	"github.com/TLohan/crossword-app/internal/crossword"
)

// ErrNoPuzzles is returned when a document defines no puzzles.
var ErrNoPuzzles = errors.New("puzzles: document defines no puzzles")

type document struct {
	Puzzles []puzzle `yaml:"puzzles"`
}

type puzzle struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Clues  []clue `yaml:"clues"`
}

type clue struct {
	Key    string `yaml:"key"`
	Text   string `yaml:"text"`
	Answer string `yaml:"answer"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// LoadFile reads and builds every puzzle in the YAML file at path.
func LoadFile(path string) ([]*crossword.Board, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("puzzles: read %s: %w", path, err)
	}
	boards, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return boards, nil
}

// Embedded builds the sample puzzles bundled with the binary.
func Embedded() ([]*crossword.Board, error) {
	return Parse(assets.SamplePuzzles())
}

// Parse builds boards from a YAML document. Missing dimensions default to 15x15.
func Parse(data []byte) ([]*crossword.Board, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("puzzles: decode: %w", err)
	}
	if len(doc.Puzzles) == 0 {
		return nil, ErrNoPuzzles
	}

	out := make([]*crossword.Board, 0, len(doc.Puzzles))
	for i, p := range doc.Puzzles {
		b, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("puzzles: puzzle %d (%s): %w", i+1, p.name(), err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (p puzzle) name() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return "untitled"
}

func (p puzzle) build() (*crossword.Board, error) {
	w, h := p.Width, p.Height
	if w == 0 {
		w = crossword.DefaultWidth
	}
	if h == 0 {
		h = crossword.DefaultHeight
	}
	b, err := crossword.NewBoard(w, h)
	if err != nil {
		return nil, err
	}
	b.SetTitle(strings.TrimSpace(p.Title))

	for _, c := range p.Clues {
		q, err := crossword.NewQuestion(strings.ToUpper(strings.TrimSpace(c.Key)), c.Text, strings.TrimSpace(c.Answer))
		if err != nil {
			return nil, fmt.Errorf("clue %q: %w", c.Key, err)
		}
		if err := b.AddQuestion(q, c.X, c.Y); err != nil {
			return nil, fmt.Errorf("clue %s: %w", q.Key(), err)
		}
	}
	return b, nil
}
