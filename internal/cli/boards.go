package cli

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TLohan/crossword-app/internal/crossword"
	"github.com/TLohan/crossword-app/internal/puzzles"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored crosswords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			boards, err := a.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(boards) == 0 {
				fmt.Fprintln(out, "(no crosswords found)")
				return nil
			}
			for i, b := range boards {
				fmt.Fprintf(out, "%d  %s  %dx%d  %d clues  %s\n",
					i, b.Name(), b.Width(), b.Height(), len(b.Questions()), status(b))
			}
			return nil
		},
	}
}

func status(b *crossword.Board) string {
	switch {
	case !b.Played():
		return "new"
	case b.IsComplete():
		return "finished"
	}
	return "in progress"
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import crosswords from a YAML file (the bundled samples when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				added []*crossword.Board
				err   error
			)
			source := "samples"
			if len(args) == 1 {
				source = args[0]
				added, err = puzzles.LoadFile(source)
			} else {
				added, err = puzzles.Embedded()
			}
			if err != nil {
				return err
			}

			st, _, err := a.open()
			if err != nil {
				return err
			}
			defer st.Close()

			boards, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Save(cmd.Context(), append(boards, added...)); err != nil {
				return err
			}
			log.Info().Str("source", source).Int("count", len(added)).Msg("crosswords imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d crossword(s) from %s.\n", len(added), source)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var answers bool

	cmd := &cobra.Command{
		Use:   "show <n>",
		Short: "Print a stored crossword and its clues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("crossword number must be an integer, got %q", args[0])
			}
			boards, err := a.load(cmd)
			if err != nil {
				return err
			}
			if n < 0 || n >= len(boards) {
				return fmt.Errorf("no crossword %d (have %d)", n, len(boards))
			}

			b := boards[n]
			r := a.renderer(cmd.OutOrStdout())
			r.Info("%s", b.Name())
			if answers {
				r.Answers(b)
			} else {
				r.Guesses(b, false)
			}
			r.Questions(b)
			return nil
		},
	}

	cmd.Flags().BoolVar(&answers, "answers", false, "show the solution instead of the current guesses")
	return cmd
}

func (a *app) load(cmd *cobra.Command) ([]*crossword.Board, error) {
	st, _, err := a.open()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Load(cmd.Context())
}
