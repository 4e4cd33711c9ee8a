package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TLohan/crossword-app/internal/config"
	"github.com/TLohan/crossword-app/internal/history"
	"github.com/TLohan/crossword-app/internal/render"
	"github.com/TLohan/crossword-app/internal/session"
	"github.com/TLohan/crossword-app/internal/store"
)

func Execute(cfg config.Config) {
	cmd := newRootCmd(cfg)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the resolved configuration into every subcommand.
type app struct {
	cfg config.Config
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}
	var debug bool

	cmd := &cobra.Command{
		Use:          "crossword",
		Short:        "Play, create and edit crosswords in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return a.cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfg.Store, "store", cfg.Store, "storage backend: file, sqlite or memory")
	f.StringVar(&a.cfg.File, "file", cfg.File, "crossword file for the file store")
	f.StringVar(&a.cfg.DB, "db", cfg.DB, "database path for the sqlite store")
	f.BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		a.listCmd(),
		a.importCmd(),
		a.showCmd(),
		a.serveCmd(),
	)
	return cmd
}

// open returns the configured store and, for sqlite, the play history
// sharing its database.
func (a *app) open() (store.Store, *history.Store, error) {
	st, err := store.Open(a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	var hist *history.Store
	if sq, ok := st.(*store.SQLiteStore); ok {
		hist = history.NewStore(sq.DB())
	}
	return st, hist, nil
}

func (a *app) renderer(out io.Writer) *render.Renderer {
	if a.cfg.NoColor {
		return render.New(out, render.WithoutColor())
	}
	return render.New(out)
}

func (a *app) play(ctx context.Context, in io.Reader, out io.Writer) error {
	st, hist, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close store")
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []session.Option{session.WithDailySalt(a.cfg.DailySalt)}
	if hist != nil {
		opts = append(opts, session.WithHistory(hist))
	}
	if !bool(a.cfg.NoColor) && isTerminal(out) {
		opts = append(opts, session.WithClearScreen(func() {
			_, _ = io.WriteString(out, "\033[H\033[2J")
		}))
	}
	return session.New(st, in, a.renderer(out), opts...).Run(ctx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
