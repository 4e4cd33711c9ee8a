package cli

import (
	"github.com/spf13/cobra"

	"github.com/TLohan/crossword-app/internal/httpserver"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored crosswords as read-only JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			st, hist, err := a.open()
			if err != nil {
				return err
			}
			defer st.Close()

			opts := []httpserver.Option{httpserver.WithDailySalt(a.cfg.DailySalt)}
			if hist != nil {
				opts = append(opts, httpserver.WithHistory(hist))
			}
			return httpserver.New(st, opts...).Start(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", a.cfg.HTTPAddr, "listen address")
	return cmd
}
