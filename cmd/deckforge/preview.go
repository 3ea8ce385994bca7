package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/preview"
)

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve decks as a live browser preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			defer app.Close()

			st, err := app.Store()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = app.Config.Preview.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := preview.NewServer(st, app.Log.WithComponent("preview"))
			app.Log.WithFields(map[string]any{"addr": addr}).Info("preview server listening")
			fmt.Fprintf(cmd.OutOrStdout(), "preview at http://%s/decks/<deck-id> (ctrl+c to stop)\n", addr)
			return srv.Start(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to the configured preview address)")

	return cmd
}
