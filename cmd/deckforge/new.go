package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/deckfile"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/store"
	"github.com/deckforge/deckforge/internal/templates"
)

func newNewCmd(flags *rootFlags) *cobra.Command {
	var fromPath string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a deck",
		Long:  `Create a deck in the local store, either empty or imported from a deck file.`,
		Args:  cobra.MaximumNArgs(1),
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
			ctx := cmd.Context()

			deck := store.Deck{
				ID:   uuid.NewString(),
				Tier: templates.AccessTier(app.Config.Tier),
			}
			if len(args) == 1 {
				deck.Name = args[0]
			}

			var slides []model.Document
			if fromPath != "" {
				f, err := deckfile.Load(fromPath)
				if err != nil {
					return err
				}
				if deck.Name == "" {
					deck.Name = f.Name
				}
				if f.Tier != "" {
					deck.Tier = templates.AccessTier(f.Tier)
				}
				deck.Brand = f.Brand
				slides = f.Slides
			} else {
				if deck.Name == "" {
					return fmt.Errorf("a deck name or --from file is required")
				}
				slides = []model.Document{{ID: uuid.NewString(), Name: "Slide 1", Order: 0}}
			}

			if err := st.SaveDeck(ctx, deck); err != nil {
				return err
			}
			for _, doc := range slides {
				if err := st.SaveSlide(ctx, deck.ID, doc); err != nil {
					return err
				}
			}

			app.Log.WithFields(map[string]any{"deck": deck.ID, "slides": len(slides)}).Info("deck created")
			fmt.Fprintf(cmd.OutOrStdout(), "created deck %s (%s) with %d slide(s)\n", deck.Name, deck.ID, len(slides))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromPath, "from", "", "Import slides from a deck file")

	return cmd
}
