package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
	"github.com/deckforge/deckforge/internal/tui/editor"
)

func newEditCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <deck-id> [slide-id]",
		Short: "Edit a slide on the interactive canvas",
		Args:  cobra.RangeArgs(1, 2),
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
			deckID := args[0]

			deck, err := st.GetDeck(ctx, deckID)
			if err != nil {
				return err
			}

			var doc model.Document
			if len(args) == 2 {
				doc, err = st.GetSlide(ctx, deckID, args[1])
				if err != nil {
					return err
				}
			} else {
				slides, err := st.ListSlides(ctx, deckID)
				if err != nil {
					return err
				}
				if len(slides) == 0 {
					doc = model.Document{ID: uuid.NewString(), Name: "Slide 1", Order: 0}
					if err := st.SaveSlide(ctx, deckID, doc); err != nil {
						return err
					}
				} else {
					doc = slides[0]
				}
			}

			app.Log.WithFields(map[string]any{"deck": deckID, "slide": doc.ID}).Info("opening editor")

			rctx := resolver.Context{Brand: deck.Brand}.ForSlide(doc)
			m := editor.NewModel(&doc, rctx, deckID, st)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			return nil
		},
	}
}
