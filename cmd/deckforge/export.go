package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/deckfile"
	"github.com/deckforge/deckforge/internal/export"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/render"
	"github.com/deckforge/deckforge/internal/resolver"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <deck-id>",
		Short: "Export a deck",
		Long: `Export a deck as self-contained HTML, as a YAML deck file, or as a
PDF or PPTX document via the configured conversion service.`,
		Args: cobra.ExactArgs(1),
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
			slides, err := st.ListSlides(ctx, deckID)
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				if output == "" {
					output = "deck.yaml"
				}
				f := &deckfile.File{
					Name:   deck.Name,
					Tier:   string(deck.Tier),
					Brand:  deck.Brand,
					Slides: slides,
				}
				if err := deckfile.Save(output, f); err != nil {
					return err
				}

			case "html":
				if output == "" {
					output = "deck.html"
				}
				html := render.Deck(slides, resolver.Context{Brand: deck.Brand})
				if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
					return err
				}

			case "pdf", "pptx":
				if app.Config.ExportService.URL == "" {
					return fmt.Errorf("no export service configured; set export_service.url")
				}
				client := export.NewClient(app.Config.ExportService.URL, app.Log.WithComponent("export"))
				result, err := client.Export(ctx, export.Request{
					DeckID:     deck.ID,
					DeckName:   deck.Name,
					Format:     export.Format(format),
					HTML:       render.Deck(slides, resolver.Context{Brand: deck.Brand}),
					PageWidth:  int(model.CanvasWidth),
					PageHeight: int(model.CanvasHeight),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s: %s\n", format, result.URL)
				return nil

			default:
				return fmt.Errorf("unknown format %q (want html, yaml, pdf, or pptx)", format)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html, yaml, pdf, pptx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path for html and yaml formats")

	return cmd
}
