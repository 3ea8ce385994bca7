package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/brand"
)

func newBrandCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Manage a deck's brand kit",
	}

	cmd.AddCommand(
		newBrandShowCmd(flags),
		newBrandSetCmd(flags),
	)

	return cmd
}

func newBrandShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck-id>",
		Short: "Show a deck's brand kit",
		Args:  cobra.ExactArgs(1),
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

			deck, err := st.GetDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if deck.Brand.IsZero() {
				fmt.Fprintf(out, "deck %s has no brand kit; set one with: deckforge brand set %s --primary '#1A73E8'\n", deck.Name, deck.ID)
				return nil
			}
			fmt.Fprintf(out, "primary:   %s\n", orDash(deck.Brand.PrimaryColor))
			fmt.Fprintf(out, "secondary: %s\n", orDash(deck.Brand.SecondaryColor))
			fmt.Fprintf(out, "accent:    %s\n", orDash(deck.Brand.AccentColor))
			fmt.Fprintf(out, "font:      %s\n", orDash(deck.Brand.FontFamily))
			fmt.Fprintf(out, "logo:      %s\n", orDash(deck.Brand.LogoURL))
			return nil
		},
	}
}

func newBrandSetCmd(flags *rootFlags) *cobra.Command {
	var primary, secondary, accent, font, logo string

	cmd := &cobra.Command{
		Use:   "set <deck-id>",
		Short: "Set brand kit fields on a deck",
		Long: `Set brand kit fields on a deck. Only the flags you pass change; the
rest of the kit is left as is. Colors are 6-digit hex, e.g. '#1A73E8'.`,
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
			deck, err := st.GetDeck(ctx, args[0])
			if err != nil {
				return err
			}

			for _, c := range []struct {
				flag  string
				value string
			}{
				{"primary", primary},
				{"secondary", secondary},
				{"accent", accent},
			} {
				if c.value != "" && !brand.ValidHexColor(c.value) {
					return fmt.Errorf("--%s: %q is not a hex color (want '#RRGGBB')", c.flag, c.value)
				}
			}

			if primary != "" {
				deck.Brand.PrimaryColor = primary
			}
			if secondary != "" {
				deck.Brand.SecondaryColor = secondary
			}
			if accent != "" {
				deck.Brand.AccentColor = accent
			}
			if font != "" {
				deck.Brand.FontFamily = font
			}
			if logo != "" {
				deck.Brand.LogoURL = logo
			}

			if err := st.SaveDeck(ctx, deck); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated brand kit for %s\n", deck.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "Primary brand color (#RRGGBB)")
	cmd.Flags().StringVar(&secondary, "secondary", "", "Secondary brand color (#RRGGBB)")
	cmd.Flags().StringVar(&accent, "accent", "", "Accent brand color (#RRGGBB)")
	cmd.Flags().StringVar(&font, "font", "", "Brand font family")
	cmd.Flags().StringVar(&logo, "logo", "", "Brand logo URL")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
