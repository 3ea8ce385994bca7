package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	deckerrors "github.com/deckforge/deckforge/pkg/errors"

	"github.com/deckforge/deckforge/internal/templates"
)

func newTemplateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage and apply slide templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(flags),
		newTemplateApplyCmd(flags),
		newTemplatePullCmd(flags),
		newTemplateSaveCmd(flags),
	)

	return cmd
}

func newTemplateListCmd(flags *rootFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed templates",
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

			tpls, err := st.ListTemplates(cmd.Context(), category)
			if err != nil {
				return err
			}
			if len(tpls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no templates installed; fetch a pack with: deckforge template pull <git-url>")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTIER\tKIND")
			for _, t := range tpls {
				kind := "legacy"
				if t.Visual() {
					kind = "visual"
				}
				tier := t.AccessTier
				if tier == "" {
					tier = templates.TierFree
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, tier, kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show templates in this category")

	return cmd
}

func newTemplateApplyCmd(flags *rootFlags) *cobra.Command {
	var contentPairs []string
	var slideID string

	cmd := &cobra.Command{
		Use:   "apply <deck-id> <template-id>",
		Short: "Apply a template to a deck, creating or replacing a slide",
		Args:  cobra.ExactArgs(2),
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
			engine, err := app.Engine()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			deckID, templateID := args[0], args[1]

			deck, err := st.GetDeck(ctx, deckID)
			if err != nil {
				return err
			}

			content := make(map[string]interface{}, len(contentPairs))
			for _, pair := range contentPairs {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("malformed --content %q (want field=value)", pair)
				}
				content[key] = value
			}

			req := templates.ApplyRequest{
				TemplateID: templateID,
				Content:    content,
				Brand:      deck.Brand,
				Tier:       deck.Tier,
			}
			if slideID != "" {
				existing, err := st.GetSlide(ctx, deckID, slideID)
				if err != nil {
					return err
				}
				req.SlideID = existing.ID
				req.SlideOrder = existing.Order
			} else {
				slides, err := st.ListSlides(ctx, deckID)
				if err != nil {
					return err
				}
				req.SlideOrder = len(slides)
			}

			result, err := engine.Apply(ctx, req)
			if err != nil {
				var upgrade *deckerrors.UpgradeRequiredError
				if errors.As(err, &upgrade) {
					return fmt.Errorf("template %s needs the %s tier (deck is %s)",
						upgrade.TemplateID, upgrade.RequiredTier, upgrade.CurrentTier)
				}
				return err
			}

			if err := st.SaveSlide(ctx, deckID, result.Slide); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s: slide %s (%d elements)\n",
				templateID, result.Slide.ID, len(result.Slide.Elements))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&contentPairs, "content", nil, "Content field as field=value (repeatable)")
	cmd.Flags().StringVarP(&slideID, "slide", "s", "", "Replace this slide instead of appending a new one")

	return cmd
}

func newTemplatePullCmd(flags *rootFlags) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "pull <git-url>",
		Short: "Fetch a template pack from a git repository",
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

			ctx := cmd.Context()
			url := args[0]
			dest := filepath.Join(app.Config.PackDir(), packDirName(url))

			app.Log.WithFields(map[string]any{"url": url, "dest": dest}).Info("pulling template pack")
			tpls, err := templates.PullPack(ctx, url, branch, dest)
			if err != nil {
				return err
			}

			for _, t := range tpls {
				if err := st.SaveTemplate(ctx, t); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %d template(s) from %s\n", len(tpls), url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to check out (defaults to the remote HEAD)")

	return cmd
}

func newTemplateSaveCmd(flags *rootFlags) *cobra.Command {
	var id string
	var name string
	var category string

	cmd := &cobra.Command{
		Use:   "save <deck-id> <slide-id>",
		Short: "Save an existing slide as a reusable template",
		Args:  cobra.ExactArgs(2),
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
			doc, err := st.GetSlide(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			if name == "" {
				name = doc.Name
			}
			if name == "" {
				name = "Untitled Template"
			}
			if id == "" {
				id = slugify(name)
			}

			tpl := templates.Derive(id, name, category, doc)
			if err := st.SaveTemplate(ctx, tpl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved template %s (%d elements)\n", tpl.ID, len(tpl.Layout))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Template id (defaults to a slug of the name)")
	cmd.Flags().StringVar(&name, "name", "", "Template name (defaults to the slide name)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Template category")

	return cmd
}

// packDirName derives a stable local directory name for a pack URL.
func packDirName(url string) string {
	base := strings.TrimSuffix(filepath.Base(url), ".git")
	if base == "" || base == "." || base == "/" {
		return "pack"
	}
	return base
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "template"
	}
	return b.String()
}
