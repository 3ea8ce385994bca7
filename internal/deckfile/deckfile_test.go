package deckfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/model"
	apperrors "github.com/deckforge/deckforge/pkg/errors"
)

const sampleDeck = `
name: Seed Pitch
tier: pro
brand:
  primary_color: "#FF5500"
  font_family: Inter
slides:
  - name: Intro
    background:
      color: "#FFFFFF"
    elements:
      - id: title
        variant: text
        position: {x: 160, y: 120}
        size: {width: 800, height: auto}
        z_index: 1
        style:
          font_size: 48px
          font_weight: bold
        config:
          field_id: title
          default_value: Why We Win
  - name: Market
    elements: []
`

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDeck(t *testing.T) {
	f, err := Load(writeDeck(t, sampleDeck))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if f.Name != "Seed Pitch" {
		t.Fatalf("name = %q", f.Name)
	}
	if f.Brand.PrimaryColor != "#FF5500" {
		t.Fatalf("brand primary = %q", f.Brand.PrimaryColor)
	}
	if len(f.Slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(f.Slides))
	}

	intro := f.Slides[0]
	if len(intro.Elements) != 1 {
		t.Fatalf("intro elements = %d", len(intro.Elements))
	}
	el := intro.Elements[0]
	if el.Variant != model.VariantText || el.Text == nil {
		t.Fatalf("element variant = %q", el.Variant)
	}
	if el.Text.Style.FontSize != "48px" {
		t.Fatalf("font size = %q", el.Text.Style.FontSize)
	}
	if !el.Size.Height.Auto {
		t.Fatal("height should be auto")
	}
}

func TestLoadAssignsIDsAndOrder(t *testing.T) {
	f, err := Load(writeDeck(t, sampleDeck))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, s := range f.Slides {
		if s.ID == "" {
			t.Fatalf("slide %d has no id", i)
		}
		if s.Order != i {
			t.Fatalf("slide %d order = %d", i, s.Order)
		}
	}
}

func TestLoadRejectsBadBrandColor(t *testing.T) {
	_, err := Load(writeDeck(t, "name: X\nbrand:\n  primary_color: red\n"))
	if err == nil {
		t.Fatal("want validation error")
	}
	if !apperrors.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestLoadRejectsNamelessDeck(t *testing.T) {
	_, err := Load(writeDeck(t, "slides: []\n"))
	if !apperrors.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := &File{
		Name:  "Round Trip",
		Brand: brand.Kit{PrimaryColor: "#123ABC"},
		Slides: []model.Document{{
			ID:   "s1",
			Name: "Only",
			Elements: []model.Element{{
				ID:       "e1",
				Variant:  model.VariantShape,
				Position: model.Position{X: 40, Y: 40},
				Size:     model.Size{Width: model.Units(200), Height: model.Units(100)},
				Shape:    &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeCircle}},
			}},
		}},
	}

	path := filepath.Join(t.TempDir(), "out", "deck.yaml")
	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "Round Trip" {
		t.Fatalf("name = %q", loaded.Name)
	}
	got := loaded.Slides[0].Elements[0]
	if got.Shape == nil || got.Shape.Config.Kind != model.ShapeCircle {
		t.Fatalf("shape kind lost in round trip: %+v", got)
	}
}
