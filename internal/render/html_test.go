package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/canvas"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

func sampleSlide() model.Document {
	return model.Document{
		ID:         "s1",
		Name:       "Intro",
		Background: model.Background{Color: "#FFFFFF"},
		Elements: []model.Element{
			{
				ID:       "shape1",
				Variant:  model.VariantShape,
				Position: model.Position{X: 0, Y: 0},
				Size:     model.Size{Width: model.Units(1920), Height: model.Units(200)},
				ZIndex:   1,
				Shape:    &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeRectangle}},
			},
			{
				ID:       "title",
				Variant:  model.VariantText,
				Position: model.Position{X: 160, Y: 60},
				Size:     model.Size{Width: model.Units(800), Height: model.Units(90)},
				ZIndex:   2,
				Bind:     model.BindSpec{Color: model.BrandPrimary},
				Text: &model.TextSpec{
					Style:  model.TextStyle{FontSize: "48px", FontWeight: "bold"},
					Config: model.TextConfig{FieldID: "title", DefaultValue: "Series A Pitch"},
				},
			},
		},
	}
}

func TestSlideIsDeterministic(t *testing.T) {
	doc := sampleSlide()
	ctx := resolver.Context{Brand: brand.Kit{PrimaryColor: "#FF5500"}}

	first := Slide(doc, ctx)
	second := Slide(doc, ctx)
	if first != second {
		t.Fatal("identical input produced different markup")
	}
}

func TestSlideUsesResolvedValues(t *testing.T) {
	doc := sampleSlide()
	ctx := resolver.Context{Brand: brand.Kit{PrimaryColor: "#FF5500"}}

	out := Slide(doc, ctx)

	resolved := resolver.ResolveAll(doc, ctx)
	title := resolved[1]
	if title.Style.Color != "#FF5500" {
		t.Fatalf("resolved color = %q, want brand primary", title.Style.Color)
	}
	if !strings.Contains(out, "color:#FF5500") {
		t.Fatal("markup does not carry the resolved brand color")
	}
	if !strings.Contains(out, "font-size:48px") {
		t.Fatal("markup does not carry the stored font size")
	}
	if !strings.Contains(out, ">Series A Pitch<") {
		t.Fatal("markup does not carry the resolved content")
	}
}

func TestSlideRespectsRenderOrder(t *testing.T) {
	doc := sampleSlide()
	out := Slide(doc, resolver.Context{})

	shapeAt := strings.Index(out, `data-element="shape1"`)
	titleAt := strings.Index(out, `data-element="title"`)
	if shapeAt < 0 || titleAt < 0 {
		t.Fatal("expected both elements in markup")
	}
	if shapeAt > titleAt {
		t.Fatal("lower z-index element must be emitted first")
	}
}

func TestSlideEscapesContent(t *testing.T) {
	doc := model.Document{ID: "s1", Elements: []model.Element{{
		ID:      "e1",
		Variant: model.VariantText,
		Size:    model.Size{Width: model.Units(200), Height: model.Units(40)},
		Text:    &model.TextSpec{Config: model.TextConfig{DefaultValue: `<script>alert("x")</script>`}},
	}}}

	out := Slide(doc, resolver.Context{})
	if strings.Contains(out, "<script>") {
		t.Fatal("content must be HTML-escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatal("escaped content missing from markup")
	}
}

func TestImageWithoutSourceReservesBox(t *testing.T) {
	doc := model.Document{ID: "s1", Elements: []model.Element{{
		ID:      "img1",
		Variant: model.VariantImage,
		Size:    model.Size{Width: model.Units(480), Height: model.Units(270)},
		Image:   &model.ImageSpec{Config: model.ImageConfig{FieldID: "hero"}},
	}}}

	out := Slide(doc, resolver.Context{})
	if strings.Contains(out, "<img") {
		t.Fatal("sourceless image must not emit an img tag")
	}
	if !strings.Contains(out, `data-element="img1"`) {
		t.Fatal("sourceless image must still reserve its box")
	}
}

func TestCircleAndLineShapes(t *testing.T) {
	doc := model.Document{ID: "s1", Elements: []model.Element{
		{
			ID: "c1", Variant: model.VariantShape, ZIndex: 1,
			Size:  model.Size{Width: model.Units(200), Height: model.Units(200)},
			Shape: &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeCircle}},
		},
		{
			ID: "l1", Variant: model.VariantShape, ZIndex: 2,
			Size:  model.Size{Width: model.Units(300), Height: model.Units(4)},
			Shape: &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeLine}},
		},
	}}

	out := Slide(doc, resolver.Context{})
	if !strings.Contains(out, "border-radius:50%") {
		t.Fatal("circle must render with full border radius")
	}
	if strings.Count(out, "border:") != 1 {
		t.Fatal("line must not carry a border, circle must")
	}
}

func TestDeckInsertsPageBreaks(t *testing.T) {
	slides := []model.Document{
		{ID: "s1", Name: "One"},
		{ID: "s2", Name: "Two"},
	}

	out := Deck(slides, resolver.Context{})
	if strings.Count(out, "page-break-after:always") != 2 {
		t.Fatalf("want one page break wrapper per slide, got %d", strings.Count(out, "page-break-after:always"))
	}
}

func TestSlideCarriesNoEditorChrome(t *testing.T) {
	out := Slide(sampleSlide(), resolver.Context{})
	for _, forbidden := range []string{"selected", "handle", "guide", "grid"} {
		if strings.Contains(out, forbidden) {
			t.Fatalf("static markup must not contain editor decoration %q", forbidden)
		}
	}
}

// templatedSlide mimics a slide just seeded by the template engine: slotted
// elements plus the defaults snapshot recorded on the document.
func templatedSlide() model.Document {
	return model.Document{
		ID:         "s2",
		Name:       "Traction",
		TemplateID: "traction_v1",
		TemplateDefaults: map[string]model.StylePatch{
			"headline": {Color: "#1A1A2E", FontWeight: "bold"},
		},
		Elements: []model.Element{
			{
				ID:       "headline",
				Variant:  model.VariantText,
				Position: model.Position{X: 160, Y: 100},
				Size:     model.Size{Width: model.Units(1600), Height: model.Auto},
				ZIndex:   1,
				Slot:     "headline",
				Bind:     model.BindSpec{FontFamily: true},
				Text: &model.TextSpec{
					Config: model.TextConfig{FieldID: "headline", DefaultValue: "500K users"},
				},
			},
			{
				ID:       "arr",
				Variant:  model.VariantData,
				Position: model.Position{X: 160, Y: 400},
				Size:     model.Size{Width: model.Units(400), Height: model.Units(80)},
				ZIndex:   2,
				Data: &model.DataSpec{
					Config: model.DataConfig{DataPath: "metrics.arr", Format: model.FormatCurrency},
				},
			},
			{
				ID:       "logo",
				Variant:  model.VariantImage,
				Position: model.Position{X: 1600, Y: 60},
				Size:     model.Size{Width: model.Units(200), Height: model.Units(200)},
				ZIndex:   3,
				Image: &model.ImageSpec{
					Config: model.ImageConfig{FallbackURL: "https://cdn.example/logo.png"},
				},
			},
		},
	}
}

func TestSlideAppliesTemplateDefaultsSnapshot(t *testing.T) {
	doc := templatedSlide()

	out := Slide(doc, resolver.Context{})

	if !strings.Contains(out, "color:#1A1A2E") {
		t.Fatal("markup does not carry the slot's template default color")
	}
	if !strings.Contains(out, "font-weight:bold") {
		t.Fatal("markup does not carry the slot's template default weight")
	}
}

// Both renderers must consume the same resolved stream: resolving a fixture
// deck through the editor's controller context and through the static path
// yields byte-identical values.
func TestRendererParityOnResolvedValues(t *testing.T) {
	base := resolver.Context{
		Brand: brand.Kit{PrimaryColor: "#FF5500", FontFamily: "Inter"},
		Data:  map[string]interface{}{"metrics": map[string]interface{}{"arr": 1250000.0}},
	}

	for _, fixture := range []model.Document{sampleSlide(), templatedSlide()} {
		doc := fixture

		ctrl := canvas.NewController(&doc)
		ctrl.SetResolveContext(base.ForSlide(doc))
		interactive := resolver.ResolveAll(*ctrl.Document(), ctrl.ResolveContext())

		static := resolver.ResolveAll(fixture, base.ForSlide(fixture))

		got, err := json.Marshal(interactive)
		if err != nil {
			t.Fatal(err)
		}
		want, err := json.Marshal(static)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("slide %s: resolved streams diverge\neditor: %s\nstatic: %s", doc.ID, got, want)
		}
	}
}
