// Package render produces the static HTML form of a slide. It draws from the
// same resolved values the interactive editor uses and adds nothing of its
// own: no selection chrome, no guides, no handles. Output is deterministic so
// identical input always produces byte-identical markup.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

// Slide renders one document as a self-contained absolutely positioned
// fragment sized to the logical canvas.
func Slide(doc model.Document, ctx resolver.Context) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<div class="slide" style="position:relative;width:%dpx;height:%dpx;overflow:hidden%s">`,
		int(model.CanvasWidth), int(model.CanvasHeight), backgroundCSS(doc.Background)))
	b.WriteString("\n")
	for _, el := range resolver.ResolveAll(doc, ctx.ForSlide(doc)) {
		b.WriteString(element(el))
		b.WriteString("\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// Deck renders a slide sequence as one printable document, each slide on its
// own page.
func Deck(slides []model.Document, ctx resolver.Context) string {
	var b strings.Builder
	for i, doc := range slides {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<div style="page-break-after:always">`)
		b.WriteString("\n")
		b.WriteString(Slide(doc, ctx))
		b.WriteString("\n</div>")
	}
	return b.String()
}

func backgroundCSS(bg model.Background) string {
	var b strings.Builder
	if bg.Color != "" {
		b.WriteString(";background-color:")
		b.WriteString(bg.Color)
	}
	if bg.ImageURL != "" {
		b.WriteString(";background-image:url('")
		b.WriteString(html.EscapeString(bg.ImageURL))
		b.WriteString("');background-size:cover")
	}
	return b.String()
}

// element renders one resolved element. CSS properties are emitted in a
// fixed order: geometry, then typography, then paint.
func element(el resolver.ResolvedElement) string {
	switch el.Variant {
	case model.VariantImage:
		return imageElement(el)
	case model.VariantShape:
		return shapeElement(el)
	default:
		return textElement(el)
	}
}

func geometry(el resolver.ResolvedElement) string {
	return fmt.Sprintf("position:absolute;left:%spx;top:%spx;width:%spx;height:%spx;z-index:%d",
		num(el.Position.X), num(el.Position.Y), num(el.Width), num(el.Height), el.ZIndex)
}

func textElement(el resolver.ResolvedElement) string {
	style := geometry(el) +
		";font-size:" + el.Style.FontSize +
		";font-weight:" + el.Style.FontWeight +
		";font-family:" + el.Style.FontFamily +
		";color:" + el.Style.Color +
		";text-align:" + el.Style.TextAlign +
		";white-space:pre-wrap;overflow-wrap:break-word"
	return fmt.Sprintf(`<div data-element="%s" style="%s">%s</div>`,
		html.EscapeString(el.ID), style, html.EscapeString(el.Content))
}

func imageElement(el resolver.ResolvedElement) string {
	style := geometry(el) +
		";object-fit:" + string(el.Style.ObjectFit) +
		";border-radius:" + el.Style.BorderRadius +
		";opacity:" + num(el.Style.Opacity)
	if el.ImageURL == "" {
		// No source anywhere in the fallback chain: reserve the box so the
		// layout does not shift, but draw nothing.
		return fmt.Sprintf(`<div data-element="%s" style="%s"></div>`,
			html.EscapeString(el.ID), style)
	}
	return fmt.Sprintf(`<img data-element="%s" src="%s" alt="" style="%s">`,
		html.EscapeString(el.ID), html.EscapeString(el.ImageURL), style)
}

func shapeElement(el resolver.ResolvedElement) string {
	style := geometry(el) +
		";background-color:" + el.Style.Fill +
		";border:" + num(el.Style.StrokeWidth) + "px solid " + el.Style.Stroke +
		";opacity:" + num(el.Style.Opacity)
	switch el.Shape {
	case model.ShapeCircle:
		style += ";border-radius:50%"
	case model.ShapeLine:
		style = geometry(el) +
			";background-color:" + el.Style.Stroke +
			";opacity:" + num(el.Style.Opacity)
	default:
		style += ";border-radius:" + el.Style.BorderRadius
	}
	return fmt.Sprintf(`<div data-element="%s" style="%s"></div>`,
		html.EscapeString(el.ID), style)
}

// num formats a float without a trailing ".0" so whole values print as
// integers.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
