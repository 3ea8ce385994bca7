// Package resolver turns a stored element plus its ambient brand kit into
// the final set of visual and content values a renderer needs. Both the
// interactive editor and the static HTML renderer call exactly this package;
// neither computes style or content on its own. That single shared chain is
// what keeps the live canvas and the exported document pixel-identical.
package resolver

import (
	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/model"
)

// Context carries the ambient inputs of a resolution pass. The zero value is
// usable: no brand kit, no template defaults, no bound data.
type Context struct {
	Brand brand.Kit

	// TemplateDefaults maps template slot ids to the template's default
	// styling for that slot. Only elements seeded from a template carry a
	// slot id.
	TemplateDefaults map[string]model.StylePatch

	// Data is the business-data record data elements bind into via their
	// dot paths.
	Data map[string]interface{}
}

// ForSlide returns a copy of the context carrying the slide's own template
// defaults snapshot. Slides not seeded from a template leave the context
// unchanged.
func (c Context) ForSlide(doc model.Document) Context {
	if len(doc.TemplateDefaults) > 0 {
		c.TemplateDefaults = doc.TemplateDefaults
	}
	return c
}

// ResolvedStyle is the complete visual value set for one element. Every
// field is populated; renderers never apply defaults of their own.
type ResolvedStyle struct {
	FontSize     string          `json:"fontSize"`
	FontWeight   string          `json:"fontWeight"`
	FontFamily   string          `json:"fontFamily"`
	Color        string          `json:"color"`
	TextAlign    string          `json:"textAlign"`
	Fill         string          `json:"fill"`
	Stroke       string          `json:"stroke"`
	StrokeWidth  float64         `json:"strokeWidth"`
	BorderRadius string          `json:"borderRadius"`
	Opacity      float64         `json:"opacity"`
	ObjectFit    model.ObjectFit `json:"objectFit"`
}

// ResolvedElement is everything a renderer needs to draw one element:
// geometry with "auto" sizes resolved to measured values, the full style
// set, and the final content.
type ResolvedElement struct {
	ID       string          `json:"id"`
	Variant  model.Variant   `json:"variant"`
	Position model.Position  `json:"position"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	ZIndex   int             `json:"zIndex"`
	Style    ResolvedStyle   `json:"style"`
	Content  string          `json:"content"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Shape    model.ShapeKind `json:"shape,omitempty"`
}

// Resolve produces the fully resolved value set for one element. It is a
// total function: it never errors, always producing a value via the
// default-fallback chain. Precedence, later wins:
//
//  1. variant hard defaults
//  2. template default styling for the element's slot
//  3. stored per-element style and config
//  4. brand kit values on brand-bindable fields only
func Resolve(el model.Element, ctx Context) ResolvedElement {
	out := ResolvedElement{
		ID:       el.ID,
		Variant:  el.Variant,
		Position: el.Position,
		ZIndex:   el.ZIndex,
	}

	// 1. Hard defaults.
	style := ResolvedStyle{
		FontSize:     defaultFontSize,
		FontWeight:   defaultFontWeight,
		FontFamily:   defaultFontFamily,
		Color:        defaultTextColor,
		TextAlign:    defaultTextAlign,
		Fill:         defaultShapeFill,
		Stroke:       defaultShapeStroke,
		StrokeWidth:  defaultStrokeWidth,
		BorderRadius: defaultBorderRadius,
		Opacity:      defaultOpacity,
		ObjectFit:    model.FitContain,
	}

	// 2. Template default styling for the slot the element came from.
	if el.Slot != "" {
		if patch, ok := ctx.TemplateDefaults[el.Slot]; ok {
			applyPatch(&style, patch)
		}
	}

	// 3. Stored element values.
	applyStored(&style, el)

	// 4. Brand overrides, bindable fields only. Overwrite, not additive:
	// re-applying a different kit fully replaces the previous kit's effect.
	applyBrand(&style, el.Bind, ctx.Brand)

	out.Style = style
	out.Content, out.ImageURL = resolveContent(el, ctx)
	if el.Shape != nil {
		out.Shape = el.Shape.Config.Kind
		if out.Shape == "" {
			out.Shape = model.ShapeRectangle
		}
	}
	out.Width, out.Height = resolveSize(el, style, out.Content)
	return out
}

// ResolveAll resolves every element of a document in render order.
func ResolveAll(doc model.Document, ctx Context) []ResolvedElement {
	ordered := doc.RenderOrder()
	out := make([]ResolvedElement, len(ordered))
	for i, el := range ordered {
		out[i] = Resolve(el, ctx)
	}
	return out
}

func applyPatch(s *ResolvedStyle, p model.StylePatch) {
	if p.FontSize != "" {
		s.FontSize = p.FontSize
	}
	if p.FontWeight != "" {
		s.FontWeight = p.FontWeight
	}
	if p.FontFamily != "" {
		s.FontFamily = p.FontFamily
	}
	if p.Color != "" {
		s.Color = p.Color
	}
	if p.TextAlign != "" {
		s.TextAlign = p.TextAlign
	}
	if p.Fill != "" {
		s.Fill = p.Fill
	}
	if p.Stroke != "" {
		s.Stroke = p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.BorderRadius != "" {
		s.BorderRadius = p.BorderRadius
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
}

func applyStored(s *ResolvedStyle, el model.Element) {
	switch el.Variant {
	case model.VariantText:
		if el.Text != nil {
			applyTextStyle(s, el.Text.Style)
		}
	case model.VariantData:
		if el.Data != nil {
			applyTextStyle(s, el.Data.Style)
		}
	case model.VariantImage:
		if el.Image != nil {
			if el.Image.Style.BorderRadius != "" {
				s.BorderRadius = el.Image.Style.BorderRadius
			}
			if el.Image.Style.Opacity != nil {
				s.Opacity = *el.Image.Style.Opacity
			}
			if el.Image.Config.ObjectFit != "" {
				s.ObjectFit = el.Image.Config.ObjectFit
			}
		}
	case model.VariantShape:
		if el.Shape != nil {
			if el.Shape.Style.Fill != "" {
				s.Fill = el.Shape.Style.Fill
			}
			if el.Shape.Style.Stroke != "" {
				s.Stroke = el.Shape.Style.Stroke
			}
			if el.Shape.Style.StrokeWidth != nil {
				s.StrokeWidth = *el.Shape.Style.StrokeWidth
			}
		}
	}
}

func applyTextStyle(s *ResolvedStyle, ts model.TextStyle) {
	if ts.FontSize != "" {
		s.FontSize = ts.FontSize
	}
	if ts.FontWeight != "" {
		s.FontWeight = ts.FontWeight
	}
	if ts.FontFamily != "" {
		s.FontFamily = ts.FontFamily
	}
	if ts.Color != "" {
		s.Color = ts.Color
	}
	if ts.TextAlign != "" {
		s.TextAlign = ts.TextAlign
	}
}

func applyBrand(s *ResolvedStyle, bind model.BindSpec, kit brand.Kit) {
	if kit.IsZero() || bind.IsZero() {
		return
	}
	if c := kit.Color(string(bind.Color)); c != "" {
		s.Color = c
	}
	if c := kit.Color(string(bind.Fill)); c != "" {
		s.Fill = c
	}
	if c := kit.Color(string(bind.Stroke)); c != "" {
		s.Stroke = c
	}
	if bind.FontFamily && kit.FontFamily != "" {
		s.FontFamily = kit.FontFamily
	}
}

func resolveContent(el model.Element, ctx Context) (content, imageURL string) {
	switch el.Variant {
	case model.VariantText:
		if el.Text == nil {
			return "", ""
		}
		cfg := el.Text.Config
		switch {
		case cfg.DefaultValue != "":
			content = cfg.DefaultValue
		case cfg.Placeholder != "":
			content = cfg.Placeholder
		default:
			content = cfg.Label
		}
		if cfg.MaxLength > 0 && len([]rune(content)) > cfg.MaxLength {
			content = string([]rune(content)[:cfg.MaxLength])
		}
		return content, ""
	case model.VariantImage:
		if el.Image == nil {
			return "", ""
		}
		if el.Image.Config.URL != "" {
			return "", el.Image.Config.URL
		}
		return "", el.Image.Config.FallbackURL
	case model.VariantData:
		if el.Data == nil {
			return missingValue, ""
		}
		cfg := el.Data.Config
		formatted := missingValue
		if v, ok := lookupPath(ctx.Data, cfg.DataPath); ok {
			formatted = formatValue(v, cfg.Format)
		}
		return cfg.Prefix + formatted + cfg.Suffix, ""
	default:
		return "", ""
	}
}

func resolveSize(el model.Element, style ResolvedStyle, content string) (w, h float64) {
	w = el.Size.Width.Value
	h = el.Size.Height.Value
	if !el.Size.Width.Auto && !el.Size.Height.Auto {
		return w, h
	}
	mw, mh := MeasureText(content, style.FontSize)
	if el.Size.Width.Auto {
		w = mw
	}
	if el.Size.Height.Auto {
		h = mh
	}
	return w, h
}
