package model

import (
	"math"
	"sort"

	deckerrors "github.com/deckforge/deckforge/pkg/errors"
)

// Logical canvas dimensions in design units. Zoom never changes them; it is
// purely a view transform.
const (
	CanvasWidth  = 1920.0
	CanvasHeight = 1080.0
)

// Background is a slide's backdrop: a solid color, an image, or both
// (image over color).
type Background struct {
	Color    string `yaml:"color,omitempty" json:"color,omitempty"`
	ImageURL string `yaml:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Document is one slide: an ordered-by-zIndex collection of elements on the
// fixed logical canvas.
type Document struct {
	ID         string     `yaml:"id" json:"id"`
	Name       string     `yaml:"name,omitempty" json:"name,omitempty"`
	Order      int        `yaml:"order" json:"order"`
	Background Background `yaml:"background,omitempty" json:"background,omitempty"`
	Elements   []Element  `yaml:"elements" json:"elements"`

	// TemplateID names the template this slide was seeded from, empty for
	// slides built by hand. TemplateDefaults is the snapshot of that
	// template's per-slot default styling taken at application time, so the
	// slide resolves the same way even after the template pack changes or
	// is removed.
	TemplateID       string                `yaml:"template_id,omitempty" json:"templateId,omitempty"`
	TemplateDefaults map[string]StylePatch `yaml:"template_defaults,omitempty" json:"templateDefaults,omitempty"`
}

// RenderOrder returns the elements sorted ascending by z-index. The sort is
// stable: duplicate z-indexes are legal and resolve by insertion order. The
// slice is recomputed on every call, never cached.
func (d Document) RenderOrder() []Element {
	ordered := make([]Element, len(d.Elements))
	copy(ordered, d.Elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})
	return ordered
}

// MaxZIndex returns the highest z-index in the document, or 0 when empty.
func (d Document) MaxZIndex() int {
	max := 0
	for i, el := range d.Elements {
		if i == 0 || el.ZIndex > max {
			max = el.ZIndex
		}
	}
	return max
}

// Find returns the index of the element with the given id, or -1.
func (d Document) Find(id string) int {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Elements = make([]Element, len(d.Elements))
	for i, el := range d.Elements {
		out.Elements[i] = el.Clone()
	}
	if d.TemplateDefaults != nil {
		out.TemplateDefaults = make(map[string]StylePatch, len(d.TemplateDefaults))
		for slot, patch := range d.TemplateDefaults {
			out.TemplateDefaults[slot] = patch
		}
	}
	return out
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Text != nil {
		spec := *e.Text
		out.Text = &spec
	}
	if e.Image != nil {
		spec := *e.Image
		spec.Config.Tags = append([]string(nil), e.Image.Config.Tags...)
		if e.Image.Style.Opacity != nil {
			o := *e.Image.Style.Opacity
			spec.Style.Opacity = &o
		}
		out.Image = &spec
	}
	if e.Shape != nil {
		spec := *e.Shape
		if e.Shape.Style.StrokeWidth != nil {
			w := *e.Shape.Style.StrokeWidth
			spec.Style.StrokeWidth = &w
		}
		out.Shape = &spec
	}
	if e.Data != nil {
		spec := *e.Data
		out.Data = &spec
	}
	return out
}

// Validate ensures the element satisfies all structural invariants. It runs
// before any document mutation so a malformed payload never lands in a slide.
func (e Element) Validate() error {
	if !e.Variant.Valid() {
		return deckerrors.NewValidationError("variant", "unknown variant", nil)
	}
	if _, _, err := e.styleConfig(); err != nil {
		return deckerrors.NewValidationError("variant", err.Error(), nil)
	}
	if math.IsNaN(e.Position.X) || math.IsNaN(e.Position.Y) || math.IsInf(e.Position.X, 0) || math.IsInf(e.Position.Y, 0) {
		return deckerrors.NewValidationError("position", "coordinates must be finite", nil)
	}
	if err := validateDimension("size.width", e.Size.Width, e.Variant); err != nil {
		return err
	}
	if err := validateDimension("size.height", e.Size.Height, e.Variant); err != nil {
		return err
	}
	if e.Image != nil {
		if mt := e.Image.Config.MediaType; mt != "" && !mt.Valid() {
			return deckerrors.NewValidationError("config.media_type", "unknown media type", nil)
		}
		switch e.Image.Config.ObjectFit {
		case "", FitContain, FitCover, FitFill:
		default:
			return deckerrors.NewValidationError("config.object_fit", "unknown object fit", nil)
		}
	}
	if e.Shape != nil {
		switch e.Shape.Config.Kind {
		case "", ShapeRectangle, ShapeCircle, ShapeLine:
		default:
			return deckerrors.NewValidationError("config.kind", "unknown shape kind", nil)
		}
	}
	if e.Data != nil {
		switch e.Data.Config.Format {
		case "", FormatText, FormatNumber, FormatCurrency, FormatPercentage:
		default:
			return deckerrors.NewValidationError("config.format", "unknown data format", nil)
		}
	}
	return nil
}

func validateDimension(field string, d Dimension, v Variant) error {
	if d.Auto {
		if v != VariantText && v != VariantData {
			return deckerrors.NewValidationError(field, "auto sizing is only valid for text and data elements", nil)
		}
		return nil
	}
	if d.Value <= 0 {
		return deckerrors.NewValidationError(field, "must be a positive number or auto", nil)
	}
	return nil
}

// StylePatch is a partial set of style values. Empty strings and nil numerics
// mean "leave unchanged". Templates use it for per-slot default styling; the
// update operation uses it for partial style edits. Patches carry style
// fields only; content config (urls, object fit, bindings) flows through the
// variant configs.
type StylePatch struct {
	FontSize     string   `yaml:"font_size,omitempty" json:"fontSize,omitempty"`
	FontWeight   string   `yaml:"font_weight,omitempty" json:"fontWeight,omitempty"`
	FontFamily   string   `yaml:"font_family,omitempty" json:"fontFamily,omitempty"`
	Color        string   `yaml:"color,omitempty" json:"color,omitempty"`
	TextAlign    string   `yaml:"text_align,omitempty" json:"textAlign,omitempty"`
	Fill         string   `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke       string   `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	StrokeWidth  *float64 `yaml:"stroke_width,omitempty" json:"strokeWidth,omitempty"`
	BorderRadius string   `yaml:"border_radius,omitempty" json:"borderRadius,omitempty"`
	Opacity      *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p StylePatch) IsZero() bool {
	return p == StylePatch{}
}
