package model

import (
	"github.com/google/uuid"
)

// All document mutation goes through the operations in this file. Operations
// referencing a missing element id are silent no-ops so UI race conditions
// (delete-then-drag) never crash an editing session.

// Offset applied to a duplicated element so it does not cover its source.
const duplicateOffset = 24.0

// CreateElement validates el, assigns an id when absent, and appends it to
// the document. A zero z-index is replaced with max+1 so new elements render
// on top.
func (d *Document) CreateElement(el Element) (Element, error) {
	if err := el.Validate(); err != nil {
		return Element{}, err
	}
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	if el.ZIndex == 0 && len(d.Elements) > 0 {
		el.ZIndex = d.MaxZIndex() + 1
	}
	d.Elements = append(d.Elements, el)
	return el, nil
}

// ElementPatch is a partial update. Nil fields leave the element unchanged.
// A config pointer only applies when it matches the element's variant.
type ElementPatch struct {
	Position *Position
	Width    *Dimension
	Height   *Dimension
	Style    *StylePatch
	Text     *TextConfig
	Image    *ImageConfig
	Shape    *ShapeConfig
	Data     *DataConfig
}

// UpdateElement applies a partial update to the element with the given id.
// Returns false (and changes nothing) when the id does not exist.
func (d *Document) UpdateElement(id string, patch ElementPatch) bool {
	i := d.Find(id)
	if i < 0 {
		return false
	}
	el := &d.Elements[i]

	if patch.Position != nil {
		el.Position = *patch.Position
	}
	if patch.Width != nil {
		el.Size.Width = *patch.Width
	}
	if patch.Height != nil {
		el.Size.Height = *patch.Height
	}
	if patch.Style != nil {
		el.ApplyStylePatch(*patch.Style)
	}

	switch el.Variant {
	case VariantText:
		if patch.Text != nil {
			el.Text.Config = *patch.Text
		}
	case VariantImage:
		if patch.Image != nil {
			cfg := *patch.Image
			cfg.Tags = append([]string(nil), patch.Image.Tags...)
			el.Image.Config = cfg
		}
	case VariantShape:
		if patch.Shape != nil {
			el.Shape.Config = *patch.Shape
		}
	case VariantData:
		if patch.Data != nil {
			el.Data.Config = *patch.Data
		}
	}
	return true
}

// ApplyStylePatch folds non-empty patch values into the variant's stored
// style. Fields that do not apply to the variant are ignored.
func (e *Element) ApplyStylePatch(p StylePatch) {
	switch e.Variant {
	case VariantText:
		applyTextPatch(&e.Text.Style, p)
	case VariantData:
		applyTextPatch(&e.Data.Style, p)
	case VariantImage:
		if p.BorderRadius != "" {
			e.Image.Style.BorderRadius = p.BorderRadius
		}
		if p.Opacity != nil {
			o := *p.Opacity
			e.Image.Style.Opacity = &o
		}
	case VariantShape:
		if p.Fill != "" {
			e.Shape.Style.Fill = p.Fill
		}
		if p.Stroke != "" {
			e.Shape.Style.Stroke = p.Stroke
		}
		if p.StrokeWidth != nil {
			w := *p.StrokeWidth
			e.Shape.Style.StrokeWidth = &w
		}
	}
}

func applyTextPatch(s *TextStyle, p StylePatch) {
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
}

// DeleteElement removes the element with the given id. No-op when missing.
func (d *Document) DeleteElement(id string) {
	i := d.Find(id)
	if i < 0 {
		return
	}
	d.Elements = append(d.Elements[:i], d.Elements[i+1:]...)
}

// DuplicateElement clones the element with the given id under a fresh id,
// offsets its position slightly, and assigns z-index max+1 so the duplicate
// always renders on top regardless of the source's layer. Returns false when
// the id does not exist.
func (d *Document) DuplicateElement(id string) (Element, bool) {
	i := d.Find(id)
	if i < 0 {
		return Element{}, false
	}
	dup := d.Elements[i].Clone()
	dup.ID = uuid.NewString()
	dup.Position.X = clamp(dup.Position.X+duplicateOffset, 0, CanvasWidth)
	dup.Position.Y = clamp(dup.Position.Y+duplicateOffset, 0, CanvasHeight)
	dup.ZIndex = d.MaxZIndex() + 1
	d.Elements = append(d.Elements, dup)
	return dup, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
