package canvas

import (
	"github.com/deckforge/deckforge/internal/model"
)

// DefaultPalette returns the built-in palette definitions. The "auto"
// sentinel on the text and metric heights is set here, at creation time; an
// interactive resize always replaces it with plain numbers.
func DefaultPalette() []Definition {
	return []Definition{
		{
			Name: "Text",
			Prototype: model.Element{
				Variant: model.VariantText,
				Size:    model.Size{Width: model.Units(400), Height: model.Auto},
				Text: &model.TextSpec{
					Config: model.TextConfig{Placeholder: "Add text"},
				},
			},
		},
		{
			Name: "Image",
			Prototype: model.Element{
				Variant: model.VariantImage,
				Size:    model.Size{Width: model.Units(480), Height: model.Units(270)},
				Image: &model.ImageSpec{
					Config: model.ImageConfig{MediaType: model.MediaGraphic, ObjectFit: model.FitContain},
				},
			},
		},
		{
			Name: "Rectangle",
			Prototype: model.Element{
				Variant: model.VariantShape,
				Size:    model.Size{Width: model.Units(200), Height: model.Units(200)},
				Shape:   &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeRectangle}},
			},
		},
		{
			Name: "Circle",
			Prototype: model.Element{
				Variant: model.VariantShape,
				Size:    model.Size{Width: model.Units(200), Height: model.Units(200)},
				Shape:   &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeCircle}},
			},
		},
		{
			Name: "Line",
			Prototype: model.Element{
				Variant: model.VariantShape,
				Size:    model.Size{Width: model.Units(300), Height: model.Units(4)},
				Shape:   &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeLine}},
			},
		},
		{
			Name: "Metric",
			Prototype: model.Element{
				Variant: model.VariantData,
				Size:    model.Size{Width: model.Units(240), Height: model.Auto},
				Data: &model.DataSpec{
					Config: model.DataConfig{Format: model.FormatNumber},
				},
			},
		},
	}
}
