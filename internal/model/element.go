package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Variant identifies the kind of a slide element. The set is closed: every
// switch over a Variant must handle all four values.
type Variant string

const (
	VariantText  Variant = "text"
	VariantImage Variant = "image"
	VariantShape Variant = "shape"
	VariantData  Variant = "data"
)

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantText, VariantImage, VariantShape, VariantData:
		return true
	default:
		return false
	}
}

// Position locates an element on the logical canvas, top-left origin,
// in logical canvas units.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Dimension is either a positive number of logical units or the "auto"
// sentinel for content-driven sizing.
type Dimension struct {
	Auto  bool
	Value float64
}

// Auto is the content-driven sizing sentinel, valid for text and data
// variants only.
var Auto = Dimension{Auto: true}

// Units constructs a fixed dimension.
func Units(v float64) Dimension {
	return Dimension{Value: v}
}

func (d Dimension) String() string {
	if d.Auto {
		return "auto"
	}
	return fmt.Sprintf("%g", d.Value)
}

// MarshalYAML encodes the dimension as the literal "auto" or a number.
func (d Dimension) MarshalYAML() (interface{}, error) {
	if d.Auto {
		return "auto", nil
	}
	return d.Value, nil
}

// UnmarshalYAML decodes either the "auto" sentinel or a number.
func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "auto" {
		*d = Dimension{Auto: true}
		return nil
	}
	var v float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	*d = Dimension{Value: v}
	return nil
}

// MarshalJSON encodes the dimension as the literal "auto" or a number.
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON decodes either the "auto" sentinel or a number.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("invalid dimension %q", s)
		}
		*d = Dimension{Auto: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Dimension{Value: v}
	return nil
}

// Size holds element dimensions in logical canvas units.
type Size struct {
	Width  Dimension `yaml:"width" json:"width"`
	Height Dimension `yaml:"height" json:"height"`
}

// BrandRole names the brand-kit color a bindable style field draws from.
type BrandRole string

const (
	BrandPrimary   BrandRole = "primary"
	BrandSecondary BrandRole = "secondary"
	BrandAccent    BrandRole = "accent"
)

// BindSpec marks which style fields a brand kit is allowed to overwrite.
// Structural fields (position, size, z-index) are never bindable.
type BindSpec struct {
	Color      BrandRole `yaml:"color,omitempty" json:"color,omitempty"`
	Fill       BrandRole `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke     BrandRole `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	FontFamily bool      `yaml:"font_family,omitempty" json:"fontFamily,omitempty"`
}

// IsZero reports whether no field is bound.
func (b BindSpec) IsZero() bool {
	return b.Color == "" && b.Fill == "" && b.Stroke == "" && !b.FontFamily
}

// Element is one positioned, styled, content-bearing unit on a slide. It is a
// tagged union: exactly one of Text/Image/Shape/Data is populated, matching
// Variant.
type Element struct {
	ID       string   `yaml:"id" json:"id"`
	Variant  Variant  `yaml:"variant" json:"variant"`
	Position Position `yaml:"position" json:"position"`
	Size     Size     `yaml:"size" json:"size"`
	ZIndex   int      `yaml:"z_index" json:"zIndex"`

	// Slot links the element back to the template slot it was seeded from,
	// empty for elements created by hand.
	Slot string   `yaml:"slot,omitempty" json:"slot,omitempty"`
	Bind BindSpec `yaml:"bind,omitempty" json:"bind,omitempty"`

	Text  *TextSpec  `yaml:"-" json:"-"`
	Image *ImageSpec `yaml:"-" json:"-"`
	Shape *ShapeSpec `yaml:"-" json:"-"`
	Data  *DataSpec  `yaml:"-" json:"-"`
}

// TextSpec carries the visual style and content binding of a text element.
type TextSpec struct {
	Style  TextStyle  `yaml:"style,omitempty" json:"style,omitempty"`
	Config TextConfig `yaml:"config,omitempty" json:"config,omitempty"`
}

// ImageSpec carries the visual style and content binding of an image element.
type ImageSpec struct {
	Style  ImageStyle  `yaml:"style,omitempty" json:"style,omitempty"`
	Config ImageConfig `yaml:"config,omitempty" json:"config,omitempty"`
}

// ShapeSpec carries the visual style and geometry of a shape element.
type ShapeSpec struct {
	Style  ShapeStyle  `yaml:"style,omitempty" json:"style,omitempty"`
	Config ShapeConfig `yaml:"config,omitempty" json:"config,omitempty"`
}

// DataSpec carries the text-like style and data binding of a data element.
type DataSpec struct {
	Style  TextStyle  `yaml:"style,omitempty" json:"style,omitempty"`
	Config DataConfig `yaml:"config,omitempty" json:"config,omitempty"`
}

// TextStyle holds visual-only text properties. Unset fields fall back to
// hard defaults at resolution time; stored elements are never mutated to
// fill them in.
type TextStyle struct {
	FontSize   string `yaml:"font_size,omitempty" json:"fontSize,omitempty"`
	FontWeight string `yaml:"font_weight,omitempty" json:"fontWeight,omitempty"`
	FontFamily string `yaml:"font_family,omitempty" json:"fontFamily,omitempty"`
	Color      string `yaml:"color,omitempty" json:"color,omitempty"`
	TextAlign  string `yaml:"text_align,omitempty" json:"textAlign,omitempty"`
}

// ImageStyle holds visual-only image properties.
type ImageStyle struct {
	BorderRadius string   `yaml:"border_radius,omitempty" json:"borderRadius,omitempty"`
	Opacity      *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
}

// ShapeStyle holds visual-only shape properties.
type ShapeStyle struct {
	Fill        string   `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke      string   `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	StrokeWidth *float64 `yaml:"stroke_width,omitempty" json:"strokeWidth,omitempty"`
}

// TextConfig holds content and binding properties of a text element. It must
// never carry visual semantics; that separation is what lets brand overrides
// apply to style without touching content.
type TextConfig struct {
	FieldID      string `yaml:"field_id,omitempty" json:"fieldId,omitempty"`
	Label        string `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder  string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	DefaultValue string `yaml:"default_value,omitempty" json:"defaultValue,omitempty"`
	MaxLength    int    `yaml:"max_length,omitempty" json:"maxLength,omitempty"`
	Required     bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Multiline    bool   `yaml:"multiline,omitempty" json:"multiline,omitempty"`
}

// MediaType classifies image content. Closed set.
type MediaType string

const (
	MediaLogo       MediaType = "logo"
	MediaProduct    MediaType = "product"
	MediaTeam       MediaType = "team"
	MediaOffice     MediaType = "office"
	MediaHero       MediaType = "hero"
	MediaIcon       MediaType = "icon"
	MediaScreenshot MediaType = "screenshot"
	MediaGraphic    MediaType = "graphic"
)

// Valid reports whether m is one of the known media types.
func (m MediaType) Valid() bool {
	switch m {
	case MediaLogo, MediaProduct, MediaTeam, MediaOffice, MediaHero, MediaIcon, MediaScreenshot, MediaGraphic:
		return true
	default:
		return false
	}
}

// ObjectFit controls how an image fills its box.
type ObjectFit string

const (
	FitContain ObjectFit = "contain"
	FitCover   ObjectFit = "cover"
	FitFill    ObjectFit = "fill"
)

// ImageConfig holds content and binding properties of an image element.
type ImageConfig struct {
	FieldID     string    `yaml:"field_id,omitempty" json:"fieldId,omitempty"`
	URL         string    `yaml:"url,omitempty" json:"url,omitempty"`
	MediaType   MediaType `yaml:"media_type,omitempty" json:"mediaType,omitempty"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	ObjectFit   ObjectFit `yaml:"object_fit,omitempty" json:"objectFit,omitempty"`
	FallbackURL string    `yaml:"fallback_url,omitempty" json:"fallbackUrl,omitempty"`
}

// ShapeKind names the geometry a shape element draws.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeLine      ShapeKind = "line"
)

// ShapeConfig holds the geometry selection of a shape element.
type ShapeConfig struct {
	Kind ShapeKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// DataFormat controls how a bound data value is formatted for display.
type DataFormat string

const (
	FormatText       DataFormat = "text"
	FormatNumber     DataFormat = "number"
	FormatCurrency   DataFormat = "currency"
	FormatPercentage DataFormat = "percentage"
)

// DataConfig holds the binding of a data element into a business-data record.
type DataConfig struct {
	FieldID  string     `yaml:"field_id,omitempty" json:"fieldId,omitempty"`
	DataPath string     `yaml:"data_path,omitempty" json:"dataPath,omitempty"`
	Format   DataFormat `yaml:"format,omitempty" json:"format,omitempty"`
	Prefix   string     `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix   string     `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}
