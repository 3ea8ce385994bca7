// Package templates holds reusable slide templates and the engine that turns
// a template plus brand identity and content into a concrete slide.
package templates

import (
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/model"
)

// AccessTier gates templates behind subscription levels.
type AccessTier string

const (
	TierFree    AccessTier = "free"
	TierPro     AccessTier = "pro"
	TierPremium AccessTier = "premium"
)

func tierRank(t AccessTier) int {
	switch t {
	case TierPro:
		return 1
	case TierPremium:
		return 2
	default:
		return 0
	}
}

// Allows reports whether a caller at tier t may use a template gated at
// required.
func (t AccessTier) Allows(required AccessTier) bool {
	return tierRank(t) >= tierRank(required)
}

// SchemaField describes one content field of a legacy free-form template,
// which carries no explicit element positions.
type SchemaField struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty" validate:"omitempty,oneof=text image data"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Multiline   bool   `yaml:"multiline,omitempty" json:"multiline,omitempty"`
}

// Template is a reusable slide layout. It is read-only at application time:
// applying it to a slide never mutates the template.
//
// A template with element seeds in Layout is a "visual template"; one that
// carries only a content schema is a legacy free-form template.
type Template struct {
	ID         string     `yaml:"id" json:"id" validate:"required"`
	Name       string     `yaml:"name" json:"name" validate:"required"`
	Category   string     `yaml:"category,omitempty" json:"category,omitempty"`
	AccessTier AccessTier `yaml:"access_tier,omitempty" json:"accessTier,omitempty" validate:"omitempty,oneof=free pro premium"`

	Layout         []model.Element              `yaml:"layout,omitempty" json:"layout,omitempty"`
	ContentSchema  []SchemaField                `yaml:"content_schema,omitempty" json:"contentSchema,omitempty"`
	DefaultStyling map[string]model.StylePatch  `yaml:"default_styling,omitempty" json:"defaultStyling,omitempty"`
	Background     model.Background             `yaml:"background,omitempty" json:"background,omitempty"`
}

// Visual reports whether the template carries explicit element seeds.
func (t Template) Visual() bool {
	return len(t.Layout) > 0
}

// Meaningful reports whether caller-supplied content carries real values:
// at least one non-empty string after trimming, or one non-empty array.
// It distinguishes "user supplied real content" from an empty placeholder
// object.
func Meaningful(content map[string]interface{}) bool {
	for _, v := range content {
		switch val := v.(type) {
		case string:
			if strings.TrimSpace(val) != "" {
				return true
			}
		case []string:
			if len(val) > 0 {
				return true
			}
		case []interface{}:
			if len(val) > 0 {
				return true
			}
		}
	}
	return false
}

// Derive builds a visual template from an existing slide ("save as
// template"): every element becomes a seed, keeping its slot id when it has
// one or gaining a generated one.
func Derive(id, name, category string, doc model.Document) Template {
	tpl := Template{
		ID:         id,
		Name:       name,
		Category:   category,
		AccessTier: TierFree,
		Background: doc.Background,
	}
	for i, el := range doc.RenderOrder() {
		seed := el.Clone()
		if seed.Slot == "" {
			seed.Slot = seedSlotID(seed, i)
		}
		tpl.Layout = append(tpl.Layout, seed)
	}
	return tpl
}

func seedSlotID(el model.Element, i int) string {
	return fmt.Sprintf("%s_%d", el.Variant, i+1)
}
