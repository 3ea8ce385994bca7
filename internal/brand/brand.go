// Package brand holds the per-project brand kit: an ambient theme created
// once per project and read, never written, during template application and
// style resolution.
package brand

import (
	"regexp"
	"strings"
)

// Kit is a read-only snapshot of a project's brand identity.
type Kit struct {
	PrimaryColor   string `yaml:"primary_color" json:"primaryColor" validate:"omitempty,hex_color"`
	SecondaryColor string `yaml:"secondary_color" json:"secondaryColor" validate:"omitempty,hex_color"`
	AccentColor    string `yaml:"accent_color" json:"accentColor" validate:"omitempty,hex_color"`
	FontFamily     string `yaml:"font_family" json:"fontFamily"`
	LogoURL        string `yaml:"logo_url" json:"logoUrl"`
}

// IsZero reports whether the kit carries no values at all.
func (k Kit) IsZero() bool {
	return k == Kit{}
}

// Color returns the kit color for a named role ("primary", "secondary",
// "accent"), or "" for an unknown role or unset color.
func (k Kit) Color(role string) string {
	switch role {
	case "primary":
		return k.PrimaryColor
	case "secondary":
		return k.SecondaryColor
	case "accent":
		return k.AccentColor
	default:
		return ""
	}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether s is a #RGB or #RRGGBB color string.
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(strings.TrimSpace(s))
}
