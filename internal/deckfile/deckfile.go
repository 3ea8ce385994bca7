// Package deckfile reads and writes the YAML deck format used to move decks
// in and out of the store and to keep them under version control.
package deckfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/model"
	apperrors "github.com/deckforge/deckforge/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// File is one deck on disk: metadata, brand identity, and the slide list.
type File struct {
	Name   string           `yaml:"name"`
	Tier   string           `yaml:"tier,omitempty"`
	Brand  brand.Kit        `yaml:"brand,omitempty"`
	Slides []model.Document `yaml:"slides"`
}

// Load parses and validates a deck file. Slides gain ids when they have
// none, and slide order is normalized to file order.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		if line := extractLine(err); line > 0 {
			return nil, fmt.Errorf("parsing deck %s (line %d): %w", path, line, err)
		}
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	for i := range f.Slides {
		if f.Slides[i].ID == "" {
			f.Slides[i].ID = uuid.NewString()
		}
		f.Slides[i].Order = i
	}
	return &f, nil
}

// Save writes the deck file, creating parent directories as needed.
func Save(path string, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the deck's brand colors and every element of every slide.
func (f *File) Validate() error {
	if f.Name == "" {
		return &apperrors.ValidationError{Field: "name", Message: "deck name is required"}
	}
	for _, c := range []struct {
		field, value string
	}{
		{"brand.primary_color", f.Brand.PrimaryColor},
		{"brand.secondary_color", f.Brand.SecondaryColor},
		{"brand.accent_color", f.Brand.AccentColor},
	} {
		if c.value != "" && !brand.ValidHexColor(c.value) {
			return &apperrors.ValidationError{Field: c.field, Message: fmt.Sprintf("%q is not a hex color", c.value)}
		}
	}
	for si := range f.Slides {
		for ei := range f.Slides[si].Elements {
			if err := f.Slides[si].Elements[ei].Validate(); err != nil {
				return fmt.Errorf("slide %d element %d: %w", si+1, ei+1, err)
			}
		}
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
