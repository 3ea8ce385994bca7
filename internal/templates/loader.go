package templates

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/deckforge/deckforge/internal/brand"
	deckerrors "github.com/deckforge/deckforge/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
			return brand.ValidHexColor(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Parse decodes and validates one template definition.
func Parse(data []byte) (Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, deckerrors.NewValidationError("template", "malformed template document", err)
	}
	if err := Validate(tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Validate checks a template against its structural invariants, including
// every element seed it carries.
func Validate(tpl Template) error {
	if err := validatorInstance().Struct(tpl); err != nil {
		return deckerrors.NewValidationError("template", err.Error(), err)
	}
	for _, seed := range tpl.Layout {
		if err := seed.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile parses a template definition from disk.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, err
	}
	return Parse(data)
}

// LoadDir loads every *.yaml template under dir, sorted by file name so
// registration order is stable.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	out := make([]Template, 0, len(names))
	for _, name := range names {
		tpl, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

// Registry is an in-memory template source.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds or replaces a template.
func (r *Registry) Register(tpl Template) error {
	if err := Validate(tpl); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[tpl.ID]; !exists {
		r.order = append(r.order, tpl.ID)
	}
	r.templates[tpl.ID] = tpl
	return nil
}

// GetTemplate implements Source.
func (r *Registry) GetTemplate(_ context.Context, id string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, deckerrors.NewNotFoundError("template", id)
	}
	return tpl, nil
}

// List returns all templates in registration order.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}
