package templates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/model"
	deckerrors "github.com/deckforge/deckforge/pkg/errors"
)

// Source resolves template ids. Implemented by the SQLite store and by
// in-memory registries in tests.
type Source interface {
	GetTemplate(ctx context.Context, id string) (Template, error)
}

// GenerateRequest is what the engine hands the AI content collaborator when
// the caller supplied no meaningful content for a non-visual template.
type GenerateRequest struct {
	TemplateCategory   string                 `json:"templateCategory"`
	TemplateName       string                 `json:"templateName"`
	BusinessProfile    map[string]interface{} `json:"businessProfile,omitempty"`
	ExistingContent    map[string]interface{} `json:"existingContent,omitempty"`
	AvailableMedia     []string               `json:"availableMedia,omitempty"`
	RequiredImageCount int                    `json:"requiredImageCount,omitempty"`
}

// Generator is the AI content collaborator. It must tolerate being
// unavailable; the engine recovers from any error it returns.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (map[string]string, error)
}

// defaultGenerateTimeout bounds the wait on the content collaborator so
// template application never blocks slide creation indefinitely.
const defaultGenerateTimeout = 8 * time.Second

// Engine merges a template with brand identity, caller content, and
// generated fallback content into a concrete slide.
type Engine struct {
	source  Source
	gen     Generator
	log     *logger.Logger
	timeout time.Duration
}

// NewEngine constructs an Engine. gen may be nil when no content
// collaborator is configured; generation then falls straight through to the
// placeholder fallback.
func NewEngine(source Source, gen Generator, log *logger.Logger) *Engine {
	return &Engine{source: source, gen: gen, log: log, timeout: defaultGenerateTimeout}
}

// SetGenerateTimeout overrides the bounded generation timeout.
func (e *Engine) SetGenerateTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// ApplyRequest carries everything one template application needs.
type ApplyRequest struct {
	TemplateID string

	// Content is the caller-supplied target content, keyed by field id.
	Content map[string]interface{}

	// Profile is the project's business-profile context forwarded to the
	// content collaborator.
	Profile map[string]interface{}

	// AvailableMedia lists media URLs the collaborator may place.
	AvailableMedia []string

	Brand brand.Kit

	// Overrides are explicit per-slot style overrides. They win over every
	// other source, including the brand kit.
	Overrides map[string]model.StylePatch

	// Tier is the caller's subscription tier.
	Tier AccessTier

	// SlideID and SlideOrder preserve the identity of a slide being
	// re-templated. Empty SlideID means a new slide.
	SlideID    string
	SlideOrder int
}

// ApplyResult is the concrete slide plus the template's default styling,
// which renderers feed into the resolver.
type ApplyResult struct {
	Slide            model.Document
	TemplateDefaults map[string]model.StylePatch
}

// Apply merges the template with brand identity, caller content, and
// AI-generated fallback content. Generation failure is recoverable: the
// engine logs it and falls back to the template's display name, so slide
// creation never aborts on a collaborator outage.
func (e *Engine) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	tpl, err := e.source.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return ApplyResult{}, err
	}

	if !req.Tier.Allows(tpl.AccessTier) {
		return ApplyResult{}, deckerrors.NewUpgradeRequiredError(tpl.ID, string(tpl.AccessTier), string(req.Tier))
	}

	content := req.Content
	if !Meaningful(content) {
		if tpl.Visual() {
			// Visual templates carry enough default content by
			// construction; skip generation entirely.
			content = nil
		} else {
			content = e.generateOrFallback(ctx, tpl, req)
		}
	}

	slide := model.Document{
		ID:         req.SlideID,
		Name:       tpl.Name,
		Order:      req.SlideOrder,
		Background: tpl.Background,
	}
	if slide.ID == "" {
		slide.ID = uuid.NewString()
	}

	if tpl.Visual() {
		slide.Elements = e.seedVisual(tpl, content, req.Overrides)
	} else {
		slide.Elements = e.seedFromSchema(tpl, content, req.Overrides)
	}

	defaults := make(map[string]model.StylePatch, len(tpl.DefaultStyling))
	for slot, patch := range tpl.DefaultStyling {
		defaults[slot] = patch
	}

	// The slide records its origin and a snapshot of the template's slot
	// defaults, so every later render resolves rung 2 without a template
	// lookup.
	slide.TemplateID = tpl.ID
	if len(defaults) > 0 {
		slide.TemplateDefaults = defaults
	}
	return ApplyResult{Slide: slide, TemplateDefaults: defaults}, nil
}

// generateOrFallback asks the collaborator for content under a bounded
// timeout. Any failure degrades to the template's own display name as the
// sole content value.
func (e *Engine) generateOrFallback(ctx context.Context, tpl Template, req ApplyRequest) map[string]interface{} {
	fallback := map[string]interface{}{"title": tpl.Name}

	if e.gen == nil {
		return fallback
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	generated, err := e.gen.Generate(genCtx, GenerateRequest{
		TemplateCategory:   tpl.Category,
		TemplateName:       tpl.Name,
		BusinessProfile:    req.Profile,
		ExistingContent:    req.Content,
		AvailableMedia:     req.AvailableMedia,
		RequiredImageCount: countImageFields(tpl),
	})
	if err != nil {
		e.log.Error(deckerrors.NewGenerationError(tpl.Name, err), "content generation failed, using template name fallback")
		return fallback
	}

	content := make(map[string]interface{}, len(generated))
	for k, v := range generated {
		content[k] = v
	}
	if !Meaningful(content) {
		return fallback
	}
	return content
}

func countImageFields(tpl Template) int {
	n := 0
	for _, el := range tpl.Layout {
		if el.Variant == model.VariantImage {
			n++
		}
	}
	for _, f := range tpl.ContentSchema {
		if f.Kind == "image" {
			n++
		}
	}
	return n
}

// seedVisual instantiates a visual template's element seeds: fresh ids,
// caller/generated content folded into config, explicit overrides folded
// into style last.
func (e *Engine) seedVisual(tpl Template, content map[string]interface{}, overrides map[string]model.StylePatch) []model.Element {
	out := make([]model.Element, 0, len(tpl.Layout))
	for i, seed := range tpl.Layout {
		el := seed.Clone()
		el.ID = uuid.NewString()
		if el.ZIndex == 0 {
			el.ZIndex = i + 1
		}
		bindContent(&el, content)
		foldOverride(&el, overrides)
		out = append(out, el)
	}
	return out
}

// seedFromSchema synthesizes a simple stacked layout for a legacy free-form
// template, which carries no explicit positions.
func (e *Engine) seedFromSchema(tpl Template, content map[string]interface{}, overrides map[string]model.StylePatch) []model.Element {
	const (
		marginX    = 160.0
		topY       = 120.0
		rowGap     = 40.0
		fieldWidth = model.CanvasWidth - 2*marginX
	)

	out := make([]model.Element, 0, len(tpl.ContentSchema)+1)
	y := topY

	title := model.Element{
		ID:       uuid.NewString(),
		Variant:  model.VariantText,
		Position: model.Position{X: marginX, Y: y},
		Size:     model.Size{Width: model.Units(fieldWidth), Height: model.Units(120)},
		ZIndex:   1,
		Slot:     "title",
		Bind:     model.BindSpec{Color: model.BrandPrimary, FontFamily: true},
		Text: &model.TextSpec{
			Style:  model.TextStyle{FontSize: "48px", FontWeight: "bold"},
			Config: model.TextConfig{FieldID: "title", Placeholder: tpl.Name},
		},
	}
	bindContent(&title, content)
	foldOverride(&title, overrides)
	out = append(out, title)
	y += 120 + rowGap

	for i, field := range tpl.ContentSchema {
		if field.ID == "title" {
			continue
		}
		height := 80.0
		if field.Multiline {
			height = 200
		}
		el := model.Element{
			ID:       uuid.NewString(),
			Variant:  model.VariantText,
			Position: model.Position{X: marginX, Y: y},
			Size:     model.Size{Width: model.Units(fieldWidth), Height: model.Units(height)},
			ZIndex:   i + 2,
			Slot:     field.ID,
			Bind:     model.BindSpec{FontFamily: true},
			Text: &model.TextSpec{
				Config: model.TextConfig{
					FieldID:     field.ID,
					Label:       field.Label,
					Placeholder: field.Placeholder,
					Required:    field.Required,
					Multiline:   field.Multiline,
				},
			},
		}
		bindContent(&el, content)
		foldOverride(&el, overrides)
		out = append(out, el)
		y += height + rowGap
		if y > model.CanvasHeight-200 {
			break
		}
	}

	// When the fallback produced only a title and the schema had no title
	// field, the slide still carries content: the title element above.
	return out
}

// bindContent folds a content value into the element's config by field id.
// Appearance is never touched; only the content side of the split.
func bindContent(el *model.Element, content map[string]interface{}) {
	if len(content) == 0 {
		return
	}
	switch el.Variant {
	case model.VariantText:
		if v, ok := stringValue(content, el.Text.Config.FieldID); ok {
			el.Text.Config.DefaultValue = v
		} else if el.Slot != "" {
			if v, ok := stringValue(content, el.Slot); ok {
				el.Text.Config.DefaultValue = v
			}
		}
	case model.VariantImage:
		if v, ok := stringValue(content, el.Image.Config.FieldID); ok {
			el.Image.Config.URL = v
		}
	}
}

func stringValue(content map[string]interface{}, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := content[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// foldOverride writes an explicit override into the element's stored style
// and unbinds any overridden brand-bindable field, so the override also
// wins over a later brand application.
func foldOverride(el *model.Element, overrides map[string]model.StylePatch) {
	if el.Slot == "" {
		return
	}
	patch, ok := overrides[el.Slot]
	if !ok || patch.IsZero() {
		return
	}
	el.ApplyStylePatch(patch)
	if patch.Color != "" {
		el.Bind.Color = ""
	}
	if patch.Fill != "" {
		el.Bind.Fill = ""
	}
	if patch.Stroke != "" {
		el.Bind.Stroke = ""
	}
	if patch.FontFamily != "" {
		el.Bind.FontFamily = false
	}
}
