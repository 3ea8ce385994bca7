package errors

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing slide, template, or brand kit.
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFoundError constructs a NotFoundError for the given entity kind and id.
func NewNotFoundError(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// UpgradeRequiredError reports an access-tier violation when applying a
// premium template. It is distinct from NotFoundError so callers can prompt
// for an upgrade instead of reporting a generic failure.
type UpgradeRequiredError struct {
	TemplateID   string
	RequiredTier string
	CurrentTier  string
}

// NewUpgradeRequiredError constructs an UpgradeRequiredError.
func NewUpgradeRequiredError(templateID, required, current string) error {
	return &UpgradeRequiredError{TemplateID: templateID, RequiredTier: required, CurrentTier: current}
}

func (e *UpgradeRequiredError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("template %s requires %s tier (current: %s)", e.TemplateID, e.RequiredTier, e.CurrentTier)
}

// GenerationError reports that the AI content collaborator was unavailable or
// returned an unusable response. The template engine recovers from it with
// placeholder content; it never surfaces as a hard failure.
type GenerationError struct {
	Template string
	Err      error
}

// NewGenerationError constructs a GenerationError.
func NewGenerationError(template string, err error) error {
	return &GenerationError{Template: template, Err: err}
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("content generation failed for %s: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("content generation failed for %s", e.Template)
}

// Unwrap exposes the underlying error.
func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a malformed element or template payload rejected
// before any document mutation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsUpgradeRequired reports whether err is an UpgradeRequiredError.
func IsUpgradeRequired(err error) bool {
	var target *UpgradeRequiredError
	return errors.As(err, &target)
}

// IsGenerationFailed reports whether err is a GenerationError.
func IsGenerationFailed(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
