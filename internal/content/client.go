// Package content talks to the slide-content generation service. The rest of
// the application treats it as optional: callers must keep working when it is
// slow, down, or unconfigured.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/templates"
	deckerrors "github.com/deckforge/deckforge/pkg/errors"
)

const defaultRequestTimeout = 8 * time.Second

// Client posts generation requests to the content service and implements
// templates.Generator.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a content service client rooted at baseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateResponse struct {
	Content map[string]string `json:"content"`
	Error   string            `json:"error,omitempty"`
}

// Generate asks the service for field content matching the request. The
// returned map is keyed by field id. Errors are wrapped as generation
// failures so callers can fall back to placeholder content.
func (c *Client) Generate(ctx context.Context, req templates.GenerateRequest) (map[string]string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log, then discard the rest so
		// the connection can be reused.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("content service returned %d: %s", resp.StatusCode, snippet)
		c.log.Error(err, "content generation request rejected")
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: err}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: err}
	}
	if decoded.Error != "" {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: fmt.Errorf("%s", decoded.Error)}
	}
	if len(decoded.Content) == 0 {
		return nil, &deckerrors.GenerationError{Template: req.TemplateName, Err: fmt.Errorf("empty generation result")}
	}
	return decoded.Content, nil
}
