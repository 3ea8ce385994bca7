package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/templates"
	apperrors "github.com/deckforge/deckforge/pkg/errors"
)

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/generate", r.URL.Path)
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))

		var req templates.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "market_sizing", req.TemplateName)

		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"title": "A $40B Market"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, WithAPIKey("sekrit"))
	out, err := c.Generate(context.Background(), templates.GenerateRequest{
		TemplateCategory: "market",
		TemplateName:     "market_sizing",
	})
	require.NoError(t, err)
	require.Equal(t, "A $40B Market", out["title"])
}

func TestGenerateServerErrorIsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Generate(context.Background(), templates.GenerateRequest{TemplateName: "intro"})
	require.Error(t, err)
	require.True(t, apperrors.IsGenerationFailed(err))
}

func TestGenerateEmptyResultIsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Generate(context.Background(), templates.GenerateRequest{TemplateName: "intro"})
	require.True(t, apperrors.IsGenerationFailed(err))
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, nil)
	_, err := c.Generate(ctx, templates.GenerateRequest{TemplateName: "intro"})
	require.True(t, apperrors.IsGenerationFailed(err))
}
