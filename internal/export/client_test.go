package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/export", r.URL.Path)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "d1", req.DeckID)
		require.Equal(t, FormatPDF, req.Format)
		require.Contains(t, req.HTML, "slide")

		json.NewEncoder(w).Encode(Result{URL: "https://files.example.com/d1.pdf", SizeBytes: 1024})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res, err := c.Export(context.Background(), Request{
		DeckID:   "d1",
		DeckName: "Pitch",
		HTML:     `<div class="slide"></div>`,
	})
	require.NoError(t, err)
	require.Equal(t, "https://files.example.com/d1.pdf", res.URL)
}

func TestExportFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Export(context.Background(), Request{DeckID: "d1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestExportRequiresDocumentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Export(context.Background(), Request{DeckID: "d1"})
	require.Error(t, err)
}
