// Package export hands finished deck markup to the document conversion
// service and returns the download location of the produced file.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deckforge/deckforge/internal/logger"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPPTX Format = "pptx"
)

const defaultExportTimeout = 60 * time.Second

// Request is one export job: the rendered markup plus the metadata the
// conversion service stamps into the document.
type Request struct {
	DeckID     string `json:"deckId"`
	DeckName   string `json:"deckName"`
	Format     Format `json:"format"`
	HTML       string `json:"html"`
	PageWidth  int    `json:"pageWidth"`
	PageHeight int    `json:"pageHeight"`
}

// Result points at the produced document.
type Result struct {
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
}

// Client posts export jobs to the conversion service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient builds an export client rooted at baseURL.
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultExportTimeout},
		log:     log,
	}
}

// Export submits the job and waits for the conversion result. Unlike content
// generation there is no fallback here: a failed export surfaces to the
// caller.
func (c *Client) Export(ctx context.Context, req Request) (Result, error) {
	if req.Format == "" {
		req.Format = FormatPDF
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/export", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("export service returned %d: %s", resp.StatusCode, snippet)
		c.log.Error(err, "export rejected")
		return Result{}, err
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decoding export result: %w", err)
	}
	if result.URL == "" {
		return Result{}, fmt.Errorf("export service returned no document URL")
	}
	return result, nil
}
