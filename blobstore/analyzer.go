package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Analyzer extracts structured text from an uploaded document. The input is
// a URL the analyzer can fetch the document from; the output is the raw
// analysis payload, stored verbatim.
type Analyzer interface {
	Analyze(ctx context.Context, documentURL string) (string, error)
}

// HTTPAnalyzer calls an external document-intelligence service over HTTP.
type HTTPAnalyzer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint, apiKey string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, documentURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": documentURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read analyze response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analyze service returned status %d", resp.StatusCode)
	}

	return string(body), nil
}
