// ABOUTME: HTTP-backed WebFetcher calling a page-metadata extraction service
// ABOUTME: Translates service failures into the shared enrichment error taxonomy
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MetadataFetcher fetches structured page metadata from an extraction service
// that returns JSON. APIKey may be empty when the endpoint is unauthenticated.
type MetadataFetcher struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewMetadataFetcher(endpoint, apiKey string) *MetadataFetcher {
	return &MetadataFetcher{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type metadataResponse struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	Links       []string          `json:"links"`
}

func (f *MetadataFetcher) Fetch(ctx context.Context, target string) (PageData, error) {
	if f.Endpoint == "" {
		return PageData{}, fmt.Errorf("metadata endpoint not configured: %w", ErrMissingCredential)
	}

	reqURL := fmt.Sprintf("%s?url=%s", f.Endpoint, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PageData{}, fmt.Errorf("build metadata request: %w", err)
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return PageData{}, fmt.Errorf("metadata request for %s: %w", target, ErrTransport)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return PageData{}, fmt.Errorf("metadata service rejected credentials: %w", ErrMissingCredential)
	case resp.StatusCode != http.StatusOK:
		return PageData{}, fmt.Errorf("metadata service returned %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var body metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return PageData{}, fmt.Errorf("decode metadata response: %w", ErrSourceUnavailable)
	}

	return PageData{
		Title:       body.Title,
		Description: body.Description,
		Metadata:    body.Metadata,
		Links:       body.Links,
	}, nil
}
