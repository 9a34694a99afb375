// Package resolver exchanges video identifiers for direct media URLs.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"grabarr/internal/domain/consts"
	"grabarr/internal/utils/logging"
)

// ErrNoSourceURL is returned when the API response carries no direct URL and
// the share page fallback also finds nothing.
var ErrNoSourceURL = errors.New("response contained no download URL")

// sourceResponse is the JSON body returned by the resolve endpoint.
type sourceResponse struct {
	DownloadURL string `json:"download_url"`
}

// Resolver resolves video IDs against the share service API.
type Resolver struct {
	baseURL string
	client  *http.Client
	scraper *pageScraper
}

// New returns a Resolver against the given API base URL.
//
// An empty baseURL falls back to the default share service endpoint.
func New(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = consts.DefaultAPIBase
	}
	return &Resolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: consts.ResolverTimeout},
		scraper: newPageScraper(),
	}
}

// Resolve performs one outbound request for videoID and returns the direct
// media URL embedded in the response.
//
// Each call is independent: resolved URLs are time-limited upstream and are
// never cached. shareURL is only used by the page-scrape fallback when the
// API response lacks a URL.
func (r *Resolver) Resolve(ctx context.Context, videoID, shareURL string) (string, error) {
	endpoint := fmt.Sprintf(consts.ResolveEndpointFmt, r.baseURL, videoID)

	body, err := json.Marshal(map[string]string{"video_id": videoID})
	if err != nil {
		return "", fmt.Errorf("failed to encode resolve request for %q: %w", videoID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build resolve request for %q: %w", videoID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve request failed for %q: %w", videoID, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close response body for %q: %v", videoID, err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("resolve request for %q returned status %d", videoID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading resolve response for %q: %w", videoID, err)
	}

	var parsed sourceResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse resolve response for %q: %w", videoID, err)
	}

	if parsed.DownloadURL != "" {
		logging.D(2, "Resolved video %q to direct URL", videoID)
		return parsed.DownloadURL, nil
	}

	// Missing field: fall back to scanning the share page itself. Transport
	// and status errors above never reach this path.
	if shareURL != "" {
		logging.D(1, "API response for %q had no download URL, scraping share page", videoID)
		if scraped, err := r.scraper.findVideoSource(shareURL); err == nil && scraped != "" {
			return scraped, nil
		}
	}

	return "", fmt.Errorf("resolve failed for %q: %w", videoID, ErrNoSourceURL)
}
