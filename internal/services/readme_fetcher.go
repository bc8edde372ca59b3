package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ReadmeFetcher retrieves README text from a raw-content URL
type ReadmeFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPReadmeFetcher fetches READMEs with a plain GET
type HTTPReadmeFetcher struct {
	client *http.Client
}

// NewHTTPReadmeFetcher creates a fetcher; a nil client means http.DefaultClient
func NewHTTPReadmeFetcher(client *http.Client) *HTTPReadmeFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReadmeFetcher{client: client}
}

// Fetch returns the response body verbatim for 2xx responses
func (f *HTTPReadmeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %d", ErrReadmeNotFound, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
