package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRemoteTimeout bounds a single remote configuration download.
const DefaultRemoteTimeout = 10 * time.Second

// maxRemoteDocument caps the size of a remote configuration document.
const maxRemoteDocument = 1 << 20

// RemoteFetcher downloads remote configuration documents.
type RemoteFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches documents over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads url and returns its body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteDocument))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return body, nil
}

// StaticFetcher serves canned documents keyed by URL.
type StaticFetcher map[string]string

// Fetch returns the canned document for url.
func (f StaticFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	doc, ok := f[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: not found", url)
	}

	return []byte(doc), nil
}
