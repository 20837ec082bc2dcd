// Package http provides an HTTP-based implementation of specstitch.Fetcher.
// Documentation pages served by ReadMe embed their full payload in the
// server-rendered HTML, so a plain HTTP client is sufficient and no
// JavaScript rendering is needed.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/specstitch"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRequestsPerSecond is the default politeness rate limit.
// Matches one request per second against the documentation host.
const DefaultRequestsPerSecond = 1.0

// Ensure Fetcher implements specstitch.Fetcher at compile time.
var _ specstitch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests, pacing
// them with a politeness rate limit.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	rps     float64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRequestsPerSecond sets the politeness rate limit.
// Defaults to DefaultRequestsPerSecond (1 rps) if not specified.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) {
		f.rps = rps
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		rps:     DefaultRequestsPerSecond,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}
	f.limiter = rate.NewLimiter(rate.Limit(f.rps), 1)

	return f
}

// Fetch retrieves the HTML content from the given URL.
// A 404 response maps to ENOTFOUND, any other non-200 response to
// EUNAVAILABLE with the status code in the message.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", specstitch.Errorf(specstitch.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", specstitch.Errorf(specstitch.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", specstitch.Errorf(specstitch.ENOTFOUND, "page not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", specstitch.Errorf(specstitch.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	// A body cut off mid-transfer is still useful: the extractor recovers
	// complete entries from truncated payloads, so hand back whatever
	// arrived and only fail when nothing did.
	body, err := io.ReadAll(resp.Body)
	if err != nil && len(body) == 0 {
		return "", specstitch.Errorf(specstitch.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
