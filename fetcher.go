package specstitch

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its body.
	// Returns ENOTFOUND for a 404 response and EUNAVAILABLE for any other
	// non-200 response or transport failure.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
