package crawl

import (
	"context"

	"github.com/fwojciec/specstitch"
)

// Ensure PropsLoader implements specstitch.PropsService at compile time.
var _ specstitch.PropsService = (*PropsLoader)(nil)

// PropsLoader fetches a page and extracts its props payload.
// It is the uncached props service; wrap it in sqlite.PropsService to get
// the idempotent per-URL behavior the crawler's merge order depends on.
type PropsLoader struct {
	Fetcher   specstitch.Fetcher
	Extractor specstitch.Extractor
}

// FetchProps retrieves the props payload for the page at url.
func (l *PropsLoader) FetchProps(ctx context.Context, url string) (*specstitch.PageProps, error) {
	html, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	res, err := l.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	return &specstitch.PageProps{
		URL:       url,
		Props:     res.Props,
		Raw:       res.Raw,
		Truncated: res.Truncated,
	}, nil
}
