package specstitch

import "context"

// PageProps is one page's extracted props payload.
type PageProps struct {
	// URL the payload was fetched from.
	URL string

	// Props is the decoded props object.
	Props map[string]any

	// Raw is the payload text backing Props. Kept for inspection; the
	// persistence layer writes it out as a per-page blob.
	Raw string

	// Truncated reports whether Props was produced by recovery parsing.
	Truncated bool
}

// PropsService fetches and decodes the props payload for a page.
// It is the unit of work the crawler drives: one call per page, blocking,
// possibly slow, possibly failing. Implementations must be idempotent per
// URL within a run — repeated calls for the same URL return the same
// payload — which the crawler relies on for deterministic merge order.
type PropsService interface {
	FetchProps(ctx context.Context, url string) (*PageProps, error)
}
