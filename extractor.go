package specstitch

// ExtractResult holds the props payload extracted from a documentation page.
type ExtractResult struct {
	// Props is the decoded props object embedded in the page.
	Props map[string]any

	// Raw is the payload text the props were decoded from, after HTML
	// entity decoding. For a truncated page this is the surviving prefix.
	Raw string

	// Truncated reports whether the payload was cut off mid-stream and
	// Props was produced by recovery parsing.
	Truncated bool
}

// Extractor locates and decodes the props payload embedded in a page's HTML.
type Extractor interface {
	// Extract returns the props payload embedded in html.
	// Returns EEXTRACT if the payload marker is missing and EINCOMPLETE if
	// a recovered payload lacks the definition fragment.
	Extract(html string) (*ExtractResult, error)
}
