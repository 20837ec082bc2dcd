package mock

import "github.com/fwojciec/specstitch"

var _ specstitch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of specstitch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*specstitch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*specstitch.ExtractResult, error) {
	return e.ExtractFn(html)
}
