package mock

import (
	"context"

	"github.com/fwojciec/specstitch"
)

var _ specstitch.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of specstitch.ResultWriter.
type ResultWriter struct {
	WriteDefinitionFn func(ctx context.Context, def map[string]any) error
	WritePayloadFn    func(ctx context.Context, page *specstitch.PageProps) error
}

func (w *ResultWriter) WriteDefinition(ctx context.Context, def map[string]any) error {
	if w.WriteDefinitionFn == nil {
		return nil
	}
	return w.WriteDefinitionFn(ctx, def)
}

func (w *ResultWriter) WritePayload(ctx context.Context, page *specstitch.PageProps) error {
	if w.WritePayloadFn == nil {
		return nil
	}
	return w.WritePayloadFn(ctx, page)
}
