package mock

import (
	"context"

	"github.com/fwojciec/specstitch"
)

var _ specstitch.PropsService = (*PropsService)(nil)

// PropsService is a mock implementation of specstitch.PropsService.
type PropsService struct {
	FetchPropsFn func(ctx context.Context, url string) (*specstitch.PageProps, error)
}

func (s *PropsService) FetchProps(ctx context.Context, url string) (*specstitch.PageProps, error) {
	return s.FetchPropsFn(ctx, url)
}
