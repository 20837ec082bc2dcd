package mock

import (
	"context"

	"github.com/fwojciec/specstitch"
)

var _ specstitch.RunService = (*RunService)(nil)

// RunService is a mock implementation of specstitch.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *specstitch.Run) error
	FinishRunFn   func(ctx context.Context, id string, used, skipped, failed int) error
	FindRunByIDFn func(ctx context.Context, id string) (*specstitch.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *specstitch.Run) error {
	if s.CreateRunFn == nil {
		return nil
	}
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, used, skipped, failed int) error {
	if s.FinishRunFn == nil {
		return nil
	}
	return s.FinishRunFn(ctx, id, used, skipped, failed)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*specstitch.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}
