package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/specstitch"
)

// Ensure LoggingPropsService implements specstitch.PropsService.
var _ specstitch.PropsService = (*LoggingPropsService)(nil)

// LoggingPropsService wraps a PropsService with logging.
type LoggingPropsService struct {
	next   specstitch.PropsService
	logger *slog.Logger
}

// NewLoggingPropsService creates a new LoggingPropsService.
func NewLoggingPropsService(next specstitch.PropsService, logger *slog.Logger) *LoggingPropsService {
	return &LoggingPropsService{next: next, logger: logger}
}

// FetchProps delegates to the wrapped service and logs the outcome,
// including whether the payload needed truncation recovery.
func (s *LoggingPropsService) FetchProps(ctx context.Context, url string) (*specstitch.PageProps, error) {
	begin := time.Now()
	page, err := s.next.FetchProps(ctx, url)
	if err != nil {
		s.logger.Info("props fetch failed",
			"url", url,
			"code", specstitch.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	if page.Truncated {
		s.logger.Warn("props recovered from truncated payload",
			"url", url,
			"keys", len(page.Props),
			"duration", time.Since(begin),
		)
	} else {
		s.logger.Info("props fetched",
			"url", url,
			"keys", len(page.Props),
			"duration", time.Since(begin),
		)
	}
	return page, nil
}
