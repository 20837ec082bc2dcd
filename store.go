package specstitch

import (
	"context"
	"time"
)

// ResultWriter persists the finished definition and per-page payload blobs.
type ResultWriter interface {
	// WriteDefinition writes the finished definition tree.
	WriteDefinition(ctx context.Context, def map[string]any) error

	// WritePayload writes one page's raw payload for later inspection.
	WritePayload(ctx context.Context, page *PageProps) error
}

// Run records one crawl of a documentation site.
type Run struct {
	ID         string    `json:"id"`
	StartURL   string    `json:"startUrl"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Used       int       `json:"used"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	return nil
}

// RunService records crawl runs.
type RunService interface {
	// CreateRun records the start of a crawl. Sets the run's ID and
	// StartedAt.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun records a crawl's end time and page outcome counts.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, used, skipped, failed int) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)
}
