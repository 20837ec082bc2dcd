// Package crawl drives the reconstruction of a complete definition from a
// documentation site. It walks the reference pages named by the start
// page's navigation, one page at a time, and merges each page's definition
// fragment into the accumulated result.
package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/specstitch"
)

// Crawler orchestrates a crawl of a documentation site.
type Crawler struct {
	// Props fetches and decodes per-page payloads. Required.
	Props specstitch.PropsService

	// Writer persists the finished definition and per-page payload blobs.
	// Optional; when nil nothing is persisted.
	Writer specstitch.ResultWriter
}

// Result holds the outcome of a crawl.
type Result struct {
	// Definition is the finished, merged definition tree.
	Definition map[string]any

	// Page outcome counts.
	Used    int
	Skipped int
	Failed  int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressMerged
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Slug      string
	Title     string
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls the site rooted at startURL and returns the merged
// definition.
//
// Pages are processed strictly sequentially in navigation order: the merge
// is last-write-wins at the method and field level, so processing order
// determines the output and must stay fixed. Failures on the start page
// abort the run (there is no page list without it); failures on any
// reference page are reported through progress and the crawl continues.
func (c *Crawler) Run(ctx context.Context, startURL string, progress ProgressFunc) (*Result, error) {
	start, err := c.Props.FetchProps(ctx, startURL)
	if err != nil {
		return nil, fmt.Errorf("start page %s: %w", startURL, err)
	}

	nav, err := specstitch.ParseNavigation(start.Props)
	if err != nil {
		return nil, fmt.Errorf("start page %s: %w", startURL, err)
	}

	fragment, ok := specstitch.DefinitionFragment(start.Props)
	if !ok {
		return nil, specstitch.Errorf(specstitch.EINCOMPLETE,
			"start page %s has no %s", startURL, specstitch.DefinitionKey)
	}

	if err := c.writePayload(ctx, start); err != nil {
		return nil, fmt.Errorf("start page payload: %w", err)
	}

	def := specstitch.SeedDefinition(fragment)

	prefix := startURL
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	result := &Result{}
	total := nav.Pages()
	var completed int

	emit(progress, ProgressEvent{Type: ProgressStarted, URL: startURL, Total: total})

	for _, group := range nav.Refs {
		for _, page := range group.Pages {
			completed++
			event := ProgressEvent{
				Slug:      page.Slug,
				Title:     page.Title,
				Completed: completed,
				Total:     total,
			}

			// Slugs marked non-reference in the docs tree belong to
			// grouping pages; fetching them would pull in navigation
			// content, not reference content.
			if nav.NonReference[page.Slug] {
				result.Skipped++
				event.Type = ProgressSkipped
				emit(progress, event)
				continue
			}

			event.URL = prefix + page.Slug
			props, err := c.Props.FetchProps(ctx, event.URL)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if specstitch.ErrorCode(err) == specstitch.ENOTFOUND {
					result.Skipped++
					event.Type = ProgressSkipped
				} else {
					result.Failed++
					event.Type = ProgressFailed
					event.Err = err
				}
				emit(progress, event)
				continue
			}

			fragment, ok := specstitch.DefinitionFragment(props.Props)
			if !ok {
				result.Skipped++
				event.Type = ProgressSkipped
				emit(progress, event)
				continue
			}

			if err := c.writePayload(ctx, props); err != nil {
				result.Failed++
				event.Type = ProgressFailed
				event.Err = err
				emit(progress, event)
				continue
			}

			def = specstitch.MergeDefinition(def, fragment)
			result.Used++
			event.Type = ProgressMerged
			emit(progress, event)
		}
	}

	specstitch.StripBookkeeping(def)
	result.Definition = def

	if c.Writer != nil {
		if err := c.Writer.WriteDefinition(ctx, def); err != nil {
			return nil, fmt.Errorf("write definition: %w", err)
		}
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return result, nil
}

func (c *Crawler) writePayload(ctx context.Context, page *specstitch.PageProps) error {
	if c.Writer == nil {
		return nil
	}
	return c.Writer.WritePayload(ctx, page)
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
