package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/specstitch"
)

// Compile-time interface verification.
var _ specstitch.PropsService = (*PropsService)(nil)

// PropsService decorates another PropsService with a per-URL cache.
//
// A hit returns the cached payload without touching the network, which
// gives the crawler the idempotent repeated-fetch behavior its single-pass
// merge depends on, and lets an interrupted crawl be rerun cheaply. A 404
// is cached as a permanent negative result: once a page is known missing,
// later fetches return ENOTFOUND without a request.
type PropsService struct {
	db    *DB
	inner specstitch.PropsService
}

// NewPropsService creates a PropsService caching inner's results in db.
func NewPropsService(db *DB, inner specstitch.PropsService) *PropsService {
	return &PropsService{db: db, inner: inner}
}

// FetchProps returns the props payload for url, from cache when possible.
func (s *PropsService) FetchProps(ctx context.Context, url string) (*specstitch.PageProps, error) {
	var payload string
	var truncated, notFound bool

	err := s.db.QueryRowContext(ctx, `
		SELECT payload, truncated, not_found
		FROM props_cache
		WHERE url = ?
	`, url).Scan(&payload, &truncated, &notFound)

	switch {
	case err == sql.ErrNoRows:
		return s.fetchAndStore(ctx, url)
	case err != nil:
		return nil, fmt.Errorf("props cache lookup: %w", err)
	case notFound:
		return nil, specstitch.Errorf(specstitch.ENOTFOUND, "page not found (cached): %s", url)
	}

	var props map[string]any
	if err := json.Unmarshal([]byte(payload), &props); err != nil {
		return nil, fmt.Errorf("decode cached props for %s: %w", url, err)
	}

	return &specstitch.PageProps{
		URL:       url,
		Props:     props,
		Raw:       payload,
		Truncated: truncated,
	}, nil
}

// fetchAndStore delegates to the inner service and records the outcome.
// Only terminal outcomes are cached: a decoded payload or a 404. Transient
// failures are passed through uncached so a later run can retry them.
func (s *PropsService) fetchAndStore(ctx context.Context, url string) (*specstitch.PageProps, error) {
	page, err := s.inner.FetchProps(ctx, url)
	if specstitch.ErrorCode(err) == specstitch.ENOTFOUND {
		if storeErr := s.storeNotFound(ctx, url); storeErr != nil {
			return nil, storeErr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	// Cache the canonical re-encoded props rather than the wire payload:
	// for a truncated page the recovered object is complete JSON even
	// though the wire text was not.
	payload, err := json.Marshal(page.Props)
	if err != nil {
		return nil, fmt.Errorf("encode props for %s: %w", url, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO props_cache (url, payload, payload_hash, truncated, not_found, fetched_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, url, string(payload), payloadHash(payload), page.Truncated,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("store props for %s: %w", url, err)
	}

	return page, nil
}

func (s *PropsService) storeNotFound(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO props_cache (url, not_found, fetched_at)
		VALUES (?, 1, ?)
	`, url, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store not-found for %s: %w", url, err)
	}
	return nil
}

// payloadHash computes a short content hash of a payload using xxhash.
func payloadHash(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}
