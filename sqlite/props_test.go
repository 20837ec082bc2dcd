package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/specstitch"
	"github.com/fwojciec/specstitch/mock"
	"github.com/fwojciec/specstitch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropsService_FetchProps(t *testing.T) {
	t.Parallel()

	t.Run("fetches through on a cold cache and serves hits after", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)

		var calls int
		inner := &mock.PropsService{
			FetchPropsFn: func(_ context.Context, url string) (*specstitch.PageProps, error) {
				calls++
				return &specstitch.PageProps{
					URL:   url,
					Props: map[string]any{"oasDefinition": map[string]any{"openapi": "3.0.0"}},
					Raw:   `{"oasDefinition":{"openapi":"3.0.0"}}`,
				}, nil
			},
		}
		svc := sqlite.NewPropsService(db, inner)
		ctx := context.Background()

		first, err := svc.FetchProps(ctx, "https://example.com/p")
		require.NoError(t, err)

		second, err := svc.FetchProps(ctx, "https://example.com/p")
		require.NoError(t, err)

		assert.Equal(t, 1, calls, "second fetch must be served from cache")
		assert.Equal(t, first.Props, second.Props)
		assert.Equal(t, "https://example.com/p", second.URL)
	})

	t.Run("preserves the truncated flag across the cache", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)

		inner := &mock.PropsService{
			FetchPropsFn: func(_ context.Context, url string) (*specstitch.PageProps, error) {
				return &specstitch.PageProps{
					URL:       url,
					Props:     map[string]any{"oasDefinition": map[string]any{"openapi": "3.0.0"}},
					Raw:       `{"oasDefinition":{"openapi":"3.0.0"},"cut`,
					Truncated: true,
				}, nil
			},
		}
		svc := sqlite.NewPropsService(db, inner)
		ctx := context.Background()

		_, err := svc.FetchProps(ctx, "https://example.com/p")
		require.NoError(t, err)

		cached, err := svc.FetchProps(ctx, "https://example.com/p")
		require.NoError(t, err)
		assert.True(t, cached.Truncated)
		assert.JSONEq(t, `{"oasDefinition":{"openapi":"3.0.0"}}`, cached.Raw,
			"cache stores the recovered object, not the cut-off wire text")
	})

	t.Run("caches 404 as a permanent negative result", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)

		var calls int
		inner := &mock.PropsService{
			FetchPropsFn: func(_ context.Context, url string) (*specstitch.PageProps, error) {
				calls++
				return nil, specstitch.Errorf(specstitch.ENOTFOUND, "page not found: %s", url)
			},
		}
		svc := sqlite.NewPropsService(db, inner)
		ctx := context.Background()

		_, err := svc.FetchProps(ctx, "https://example.com/gone")
		require.Error(t, err)
		assert.Equal(t, specstitch.ENOTFOUND, specstitch.ErrorCode(err))

		_, err = svc.FetchProps(ctx, "https://example.com/gone")
		require.Error(t, err)
		assert.Equal(t, specstitch.ENOTFOUND, specstitch.ErrorCode(err))
		assert.Equal(t, 1, calls, "negative result must not be refetched")
	})

	t.Run("does not cache transient failures", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)

		var calls int
		inner := &mock.PropsService{
			FetchPropsFn: func(_ context.Context, url string) (*specstitch.PageProps, error) {
				calls++
				if calls == 1 {
					return nil, specstitch.Errorf(specstitch.EUNAVAILABLE, "HTTP 502 for %s", url)
				}
				return &specstitch.PageProps{URL: url, Props: map[string]any{"ok": true}}, nil
			},
		}
		svc := sqlite.NewPropsService(db, inner)
		ctx := context.Background()

		_, err := svc.FetchProps(ctx, "https://example.com/flaky")
		require.Error(t, err)

		got, err := svc.FetchProps(ctx, "https://example.com/flaky")
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "a transient failure must be retried on the next call")
		assert.Equal(t, true, got.Props["ok"])
	})
}
