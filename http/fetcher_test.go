package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/specstitch"
	sshttp "github.com/fwojciec/specstitch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := sshttp.NewFetcher(sshttp.WithRequestsPerSecond(1000))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("maps 404 to ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		fetcher := sshttp.NewFetcher(sshttp.WithRequestsPerSecond(1000))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, specstitch.ENOTFOUND, specstitch.ErrorCode(err))
	})

	t.Run("maps other non-200 responses to EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := sshttp.NewFetcher(sshttp.WithRequestsPerSecond(1000))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, specstitch.EUNAVAILABLE, specstitch.ErrorCode(err))
		assert.Contains(t, specstitch.ErrorMessage(err), "502")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := sshttp.NewFetcher(
			sshttp.WithTimeout(10*time.Millisecond),
			sshttp.WithRequestsPerSecond(1000),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := sshttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("paces successive requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := sshttp.NewFetcher(sshttp.WithRequestsPerSecond(20))
		defer fetcher.Close()

		begin := time.Now()
		for range 3 {
			_, err := fetcher.Fetch(context.Background(), server.URL)
			require.NoError(t, err)
		}

		// At 20 rps with burst 1, the second and third requests each wait
		// ~50ms behind the limiter.
		assert.GreaterOrEqual(t, time.Since(begin), 80*time.Millisecond)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := sshttp.NewFetcher(
			sshttp.WithTimeout(100*time.Millisecond),
			sshttp.WithRequestsPerSecond(1000),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, specstitch.EUNAVAILABLE, specstitch.ErrorCode(err))
	})
}
