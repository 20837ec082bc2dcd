package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/specstitch"
	"github.com/fwojciec/specstitch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageHTML embeds a JSON payload the way ReadMe pages do: inside the
// data-initial-props attribute with quotes entity-encoded.
func pageHTML(payload string) string {
	return `<html><head><title>Docs</title></head><body>` +
		`<script id="ssr-props" data-initial-props="` + attrEncode(payload) + `"></script>` +
		`</body></html>`
}

// truncatedPageHTML cuts the document off mid-attribute, before the
// closing quote, the way a cut-off response arrives.
func truncatedPageHTML(payload string) string {
	return `<html><head><title>Docs</title></head><body>` +
		`<script id="ssr-props" data-initial-props="` + attrEncode(payload)
}

func attrEncode(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("decodes a complete payload", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		got, err := e.Extract(pageHTML(`{"oasDefinition":{"openapi":"3.0.0"},"lang":"en"}`))

		require.NoError(t, err)
		assert.False(t, got.Truncated)
		assert.Equal(t, "en", got.Props["lang"])
		assert.Equal(t, map[string]any{"openapi": "3.0.0"}, got.Props["oasDefinition"])
		assert.JSONEq(t, `{"oasDefinition":{"openapi":"3.0.0"},"lang":"en"}`, got.Raw)
	})

	t.Run("recovers a payload cut off mid-value", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		got, err := e.Extract(truncatedPageHTML(
			`{"oasDefinition":{"openapi":"3.0.0"},"lang":"en","partial":"cut her`))

		require.NoError(t, err)
		assert.True(t, got.Truncated)
		assert.Equal(t, map[string]any{
			"oasDefinition": map[string]any{"openapi": "3.0.0"},
			"lang":          "en",
		}, got.Props)
	})

	t.Run("missing script tag is an extraction failure", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.Extract(`<html><body><p>no props here</p></body></html>`)

		require.Error(t, err)
		assert.Equal(t, specstitch.EEXTRACT, specstitch.ErrorCode(err))
	})

	t.Run("missing props attribute is an extraction failure", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.Extract(`<html><body><script id="ssr-props"></script></body></html>`)

		require.Error(t, err)
		assert.Equal(t, specstitch.EEXTRACT, specstitch.ErrorCode(err))
	})

	t.Run("recovered payload without the definition fragment is incomplete", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.Extract(truncatedPageHTML(`{"lang":"en","oasDefinition":{"openapi`))

		require.Error(t, err)
		assert.Equal(t, specstitch.EINCOMPLETE, specstitch.ErrorCode(err))
	})

	t.Run("complete but invalid payload is an extraction failure", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.Extract(pageHTML(`not json at all`))

		require.Error(t, err)
		assert.Equal(t, specstitch.EEXTRACT, specstitch.ErrorCode(err))
	})
}
