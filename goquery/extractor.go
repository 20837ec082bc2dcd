// Package goquery provides a goquery-based implementation of
// specstitch.Extractor for pulling the server-side-rendered props payload
// out of documentation page HTML.
package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/specstitch"
	"github.com/fwojciec/specstitch/truncjson"
)

// Needles used to detect the props payload and its truncation in the raw
// HTML before parsing. The attribute scan happens on the raw text because
// a truncated document cannot be trusted to parse cleanly.
const (
	tagNeedle  = `id="ssr-props"`
	attrNeedle = `data-initial-props="`
)

// closingRepair completes a document whose props attribute was cut off,
// so the HTML parser can still hand back the surviving attribute prefix.
const closingRepair = `"></script>`

// Ensure Extractor implements specstitch.Extractor at compile time.
var _ specstitch.Extractor = (*Extractor)(nil)

// Extractor locates the ssr-props script tag and decodes its payload.
// Payloads cut off mid-stream are routed through recovery parsing instead
// of failing outright.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the props payload embedded in html.
func (e *Extractor) Extract(html string) (*specstitch.ExtractResult, error) {
	tagStart := strings.Index(html, tagNeedle)
	if tagStart == -1 {
		return nil, specstitch.Errorf(specstitch.EEXTRACT, "%s not found", tagNeedle)
	}

	attrStart := strings.Index(html[tagStart+len(tagNeedle):], attrNeedle)
	if attrStart == -1 {
		return nil, specstitch.Errorf(specstitch.EEXTRACT, "%s not found", attrNeedle)
	}

	// No closing quote after the attribute value opens means the response
	// was cut off mid-payload. Complete the document so the parser yields
	// the surviving prefix.
	valueStart := tagStart + len(tagNeedle) + attrStart + len(attrNeedle)
	truncated := !strings.Contains(html[valueStart:], `"`)
	if truncated {
		html += closingRepair
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, specstitch.Errorf(specstitch.EEXTRACT, "failed to parse HTML: %v", err)
	}

	raw, exists := doc.Find("script#ssr-props").Attr("data-initial-props")
	if !exists {
		return nil, specstitch.Errorf(specstitch.EEXTRACT, "attr data-initial-props missing")
	}

	if truncated {
		props := truncjson.Parse(raw)
		if _, ok := props[specstitch.DefinitionKey]; !ok {
			return nil, specstitch.Errorf(specstitch.EINCOMPLETE,
				"recovered props missing %s", specstitch.DefinitionKey)
		}
		return &specstitch.ExtractResult{Props: props, Raw: raw, Truncated: true}, nil
	}

	var props map[string]any
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, specstitch.Errorf(specstitch.EEXTRACT, "failed to decode props: %v", err)
	}

	return &specstitch.ExtractResult{Props: props, Raw: raw}, nil
}
