// Package truncjson recovers complete key/value entries from JSON objects
// that were truncated mid-stream, e.g. when a response was cut off before
// the payload finished. It is deliberately best-effort: any entry that
// survived the cut is kept, anything after it is dropped, and no attempt is
// made to repair or validate what was lost.
package truncjson

import (
	"encoding/json"
	"iter"
	"maps"
	"strings"
)

// scanState tracks where the cursor is while scanning object text.
type scanState int

const (
	// stateNormal is outside any string literal.
	stateNormal scanState = iota

	// stateInString is inside a string literal.
	stateInString

	// stateEscape is on the character immediately following a backslash
	// inside a string literal.
	stateEscape
)

// Entries splits content, the interior of a JSON object with the outer
// braces stripped, into its top-level "key": value units. A comma is an
// entry boundary only outside string literals and at zero brace and
// bracket depth. The trailing entry is yielded only if both depth counters
// are zero at end of input, i.e. it is not itself cut off mid-container.
// Entries without a colon are dropped as incomplete keys.
//
// The sequence is a pure function of content and can be ranged over any
// number of times.
func Entries(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		state := stateNormal
		var braceDepth, bracketDepth int
		var start int

		for i := 0; i < len(content); i++ {
			switch state {
			case stateEscape:
				state = stateInString
			case stateInString:
				switch content[i] {
				case '\\':
					state = stateEscape
				case '"':
					state = stateNormal
				}
			case stateNormal:
				switch content[i] {
				case '"':
					state = stateInString
				case '{':
					braceDepth++
				case '}':
					braceDepth--
				case '[':
					bracketDepth++
				case ']':
					bracketDepth--
				case ',':
					if braceDepth == 0 && bracketDepth == 0 {
						if !yieldEntry(yield, content[start:i]) {
							return
						}
						start = i + 1
					}
				}
			}
		}

		if braceDepth == 0 && bracketDepth == 0 {
			yieldEntry(yield, content[start:])
		}
	}
}

// yieldEntry trims and filters a candidate entry before yielding it.
// Returns false when the consumer stopped the iteration.
func yieldEntry(yield func(string) bool, raw string) bool {
	entry := strings.TrimSpace(raw)
	if entry == "" || !strings.Contains(entry, ":") {
		return true
	}
	return yield(entry)
}

// Parse extracts every complete key/value entry from a possibly truncated
// JSON object. Each candidate entry is wrapped back into a single-entry
// object and decoded in isolation; entries that fail to decode are silently
// dropped. Later entries overwrite earlier ones on key collisions.
//
// Callers that require a particular key must check for it themselves;
// Parse never fails, it just returns whatever survived.
func Parse(data string) map[string]any {
	content := strings.TrimSpace(data)
	content = strings.TrimPrefix(content, "{")
	content = strings.TrimSuffix(content, "}")

	result := make(map[string]any)
	for entry := range Entries(content) {
		var decoded map[string]any
		if err := json.Unmarshal([]byte("{"+entry+"}"), &decoded); err != nil {
			continue
		}
		maps.Copy(result, decoded)
	}
	return result
}
