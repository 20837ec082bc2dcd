package specstitch

import "maps"

// DefinitionKey is the top-level props key holding a page's definition
// fragment.
const DefinitionKey = "oasDefinition"

// Internal ReadMe bookkeeping keys stripped from the finished tree.
const (
	vendorKey   = "x-readme-fauxas"
	recordIDKey = "_id"
)

// DefinitionFragment returns the definition fragment embedded in props.
// The second return value is false when the fragment is missing or empty,
// in which case the page contributes nothing to the merge.
func DefinitionFragment(props map[string]any) (map[string]any, bool) {
	frag, ok := props[DefinitionKey].(map[string]any)
	if !ok || len(frag) == 0 {
		return nil, false
	}
	return frag, true
}

// SeedDefinition builds the initial accumulated definition from the start
// page's fragment. The result takes all of the fragment's top-level keys,
// with paths and components reset to empty and then replayed through
// MergeDefinition so the start page contributes through the same rules as
// every subsequent page.
func SeedDefinition(fragment map[string]any) map[string]any {
	result := make(map[string]any, len(fragment)+2)
	maps.Copy(result, fragment)
	result["paths"] = map[string]any{}
	result["components"] = map[string]any{}
	return MergeDefinition(result, fragment)
}

// MergeDefinition merges one page's definition fragment into the
// accumulated result and returns it. The fragment is never mutated; nested
// maps are cloned before insertion so later merges cannot write through
// into it.
//
// Paths merge method-by-method and components merge field-by-field within
// each named component, with the fragment winning on key conflicts. Merge
// order therefore matters: later pages overwrite overlapping methods and
// fields, and callers must keep crawl order fixed for deterministic output.
func MergeDefinition(result, fragment map[string]any) map[string]any {
	if paths, ok := fragment["paths"].(map[string]any); ok {
		dst := section(result, "paths")
		for path, methods := range paths {
			methodMap, ok := methods.(map[string]any)
			if !ok {
				dst[path] = methods
				continue
			}
			existing, ok := dst[path].(map[string]any)
			if !ok {
				dst[path] = maps.Clone(methodMap)
				continue
			}
			maps.Copy(existing, methodMap)
		}
	}

	if components, ok := fragment["components"].(map[string]any); ok {
		dst := section(result, "components")
		for category, members := range components {
			memberMap, ok := members.(map[string]any)
			if !ok {
				dst[category] = members
				continue
			}
			existing, ok := dst[category].(map[string]any)
			if !ok {
				dst[category] = cloneCategory(memberMap)
				continue
			}
			for name, item := range memberMap {
				itemMap, ok := item.(map[string]any)
				if !ok {
					existing[name] = item
					continue
				}
				current, ok := existing[name].(map[string]any)
				if !ok {
					existing[name] = maps.Clone(itemMap)
					continue
				}
				maps.Copy(current, itemMap)
			}
		}
	}

	return result
}

// StripBookkeeping removes the internal bookkeeping keys from the top
// level of a finished definition. Called exactly once, after the last
// merge.
func StripBookkeeping(def map[string]any) {
	delete(def, vendorKey)
	delete(def, recordIDKey)
}

// section returns the named top-level map of result, creating it if
// absent. This keeps the invariant that the accumulated definition always
// carries paths and components sections.
func section(result map[string]any, key string) map[string]any {
	m, ok := result[key].(map[string]any)
	if !ok {
		m = map[string]any{}
		result[key] = m
	}
	return m
}

// cloneCategory copies a component category one member deep, so field-level
// updates on a later merge do not write through into the source fragment.
func cloneCategory(members map[string]any) map[string]any {
	out := make(map[string]any, len(members))
	for name, item := range members {
		if itemMap, ok := item.(map[string]any); ok {
			out[name] = maps.Clone(itemMap)
			continue
		}
		out[name] = item
	}
	return out
}
