// Package specstitch reconstructs a complete OpenAPI definition from a
// ReadMe-hosted documentation site. It crawls the site's reference pages,
// extracts the server-side-rendered props payload embedded in each page,
// recovers payloads that were truncated in transit, and merges the
// per-page definition fragments into a single tree.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package specstitch
