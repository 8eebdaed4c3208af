// Package notes turns filtered commits into release-note text.
//
// This package implements:
//   - aggregation of kept commits into per-category bullet sections
//   - the cross-cutting sections (AUTHORS, BREAKING_CHANGES, COMMITS_BULLETS,
//     COMMITS_RAW) and scalar metadata placeholders
//   - flat, single-pass {{NAME}} template substitution
//   - YAML/JSON reports of the same values for pipelines
//
// Substitution is intentionally minimal: no conditionals, loops, escaping or
// nested templates. Unknown placeholders are left in the output verbatim.
package notes
