// Package classify maps commit messages to release-note categories.
//
// Two subject conventions are recognized, tried in order:
//   - conventional commits: "type(scope)!: summary"
//   - bracket tags: "[type] summary"
//
// Anything else lands in OTHERS. Breaking changes are flagged independently
// of the category, either by the conventional "!" marker or by a
// "BREAKING CHANGE" marker anywhere in the body.
package classify

import "strings"

// Category is a release-note section label.
type Category string

const (
	Features Category = "FEATURES"
	Fixes    Category = "FIXES"
	Perf     Category = "PERF"
	Refactor Category = "REFACTOR"
	Docs     Category = "DOCS"
	Tests    Category = "TESTS"
	Build    Category = "BUILD"
	CI       Category = "CI"
	Chore    Category = "CHORE"
	Style    Category = "STYLE"
	Revert   Category = "REVERT"
	Others   Category = "OTHERS"
)

// typeLabels maps lowercase commit types to categories.
var typeLabels = map[string]Category{
	"feat":     Features,
	"fix":      Fixes,
	"perf":     Perf,
	"refactor": Refactor,
	"docs":     Docs,
	"test":     Tests,
	"build":    Build,
	"ci":       CI,
	"chore":    Chore,
	"style":    Style,
	"revert":   Revert,
}

// Categories returns every category in section order.
func Categories() []Category {
	return []Category{
		Features, Fixes, Perf, Refactor, Docs, Tests,
		Build, CI, Chore, Style, Revert, Others,
	}
}

// ForType returns the category for a commit type, OTHERS when unknown.
// Matching is case-insensitive.
func ForType(commitType string) Category {
	if c, ok := typeLabels[strings.ToLower(commitType)]; ok {
		return c
	}
	return Others
}

// String returns the placeholder name of the category.
func (c Category) String() string {
	return string(c)
}

// IsHighlighted reports whether the category is listed in curated notes
// without a breaking marker.
func (c Category) IsHighlighted() bool {
	return c == Features || c == Fixes
}
