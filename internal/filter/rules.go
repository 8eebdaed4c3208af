package filter

import (
	"regexp"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/commit"
)

// RE2's \b only knows ASCII word characters, so "修复README" would have a
// boundary between 复 and R. These boundaries count every Unicode letter,
// digit and underscore as part of a word instead.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
	nonWord   = `[^\p{L}\p{N}_]`
	space     = `[\s\p{Z}]`
	digits    = `\p{Nd}+`
)

var (
	versionBumpRE = regexp.MustCompile(`(?i)` +
		wordStart + `bump(?:ing)?` + space + `+version` + wordEnd + `|` +
		wordStart + `version` + space + `+bump` + wordEnd)

	// "release", a separator, then a version number starting a new word.
	releaseTagRE = regexp.MustCompile(`(?i)` +
		wordStart + `release` + nonWord + `(?:.*` + nonWord + `)?` +
		`v?` + digits + `\.` + digits + `(?:\.` + digits + `)?` + wordEnd)

	nonFunctionalSubjectRE = regexp.MustCompile(`(?i)` +
		wordStart + `(?:readme|docs?|documentation|changelog|release notes?|prettier|architecture)` + wordEnd +
		`|openai\.ya?ml|文档|架构文档`)
)

// docStructureKeywords mark commits that only reorganize documentation.
var docStructureKeywords = []string{
	"doc structure",
	"document structure",
	"documentation structure",
	"restructure docs",
	"docs restructure",
	"文档结构",
	"文档整理",
	"文档重构",
}

// DevDocsPrefix is the staging area for in-progress design documents.
const DevDocsPrefix = "dev-docs/"

// devDocsCompanionPrefixes may accompany a dev-docs addition without making
// the commit functional.
var devDocsCompanionPrefixes = []string{
	DevDocsPrefix,
	"documents/",
	".codex/",
}

// Doc-or-tooling path tables, matched against the lowercased path.
var (
	docToolingPrefixes = []string{
		"dev-docs/",
		"documents/",
		".codex/",
		".github/",
		"docs/",
		"doc/",
	}
	docToolingExact = map[string]bool{
		"readme.md": true,
		"agents.md": true,
		"license":   true,
	}
	docToolingSuffixes = []string{".md", ".adoc", ".rst", ".txt"}
)

// IsVersionBump reports whether a subject announces a version bump or release.
func IsVersionBump(subject string) bool {
	return versionBumpRE.MatchString(subject) || releaseTagRE.MatchString(subject)
}

// IsDocStructure reports whether a subject describes a documentation reshuffle.
func IsDocStructure(subject string) bool {
	lower := strings.ToLower(subject)
	for _, keyword := range docStructureKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// IsDevDocsAdd reports whether a commit adds, moves or copies files into
// dev-docs/ and touches nothing outside the doc staging areas.
// A commit without recorded changes never matches.
func IsDevDocsAdd(changes []commit.FileChange) bool {
	if len(changes) == 0 {
		return false
	}

	hasAddOrMove := false
	for _, ch := range changes {
		if !hasAnyPrefix(ch.Path, devDocsCompanionPrefixes) {
			return false
		}
		if strings.HasPrefix(ch.Path, DevDocsPrefix) {
			switch ch.StatusCode() {
			case "A", "R", "C":
				hasAddOrMove = true
			}
		}
	}
	return hasAddOrMove
}

// IsNonFunctional reports whether a commit only concerns docs or tooling,
// either by its subject or because every changed path is doc-or-tooling.
// Without recorded changes only the subject is considered.
func IsNonFunctional(subject string, changes []commit.FileChange) bool {
	if IsNonFunctionalSubject(subject) {
		return true
	}
	if len(changes) == 0 {
		return false
	}
	for _, ch := range changes {
		if !IsDocOrToolingPath(ch.Path) {
			return false
		}
	}
	return true
}

// IsNonFunctionalSubject reports whether a subject references docs, readmes,
// changelogs, formatting or architecture notes.
func IsNonFunctionalSubject(subject string) bool {
	return nonFunctionalSubjectRE.MatchString(subject)
}

// IsDocOrToolingPath classifies a path by prefix, exact name or suffix.
func IsDocOrToolingPath(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	if normalized == "" {
		return false
	}
	if hasAnyPrefix(normalized, docToolingPrefixes) {
		return true
	}
	if docToolingExact[normalized] {
		return true
	}
	for _, suffix := range docToolingSuffixes {
		if strings.HasSuffix(normalized, suffix) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
