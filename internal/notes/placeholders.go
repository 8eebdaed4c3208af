package notes

import "github.com/ariel-frischer/relnotes/internal/classify"

// Scalar placeholder names.
const (
	Title       = "TITLE"
	Date        = "DATE"
	Version     = "VERSION"
	Range       = "RANGE"
	CommitCount = "COMMIT_COUNT"
	Authors     = "AUTHORS"
	Rules       = "RULES"
)

// Synthetic section names.
const (
	BreakingChanges = "BREAKING_CHANGES"
	CommitsBullets  = "COMMITS_BULLETS"
	CommitsRaw      = "COMMITS_RAW"
)

// DefaultEmptyValue is rendered for any section without entries.
const DefaultEmptyValue = "- None / 无"

// DefaultTitle is used for {{TITLE}} when none is given.
const DefaultTitle = "Release Notes / 发布说明"

// DefaultTemplate is the built-in markdown template.
const DefaultTemplate = `# {{TITLE}}

Release date / 发布日期: {{DATE}}
Version / 版本: {{VERSION}}
Commit range / 提交范围: ` + "`{{RANGE}}`" + `
Total commits / 提交数: {{COMMIT_COUNT}}

## Features / 功能
{{FEATURES}}

## Fixes / 修复
{{FIXES}}

## Breaking Changes / 破坏性变更
{{BREAKING_CHANGES}}
`

// Placeholders returns every recognized placeholder name in display order.
func Placeholders() []string {
	names := []string{Title, Date, Version, Range, CommitCount, Authors, Rules}
	for _, c := range classify.Categories() {
		if c == classify.Others {
			continue
		}
		names = append(names, c.String())
	}
	return append(names, BreakingChanges, classify.Others.String(), CommitsBullets, CommitsRaw)
}

// Token returns the template token for a placeholder name.
func Token(name string) string {
	return "{{" + name + "}}"
}
