package notes

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/classify"
	"github.com/ariel-frischer/relnotes/internal/commit"
)

// Values maps placeholder names to their rendered text.
type Values map[string]string

// Meta carries the scalar inputs of a render.
type Meta struct {
	Title   string
	Date    string
	Version string
	Range   string
	// Rules is free text from the rules file, rendered for {{RULES}}.
	Rules string
	// EmptyValue replaces any empty section. DefaultEmptyValue when blank.
	EmptyValue string
}

// Sections holds the bullet lines collected per section before formatting.
type Sections struct {
	ByCategory map[classify.Category][]string
	Breaking   []string
	Bullets    []string
	Raw        []string
	Authors    []string
}

// Collect buckets kept commits into sections. Each commit lands in its
// category, in the global bullet list, and in the breaking list when flagged.
func Collect(commits []commit.Commit) Sections {
	s := Sections{ByCategory: make(map[classify.Category][]string)}
	seen := make(map[string]bool)

	for _, c := range commits {
		line := c.Line()
		s.Bullets = append(s.Bullets, line)

		s.Raw = append(s.Raw, c.Subject)
		if c.Body != "" {
			s.Raw = append(s.Raw, c.Body)
		}

		category, breaking := classify.Classify(c.Subject, c.Body)
		s.ByCategory[category] = append(s.ByCategory[category], line)
		if breaking {
			s.Breaking = append(s.Breaking, line)
		}

		if c.Author != "" && !seen[c.Author] {
			seen[c.Author] = true
			s.Authors = append(s.Authors, c.Author)
		}
	}

	sort.Strings(s.Authors)
	return s
}

// Build aggregates kept commits and formats every placeholder value.
func Build(commits []commit.Commit, meta Meta) Values {
	empty := meta.EmptyValue
	if empty == "" {
		empty = DefaultEmptyValue
	}

	s := Collect(commits)

	values := Values{
		Title:           meta.Title,
		Date:            meta.Date,
		Version:         meta.Version,
		Range:           meta.Range,
		CommitCount:     strconv.Itoa(len(commits)),
		Authors:         orEmpty(strings.Join(s.Authors, ", "), empty),
		Rules:           orEmpty(strings.TrimSpace(meta.Rules), empty),
		CommitsBullets:  ToBullets(s.Bullets, empty),
		CommitsRaw:      orEmpty(strings.Join(s.Raw, "\n\n"), empty),
		BreakingChanges: ToBullets(s.Breaking, empty),
	}

	for _, c := range classify.Categories() {
		values[c.String()] = ToBullets(s.ByCategory[c], empty)
	}

	return values
}

// ToBullets renders lines as "- line" entries, or empty when there are none.
func ToBullets(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(line)
	}
	return b.String()
}

func orEmpty(s, empty string) string {
	if s == "" {
		return empty
	}
	return s
}
