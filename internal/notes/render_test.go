// Package notes tests flat template substitution.
// Related: internal/notes/render.go
// Tags: notes, render, template, placeholders

package notes

import (
	"testing"

	"github.com/ariel-frischer/relnotes/internal/commit"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Parallel()

	values := Values{Title: "Notes", "FEATURES": "- a (1234567)"}

	tests := map[string]struct {
		template string
		want     string
	}{
		"no placeholders is unchanged": {
			template: "# Plain text\n\nNothing to see.",
			want:     "# Plain text\n\nNothing to see.",
		},
		"unknown placeholder left verbatim": {
			template: "{{UNKNOWN}} and {{features}}",
			want:     "{{UNKNOWN}} and {{features}}",
		},
		"every occurrence replaced": {
			template: "{{TITLE}} / {{TITLE}}",
			want:     "Notes / Notes",
		},
		"section replaced": {
			template: "## Features\n{{FEATURES}}\n",
			want:     "## Features\n- a (1234567)\n",
		},
		"single braces untouched": {
			template: "{TITLE} {{ TITLE }}",
			want:     "{TITLE} {{ TITLE }}",
		},
		"empty template": {
			template: "",
			want:     "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.template, values))
		})
	}
}

func TestRender_NoRecursiveExpansion(t *testing.T) {
	t.Parallel()

	values := Values{Title: "{{VERSION}}", Version: "1.0.0"}
	assert.Equal(t, "{{VERSION}} 1.0.0", Render("{{TITLE}} {{VERSION}}", values))
}

func TestRender_NilValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{{TITLE}}", Render("{{TITLE}}", nil))
}

func TestRender_DefaultTemplateEndToEnd(t *testing.T) {
	t.Parallel()

	commits := []commit.Commit{
		commit.New("aaa1111000", "Alice", "feat: add X", ""),
		commit.New("bbb2222000", "Bob", "fix: correct Y", ""),
	}
	values := Build(commits, Meta{
		Title:   DefaultTitle,
		Date:    "2026-10-19",
		Version: "1.2.0",
		Range:   "v1.1.0..HEAD",
	})

	out := Render(DefaultTemplate, values)

	assert.Contains(t, out, "# Release Notes / 发布说明")
	assert.Contains(t, out, "Commit range / 提交范围: `v1.1.0..HEAD`")
	assert.Contains(t, out, "Total commits / 提交数: 2")
	assert.Contains(t, out, "## Features / 功能\n- feat: add X (aaa1111)\n")
	assert.Contains(t, out, "## Fixes / 修复\n- fix: correct Y (bbb2222)\n")
	assert.Contains(t, out, "## Breaking Changes / 破坏性变更\n"+DefaultEmptyValue+"\n")
	assert.Empty(t, Unresolved(out))
}

func TestUnresolved(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []string
	}{
		"none":          {text: "plain", want: nil},
		"one":           {text: "a {{FOO}} b", want: []string{"FOO"}},
		"deduplicated":  {text: "{{FOO}}{{BAR}}{{FOO}}", want: []string{"FOO", "BAR"}},
		"unterminated":  {text: "{{FOO", want: nil},
		"spaces ignore": {text: "{{ FOO }}", want: nil},
		"empty name":    {text: "{{}}", want: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Unresolved(tt.text))
		})
	}
}
