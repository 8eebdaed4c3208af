// Package classify tests commit categorization and breaking-change detection.
// Related: internal/classify/classify.go, internal/classify/category.go
// Tags: classify, conventional-commits, breaking-change

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject      string
		body         string
		wantCategory Category
		wantBreaking bool
	}{
		"conventional feat": {
			subject:      "feat: add X",
			wantCategory: Features,
		},
		"conventional fix with scope": {
			subject:      "fix(parser): correct Y",
			wantCategory: Fixes,
		},
		"type is case-insensitive": {
			subject:      "FEAT: shout",
			wantCategory: Features,
		},
		"bang marks breaking": {
			subject:      "refactor(api)!: drop v1 endpoints",
			wantCategory: Refactor,
			wantBreaking: true,
		},
		"bang without scope": {
			subject:      "feat!: new config format",
			wantCategory: Features,
			wantBreaking: true,
		},
		"body marker marks breaking": {
			subject:      "perf: faster cache",
			body:         "Details\n\nBREAKING CHANGE: cache format changed",
			wantCategory: Perf,
			wantBreaking: true,
		},
		"body marker is case-insensitive": {
			subject:      "chore: deps",
			body:         "breaking change: node 20 required",
			wantCategory: Chore,
			wantBreaking: true,
		},
		"unknown conventional type": {
			subject:      "wip: half done",
			wantCategory: Others,
		},
		"bracket known type": {
			subject:      "[fix] null pointer on startup",
			wantCategory: Fixes,
		},
		"bracket type is case-insensitive": {
			subject:      "[Docs] typo",
			wantCategory: Docs,
		},
		"bracket unknown type": {
			subject:      "[misc] cleanup",
			wantCategory: Others,
		},
		"bracket breaking only via body": {
			subject:      "[feat] new api",
			body:         "BREAKING CHANGE: old api removed",
			wantCategory: Features,
			wantBreaking: true,
		},
		"bracket with bang is not breaking": {
			subject:      "[feat]! new api",
			wantCategory: Features,
		},
		"plain subject": {
			subject:      "Update dependencies",
			wantCategory: Others,
		},
		"plain subject breaking via body": {
			subject:      "Rewrite storage",
			body:         "BREAKING CHANGE",
			wantCategory: Others,
			wantBreaking: true,
		},
		"first colon decides the type": {
			subject:      "Merge: feat: add X",
			wantCategory: Others,
		},
		"convention not at start does not match": {
			subject:      "Refs #12 feat: add X",
			wantCategory: Others,
		},
		"missing summary does not match": {
			subject:      "feat:",
			wantCategory: Others,
		},
		"type with digits does not match": {
			subject:      "v2: new release line",
			wantCategory: Others,
		},
		"revert wraps another subject": {
			subject:      "revert: feat: add X",
			wantCategory: Revert,
		},
		"empty subject": {
			subject:      "",
			wantCategory: Others,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			category, breaking := Classify(tt.subject, tt.body)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantBreaking, breaking)
		})
	}
}

func TestClassify_BangAlwaysBreaking(t *testing.T) {
	t.Parallel()

	bodies := []string{"", "plain body", "BREAKING CHANGE: also here"}
	for typ, want := range typeLabels {
		for _, body := range bodies {
			category, breaking := Classify(typ+"(scope)!: summary", body)
			assert.Equal(t, want, category, "type %s", typ)
			assert.True(t, breaking, "type %s body %q", typ, body)
		}
	}
}

func TestForType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  Category
	}{
		"feat":     {input: "feat", want: Features},
		"test":     {input: "test", want: Tests},
		"ci upper": {input: "CI", want: CI},
		"style":    {input: "style", want: Style},
		"build":    {input: "build", want: Build},
		"unknown":  {input: "feature", want: Others},
		"empty":    {input: "", want: Others},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ForType(tt.input))
		})
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	cats := Categories()
	assert.Len(t, cats, 12)
	assert.Equal(t, Features, cats[0])
	assert.Equal(t, Others, cats[len(cats)-1])

	for _, c := range typeLabels {
		assert.Contains(t, cats, c)
	}
}

func TestConvention(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "conventional", Convention("feat(x): y"))
	assert.Equal(t, "bracket", Convention("[fix] y"))
	assert.Equal(t, "", Convention("just words"))
}

func TestIsHighlighted(t *testing.T) {
	t.Parallel()

	assert.True(t, Features.IsHighlighted())
	assert.True(t, Fixes.IsHighlighted())
	assert.False(t, Refactor.IsHighlighted())
	assert.False(t, Others.IsHighlighted())
}
