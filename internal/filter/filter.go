// Package filter decides which commits make it into the release notes.
//
// Four exclusion rules drop noise: version bumps, documentation
// restructuring, dev-docs-only additions and non-functional (docs/tooling)
// changes. Each rule can be switched off with its Include* option. Commits
// that survive are then curated: only features, fixes and breaking changes
// are kept unless IncludeAllCategories is set.
//
// File changes are fetched lazily through a ChangeSource, only for commits
// that survive the subject-only rules.
package filter

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/classify"
	"github.com/ariel-frischer/relnotes/internal/commit"
)

// Rule names reported in decisions.
const (
	RuleVersionBump   = "version-bump"
	RuleDocStructure  = "doc-structure"
	RuleDevDocsAdd    = "dev-docs-add"
	RuleNonFunctional = "non-functional"
	RuleCategory      = "category"
)

// debugLogger logs filter decisions when set. No-op by default.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for filter decisions.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options toggles the exclusion rules. The zero value excludes everything
// the rules match and keeps only features, fixes and breaking changes.
type Options struct {
	IncludeVersionBump   bool
	IncludeDocStructure  bool
	IncludeDevDocsAdd    bool
	IncludeNonFunctional bool
	IncludeAllCategories bool
}

// ChangeSource returns the files touched by a commit.
type ChangeSource interface {
	FileChanges(ctx context.Context, hash string) ([]commit.FileChange, error)
}

// Rule is one named exclusion predicate.
type Rule struct {
	Name string
	// NeedsChanges marks rules that inspect file changes.
	NeedsChanges bool
	// Excludes reports whether the commit should be dropped.
	Excludes func(c commit.Commit, changes []commit.FileChange) bool
	// Disabled reports whether the options turn the rule off.
	Disabled func(opts Options) bool
}

// Rules lists the exclusion rules in evaluation order. Subject-only rules
// come first so file changes are fetched only when needed.
var Rules = []Rule{
	{
		Name: RuleVersionBump,
		Excludes: func(c commit.Commit, _ []commit.FileChange) bool {
			return IsVersionBump(c.Subject)
		},
		Disabled: func(o Options) bool { return o.IncludeVersionBump },
	},
	{
		Name: RuleDocStructure,
		Excludes: func(c commit.Commit, _ []commit.FileChange) bool {
			return IsDocStructure(c.Subject)
		},
		Disabled: func(o Options) bool { return o.IncludeDocStructure },
	},
	{
		Name:         RuleDevDocsAdd,
		NeedsChanges: true,
		Excludes: func(_ commit.Commit, changes []commit.FileChange) bool {
			return IsDevDocsAdd(changes)
		},
		Disabled: func(o Options) bool { return o.IncludeDevDocsAdd },
	},
	{
		Name:         RuleNonFunctional,
		NeedsChanges: true,
		Excludes: func(c commit.Commit, changes []commit.FileChange) bool {
			return IsNonFunctional(c.Subject, changes)
		},
		Disabled: func(o Options) bool { return o.IncludeNonFunctional },
	},
}

// Decision records what happened to one commit.
type Decision struct {
	Commit   commit.Commit     `json:"commit" yaml:"commit"`
	Category classify.Category `json:"category" yaml:"category"`
	Breaking bool              `json:"breaking" yaml:"breaking"`
	// ExcludedBy names the rule that dropped the commit, empty when kept.
	ExcludedBy string `json:"excluded_by,omitempty" yaml:"excluded_by,omitempty"`
}

// Kept reports whether the commit survived filtering.
func (d Decision) Kept() bool {
	return d.ExcludedBy == ""
}

// ShouldInclude applies every active rule and the category curation to a
// commit whose file changes are already known.
func ShouldInclude(c commit.Commit, changes []commit.FileChange, opts Options) bool {
	if excludedBy(c, changes, opts, false) != "" {
		return false
	}
	if excludedBy(c, changes, opts, true) != "" {
		return false
	}
	return curate(c, opts).Kept()
}

// Filter runs commits through the rules, fetching file changes on demand.
type Filter struct {
	Options Options
	Source  ChangeSource
	// OnFetch, when set, is called before each file-change lookup with the
	// 1-based index of the commit and the total number of commits.
	OnFetch func(index, total int, c commit.Commit)
}

// New creates a filter backed by the given change source.
func New(source ChangeSource, opts Options) *Filter {
	return &Filter{Options: opts, Source: source}
}

// Apply decides every commit in order and returns one Decision per commit.
// A failing file-change lookup aborts the whole run.
func (f *Filter) Apply(ctx context.Context, commits []commit.Commit) ([]Decision, error) {
	decisions := make([]Decision, 0, len(commits))
	needsChanges := f.needsChanges()

	for i, c := range commits {
		if rule := excludedBy(c, nil, f.Options, false); rule != "" {
			decisions = append(decisions, f.drop(c, rule))
			continue
		}

		var changes []commit.FileChange
		if needsChanges {
			if f.OnFetch != nil {
				f.OnFetch(i+1, len(commits), c)
			}
			var err error
			changes, err = f.Source.FileChanges(ctx, c.Hash)
			if err != nil {
				return nil, fmt.Errorf("fetching file changes for %s: %w", c.ShortHash, err)
			}
			logDebug("[filter] %s: %d file changes", c.ShortHash, len(changes))
		}

		if rule := excludedBy(c, changes, f.Options, true); rule != "" {
			decisions = append(decisions, f.drop(c, rule))
			continue
		}

		d := curate(c, f.Options)
		if d.Kept() {
			logDebug("[filter] keep %s %q (%s, breaking=%v)", c.ShortHash, c.Subject, d.Category, d.Breaking)
		} else {
			logDebug("[filter] drop %s %q: %s", c.ShortHash, c.Subject, d.ExcludedBy)
		}
		decisions = append(decisions, d)
	}

	return decisions, nil
}

// KeptCommits returns the commits of the kept decisions, in order.
func KeptCommits(decisions []Decision) []commit.Commit {
	kept := make([]commit.Commit, 0, len(decisions))
	for _, d := range decisions {
		if d.Kept() {
			kept = append(kept, d.Commit)
		}
	}
	return kept
}

// needsChanges reports whether any active rule inspects file changes.
func (f *Filter) needsChanges() bool {
	if f.Source == nil {
		return false
	}
	for _, r := range Rules {
		if r.NeedsChanges && !r.Disabled(f.Options) {
			return true
		}
	}
	return false
}

func (f *Filter) drop(c commit.Commit, rule string) Decision {
	logDebug("[filter] drop %s %q: %s", c.ShortHash, c.Subject, rule)
	category, breaking := classify.Classify(c.Subject, c.Body)
	return Decision{Commit: c, Category: category, Breaking: breaking, ExcludedBy: rule}
}

// excludedBy returns the first active rule of the given kind that drops c.
func excludedBy(c commit.Commit, changes []commit.FileChange, opts Options, changeRules bool) string {
	for _, r := range Rules {
		if r.NeedsChanges != changeRules || r.Disabled(opts) {
			continue
		}
		if r.Excludes(c, changes) {
			return r.Name
		}
	}
	return ""
}

// curate classifies c and drops it unless it is breaking or highlighted.
func curate(c commit.Commit, opts Options) Decision {
	category, breaking := classify.Classify(c.Subject, c.Body)
	d := Decision{Commit: c, Category: category, Breaking: breaking}
	if !opts.IncludeAllCategories && !breaking && !category.IsHighlighted() {
		d.ExcludedBy = RuleCategory
	}
	return d
}
