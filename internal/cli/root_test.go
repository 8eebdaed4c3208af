// Package cli tests root command structure, flags, and exit codes for relnotes.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, flags, exit-codes

package cli

import (
	"errors"
	"testing"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	assert.Equal(t, "relnotes", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "github.com")
	assert.Contains(t, cmd.Example, "relnotes --range v1.2.0..HEAD")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

func TestRootCmd_Flags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	local := []string{
		"range", "repo", "template-file", "rules-file", "title", "version", "date",
		"output", "include-merges", "include-version-bump-commits",
		"include-doc-structure-commits", "include-dev-docs-add-commits",
		"include-non-functional-commits", "include-all-categories", "empty-value",
		"print-placeholders", "format", "backend", "no-progress",
	}
	for _, name := range local {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s should exist", name)
	}

	for _, name := range []string{"config", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag --%s should exist", name)
	}

	assert.Equal(t, "Release Notes / 发布说明", cmd.Flags().Lookup("title").DefValue)
	assert.Equal(t, "- None / 无", cmd.Flags().Lookup("empty-value").DefValue)
	assert.Equal(t, ".", cmd.Flags().Lookup("repo").DefValue)
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["placeholders"])
	assert.True(t, names["config"])
	assert.True(t, names["doctor"])

	groupIDs := make(map[string]bool)
	for _, g := range cmd.Groups() {
		groupIDs[g.ID] = true
	}
	assert.True(t, groupIDs[GroupGettingStarted])
	assert.True(t, groupIDs[GroupConfiguration])
}

func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
		want map[string]any
	}{
		"nothing changed": {
			args: []string{"--range", "a..b"},
			want: map[string]any{},
		},
		"strings and bools": {
			args: []string{"--range", "a..b", "--title", "T", "--include-merges", "--format", "json", "--debug"},
			want: map[string]any{"title": "T", "include_merges": true, "format": "json", "debug": true},
		},
		"explicit false": {
			args: []string{"--include-non-functional-commits=false"},
			want: map[string]any{"include_non_functional_commits": false},
		},
		"non-config flags ignored": {
			args: []string{"--print-placeholders", "--config", "x.yml"},
			want: map[string]any{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmd()
			flags := cmd.Flags()
			flags.AddFlagSet(cmd.PersistentFlags())
			require.NoError(t, flags.Parse(tt.args))
			assert.Equal(t, tt.want, flagOverrides(flags))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":     {err: nil, want: ExitSuccess},
		"exit error":    {err: NewExitError(3), want: 3},
		"cli error":     {err: clierrors.MissingRange(), want: ExitFailure},
		"generic error": {err: errors.New("boom"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}

	assert.Equal(t, "exit code 3", NewExitError(3).Error())
}
