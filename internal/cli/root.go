// Package cli implements the relnotes command tree. The root command renders
// release notes for a commit range; subcommands print build information,
// the placeholder list, and the effective configuration.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/filter"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command group IDs shown in help output.
const (
	GroupGettingStarted = "getting-started"
	GroupConfiguration  = "configuration"
)

// Flags that steer a run but are not configuration keys.
const (
	flagRange             = "range"
	flagConfig            = "config"
	flagPrintPlaceholders = "print-placeholders"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relnotes",
		Short: "Generate categorized release notes from a git commit range",
		Long: `relnotes turns the commits of a git revision range into release notes.

Commits are classified by their Conventional Commit type ("feat(api)!: ...")
or bracket tag ("[fix] ..."), noise is filtered out (version bumps, document
structure edits, dev-docs additions, docs/tooling-only changes), and the
result fills the {{PLACEHOLDERS}} of a Markdown template.

Source: https://github.com/ariel-frischer/relnotes`,
		Example: `  # Notes since the last tag
  relnotes --range v1.2.0..HEAD --version v1.3.0

  # Write to a file with a custom template
  relnotes --range v1.2.0..v1.3.0 --template-file RELEASE_TEMPLATE.md --output RELEASE.md

  # Machine-readable output for CI
  relnotes --range v1.2.0..HEAD --format json

  # List the placeholders a template can use
  relnotes --print-placeholders`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	cmd.PersistentFlags().String(flagConfig, "", "Config file (default: .relnotes.yml, then ~/.config/relnotes/config.yml)")
	cmd.PersistentFlags().Bool("debug", false, "Print debug trace to stderr")

	f := cmd.Flags()
	f.String(flagRange, "", "Git revision range, e.g. v1.2.0..HEAD (required)")
	f.String("repo", ".", "Repository path")
	f.String("template-file", "", "Markdown template with {{PLACEHOLDERS}} (default: built-in)")
	f.String("rules-file", "", "File whose content fills {{RULES}}")
	f.String("title", notes.DefaultTitle, "Document title")
	f.String("version", "", "Release version label")
	f.String("date", "", "Release date text (default: today as YYYY-MM-DD)")
	f.StringP("output", "o", "", "Output file (default: stdout)")
	f.Bool("include-merges", false, "Include merge commits")
	f.Bool("include-version-bump-commits", false, "Keep version bump and release commits")
	f.Bool("include-doc-structure-commits", false, "Keep document structure commits")
	f.Bool("include-dev-docs-add-commits", false, "Keep commits that only add dev-docs files")
	f.Bool("include-non-functional-commits", false, "Keep docs/tooling-only commits")
	f.Bool("include-all-categories", false, "Keep every category, not only features, fixes and breaking changes")
	f.String("empty-value", notes.DefaultEmptyValue, "Text rendered for empty sections")
	f.Bool(flagPrintPlaceholders, false, "Print the supported placeholders and exit")
	f.String("format", notes.FormatMarkdown, "Output format: "+strings.Join(notes.Formats(), ", "))
	f.String("backend", git.BackendCLI, "Commit source: "+strings.Join(git.Backends(), ", "))
	f.Bool("no-progress", false, "Disable the progress spinner")

	cmd.AddCommand(newVersionCmd(), newPlaceholdersCmd(), newConfigCmd(), newDoctorCmd())
	return cmd
}

// Execute runs the root command. Errors are printed once, formatted, to
// stderr; the returned error only signals a non-zero exit. An ExitError has
// already reported itself and is not printed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			clierrors.FprintAny(rootCmd.ErrOrStderr(), err)
		}
		return err
	}
	return nil
}

// flagOverrides returns the changed flags that name configuration keys,
// keyed by config key ("include-merges" -> "include_merges").
func flagOverrides(flags *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		schema, err := config.GetKeySchema(key)
		if err != nil {
			return
		}
		if schema.Type == config.TypeBool {
			v, _ := flags.GetBool(f.Name)
			overrides[key] = v
			return
		}
		overrides[key] = f.Value.String()
	})
	return overrides
}

// loadConfig resolves configuration for cmd: files, environment, then its changed flags.
func loadConfig(cmd *cobra.Command) (*config.Loaded, error) {
	configFile, _ := cmd.Flags().GetString(flagConfig)

	loaded, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  flagOverrides(cmd.Flags()),
	})
	if err != nil {
		if config.IsValueError(err) {
			return nil, clierrors.InvalidConfig(err)
		}
		return nil, clierrors.ConfigLoadError(err)
	}

	if loaded.Debug {
		enableDebug(cmd.ErrOrStderr())
	}
	return loaded, nil
}

// enableDebug routes the git and filter debug hooks to w.
func enableDebug(w io.Writer) {
	logger := func(format string, args ...any) {
		fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
	git.SetDebugLogger(logger)
	filter.SetDebugLogger(logger)
	logger("%s", build.Info())
}
