package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/relnotes/internal/commit"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/filter"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/spf13/cobra"
)

func runGenerate(cmd *cobra.Command, _ []string) error {
	if printOnly, _ := cmd.Flags().GetBool(flagPrintPlaceholders); printOnly {
		printPlaceholders(cmd.OutOrStdout())
		return nil
	}

	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rangeSpec, _ := cmd.Flags().GetString(flagRange)
	if strings.TrimSpace(rangeSpec) == "" {
		return clierrors.MissingRange()
	}
	if cmd.Flags().Changed("template-file") && loaded.Format != notes.FormatMarkdown {
		return clierrors.InvalidFlagCombination("--template-file with --format "+loaded.Format,
			"Templates only apply to markdown output")
	}

	errOut := cmd.ErrOrStderr()
	return generate(cmd.Context(), generateRequest{
		Config:    loaded.Configuration,
		Range:     rangeSpec,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    errOut,
		Progress:  progress.NewSpinner(errOut, terminalOf(errOut), !loaded.NoProgress),
		NewSource: git.NewSource,
		Now:       time.Now,
	})
}

// generateRequest is everything one run needs, resolved up front.
type generateRequest struct {
	Config    *config.Configuration
	Range     string
	Stdout    io.Writer
	Stderr    io.Writer
	Progress  *progress.Spinner
	NewSource func(backend, repoPath string) (git.Source, error)
	Now       func() time.Time
}

// generate renders the document fully in memory and only then writes it,
// so a failure never leaves partial output behind.
func generate(ctx context.Context, req generateRequest) error {
	cfg := req.Config

	repoPath, err := filepath.Abs(cfg.Repo)
	if err != nil {
		return clierrors.GitNotRepository(cfg.Repo)
	}
	if !git.IsRepository(repoPath) {
		return clierrors.GitNotRepository(repoPath)
	}

	template, err := readTemplate(cfg.TemplateFile)
	if err != nil {
		return err
	}
	rules, err := readRules(cfg.RulesFile)
	if err != nil {
		return err
	}

	source, err := req.NewSource(cfg.Backend, repoPath)
	if err != nil {
		return clierrors.GitCommandFailed(err)
	}

	commits, err := source.Commits(ctx, req.Range, cfg.IncludeMerges)
	if err != nil {
		return clierrors.GitCommandFailed(err)
	}

	decisions, err := runFilter(ctx, source, commits, cfg, req.Progress)
	if err != nil {
		return clierrors.GitCommandFailed(err)
	}
	kept := filter.KeptCommits(decisions)

	date := cfg.Date
	if date == "" {
		date = req.Now().Format(config.DateLayout)
	}
	values := notes.Build(kept, notes.Meta{
		Title:      cfg.Title,
		Date:       date,
		Version:    cfg.Version,
		Range:      req.Range,
		Rules:      rules,
		EmptyValue: cfg.EmptyValue,
	})

	var doc bytes.Buffer
	if cfg.Format == notes.FormatMarkdown {
		rendered := notes.Render(template, values)
		output.PrintUnresolved(req.Stderr, notes.Unresolved(rendered))
		doc.WriteString(rendered)
	} else if err := notes.WriteReport(&doc, notes.Report{Placeholders: values, Commits: decisions}, cfg.Format); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	if cfg.Output == "" {
		if cfg.Format == notes.FormatMarkdown {
			doc.WriteString("\n")
		}
		_, err := req.Stdout.Write(doc.Bytes())
		return err
	}

	if err := atomicWriteToFile(cfg.Output, doc.Bytes()); err != nil {
		return clierrors.FileNotWritable(cfg.Output, err)
	}
	output.PrintSummary(req.Stderr, len(kept), len(commits))
	output.PrintWritten(req.Stderr, cfg.Output)
	return nil
}

// runFilter applies the filter rules, driving the spinner while file
// changes are fetched.
func runFilter(ctx context.Context, source git.Source, commits []commit.Commit, cfg *config.Configuration, spin *progress.Spinner) ([]filter.Decision, error) {
	f := filter.New(source, filter.Options{
		IncludeVersionBump:   cfg.IncludeVersionBump,
		IncludeDocStructure:  cfg.IncludeDocStructure,
		IncludeDevDocsAdd:    cfg.IncludeDevDocsAdd,
		IncludeNonFunctional: cfg.IncludeNonFunctional,
		IncludeAllCategories: cfg.IncludeAllCategories,
	})

	const label = "Inspecting files"
	started := false
	if spin != nil {
		f.OnFetch = func(index, total int, c commit.Commit) {
			if !started {
				spin.Start(label)
				started = true
			}
			spin.Update(index, total, c.ShortHash)
		}
	}

	decisions, err := f.Apply(ctx, commits)
	if started {
		if err != nil {
			spin.Stop(false, "Inspecting files failed")
		} else {
			spin.Stop(true, fmt.Sprintf("Inspected %d commits", len(commits)))
		}
	}
	return decisions, err
}

// readTemplate returns the template file content, or the built-in template.
func readTemplate(path string) (string, error) {
	if path == "" {
		return notes.DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", clierrors.TemplateNotFound(path)
		}
		return "", clierrors.FileReadError(path, err)
	}
	return string(data), nil
}

// readRules returns the trimmed rules file content, or "" without a file.
func readRules(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", clierrors.RulesNotFound(path)
		}
		return "", clierrors.FileReadError(path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// atomicWriteToFile writes data to path using temp file + rename pattern.
// Ensures no partial writes occur on crash.
func atomicWriteToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// terminalOf returns the capabilities of w when it is a file, else none.
func terminalOf(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); ok {
		return progress.DetectTerminalCapabilities(f)
	}
	return progress.TerminalCapabilities{}
}

func printPlaceholders(w io.Writer) {
	fmt.Fprintln(w, strings.Join(notes.Placeholders(), "\n"))
}
