package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/commit"
)

// Runner executes git with args inside dir and returns its stdout.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// CommandError is returned when git exits with a non-zero status.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error returns git's diagnostic output, or a generic message when git
// printed nothing.
func (e *CommandError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return "git command failed"
}

// CLI is a Source backed by the git executable.
type CLI struct {
	RepoPath string
	// Run executes git. Defaults to ExecRunner.
	Run Runner
}

// NewCLI creates a CLI source for the repository at repoPath.
func NewCLI(repoPath string) *CLI {
	return &CLI{RepoPath: repoPath, Run: ExecRunner}
}

// ExecRunner runs `git -C dir args...` and captures stdout and stderr.
func ExecRunner(ctx context.Context, dir string, args ...string) ([]byte, error) {
	full := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{Args: args, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// LogArgs returns the git arguments used to list a range.
func LogArgs(rangeSpec string, includeMerges bool) []string {
	args := []string{"log"}
	if !includeMerges {
		args = append(args, "--no-merges")
	}
	return append(args, rangeSpec, "--pretty=format:"+commit.LogFormat)
}

// ShowArgs returns the git arguments used to list one commit's file changes.
func ShowArgs(hash string) []string {
	return []string{"show", "--name-status", "--pretty=format:", hash}
}

// Commits runs git log over rangeSpec and parses the records.
func (c *CLI) Commits(ctx context.Context, rangeSpec string, includeMerges bool) ([]commit.Commit, error) {
	out, err := c.run(ctx, LogArgs(rangeSpec, includeMerges)...)
	if err != nil {
		return nil, err
	}
	commits := commit.ParseLog(string(out))
	logDebug("[git] Commits(%s): %d commits", rangeSpec, len(commits))
	return commits, nil
}

// FileChanges runs git show --name-status for one commit.
func (c *CLI) FileChanges(ctx context.Context, hash string) ([]commit.FileChange, error) {
	out, err := c.run(ctx, ShowArgs(hash)...)
	if err != nil {
		return nil, err
	}
	return commit.ParseNameStatus(string(out)), nil
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	run := c.Run
	if run == nil {
		run = ExecRunner
	}
	dir := c.RepoPath
	if dir == "" {
		dir = "."
	}
	logDebug("[git] git -C %s %s", dir, strings.Join(args, " "))
	return run(ctx, dir, args...)
}
