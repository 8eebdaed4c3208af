// Package git provides the commit source for relnotes: the commit log of a
// range and the files each commit touched. Two backends implement the same
// Source contract. The default shells out to the git CLI; the native backend
// uses the go-git library and needs no git installation. Repository detection
// always goes through go-git.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/commit"
	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Backend names accepted by NewSource.
const (
	BackendCLI    = "cli"
	BackendNative = "native"
)

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendCLI, BackendNative}
}

// Source retrieves commits and their file changes from a repository.
type Source interface {
	// Commits lists the commits of rangeSpec, newest first.
	Commits(ctx context.Context, rangeSpec string, includeMerges bool) ([]commit.Commit, error)
	// FileChanges lists the files touched by one commit.
	FileChanges(ctx context.Context, hash string) ([]commit.FileChange, error)
}

// NewSource returns the Source for the named backend rooted at repoPath.
func NewSource(backend, repoPath string) (Source, error) {
	switch strings.ToLower(backend) {
	case "", BackendCLI:
		return NewCLI(repoPath), nil
	case BackendNative:
		return OpenNative(repoPath)
	default:
		return nil, fmt.Errorf("unknown git backend %q (available: %s)", backend, strings.Join(Backends(), ", "))
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// RepositoryRoot returns the absolute path to the worktree root containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}
