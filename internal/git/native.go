package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/commit"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ErrSymmetricRange is returned by the native backend for A...B ranges.
var ErrSymmetricRange = errors.New("symmetric difference ranges (A...B) need the cli backend")

// Native is a Source backed by go-git.
type Native struct {
	repo *git.Repository
}

// OpenNative opens the repository containing repoPath.
func OpenNative(repoPath string) (*Native, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}
	return &Native{repo: repo}, nil
}

// NewNative wraps an already opened repository.
func NewNative(repo *git.Repository) *Native {
	return &Native{repo: repo}
}

// Commits walks the history of rangeSpec newest first. "A..B" lists commits
// reachable from B but not from A; an empty side means HEAD. A bare revision
// lists all of its ancestors. Merge commits are skipped unless includeMerges.
func (n *Native) Commits(ctx context.Context, rangeSpec string, includeMerges bool) ([]commit.Commit, error) {
	from, to, err := splitRange(rangeSpec)
	if err != nil {
		return nil, err
	}

	toHash, err := n.resolve(to)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]bool)
	if from != "" {
		fromHash, err := n.resolve(from)
		if err != nil {
			return nil, err
		}
		if err := n.walk(ctx, fromHash, func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var commits []commit.Commit
	err = n.walk(ctx, toHash, func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		if !includeMerges && c.NumParents() > 1 {
			return nil
		}
		subject, body := SplitMessage(c.Message)
		commits = append(commits, commit.New(c.Hash.String(), c.Author.Name, subject, body))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logDebug("[git] native Commits(%s): %d commits", rangeSpec, len(commits))
	return commits, nil
}

// FileChanges diffs a commit against its first parent (or the empty tree for
// root commits) with rename detection. For merges it keeps only the paths
// that differ from every parent, as git's combined diff does, so a clean
// merge reports no changes.
func (n *Native) FileChanges(ctx context.Context, hash string) ([]commit.FileChange, error) {
	c, err := n.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("bad object %s: %w", hash, err)
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %s: %w", hash, err)
	}

	if c.NumParents() == 0 {
		return diffTrees(ctx, nil, tree, hash)
	}

	result, err := diffParent(ctx, c, 0, tree)
	if err != nil {
		return nil, err
	}
	for i := 1; i < c.NumParents() && len(result) > 0; i++ {
		other, err := diffParent(ctx, c, i, tree)
		if err != nil {
			return nil, err
		}
		result = commonPaths(result, other)
	}
	return result, nil
}

// diffParent diffs tree against the tree of c's i-th parent.
func diffParent(ctx context.Context, c *object.Commit, i int, tree *object.Tree) ([]commit.FileChange, error) {
	parent, err := c.Parent(i)
	if err != nil {
		return nil, fmt.Errorf("reading parent of %s: %w", c.Hash, err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading parent tree of %s: %w", c.Hash, err)
	}
	return diffTrees(ctx, parentTree, tree, c.Hash.String())
}

func diffTrees(ctx context.Context, from, to *object.Tree, hash string) ([]commit.FileChange, error) {
	changes, err := object.DiffTreeWithOptions(ctx, from, to, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", hash, err)
	}

	result := make([]commit.FileChange, 0, len(changes))
	for _, ch := range changes {
		fc, err := toFileChange(ch)
		if err != nil {
			return nil, fmt.Errorf("reading change in %s: %w", hash, err)
		}
		result = append(result, fc)
	}
	return result, nil
}

// commonPaths keeps the changes of first whose path also changed in other.
func commonPaths(first, other []commit.FileChange) []commit.FileChange {
	seen := make(map[string]bool, len(other))
	for _, ch := range other {
		seen[ch.Path] = true
	}
	kept := first[:0]
	for _, ch := range first {
		if seen[ch.Path] {
			kept = append(kept, ch)
		}
	}
	return kept
}

// SplitMessage splits a raw commit message the way git's %s and %b do:
// the first paragraph, unwrapped onto one line, and the rest.
func SplitMessage(message string) (subject, body string) {
	message = strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n"))
	head, rest, _ := strings.Cut(message, "\n\n")
	subject = strings.Join(strings.Fields(strings.ReplaceAll(head, "\n", " ")), " ")
	return subject, strings.TrimSpace(rest)
}

// splitRange parses "A..B", "A..", "..B" or a bare revision.
func splitRange(rangeSpec string) (from, to string, err error) {
	spec := strings.TrimSpace(rangeSpec)
	if spec == "" {
		return "", "", fmt.Errorf("empty commit range")
	}
	if strings.Contains(spec, "...") {
		return "", "", ErrSymmetricRange
	}

	from, to, found := strings.Cut(spec, "..")
	if !found {
		return "", spec, nil
	}
	if from == "" {
		from = "HEAD"
	}
	if to == "" {
		to = "HEAD"
	}
	return from, to, nil
}

func (n *Native) resolve(rev string) (plumbing.Hash, error) {
	h, err := n.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("unknown revision %q: %w", rev, err)
	}
	return *h, nil
}

// walk visits every ancestor of start, newest commit time first.
func (n *Native) walk(ctx context.Context, start plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := n.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("walking history from %s: %w", start, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return err
	}
	return nil
}

// toFileChange maps a tree change to git's name-status letters.
func toFileChange(ch *object.Change) (commit.FileChange, error) {
	action, err := ch.Action()
	if err != nil {
		return commit.FileChange{}, err
	}

	switch action {
	case merkletrie.Insert:
		return commit.FileChange{Status: "A", Path: ch.To.Name}, nil
	case merkletrie.Delete:
		return commit.FileChange{Status: "D", Path: ch.From.Name}, nil
	default:
		if ch.From.Name != ch.To.Name {
			return commit.FileChange{Status: "R", Path: ch.To.Name}, nil
		}
		return commit.FileChange{Status: "M", Path: ch.To.Name}, nil
	}
}
