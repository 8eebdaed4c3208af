// Package commit holds the commit records relnotes works on and the parsers
// that build them from git output.
package commit

import "strings"

const (
	// FieldSeparator separates fields inside one log record (%x1f).
	FieldSeparator = "\x1f"
	// RecordSeparator terminates one log record (%x1e).
	RecordSeparator = "\x1e"

	// LogFormat is the --pretty format that ParseLog understands:
	// full hash, author name, subject and body.
	LogFormat = "%H%x1f%an%x1f%s%x1f%b%x1e"

	shortHashLen = 7
)

// Commit is one parsed log entry. It is never modified after parsing.
type Commit struct {
	Hash      string `json:"hash" yaml:"hash"`
	ShortHash string `json:"short_hash" yaml:"short_hash"`
	Author    string `json:"author" yaml:"author"`
	Subject   string `json:"subject" yaml:"subject"`
	Body      string `json:"body,omitempty" yaml:"body,omitempty"`
}

// FileChange is one (status, path) pair touched by a commit.
// Status is git's letter code, possibly with a similarity score (R100).
type FileChange struct {
	Status string `json:"status" yaml:"status"`
	Path   string `json:"path" yaml:"path"`
}

// New builds a Commit, deriving the short hash from the full one.
func New(hash, author, subject, body string) Commit {
	return Commit{
		Hash:      hash,
		ShortHash: ShortHash(hash),
		Author:    author,
		Subject:   subject,
		Body:      body,
	}
}

// ShortHash returns the first seven characters of hash.
func ShortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}
	return hash[:shortHashLen]
}

// Line formats the commit the way it appears in bullet sections.
func (c Commit) Line() string {
	return c.Subject + " (" + c.ShortHash + ")"
}

// StatusCode returns the leading status letter (R for R100).
func (f FileChange) StatusCode() string {
	if f.Status == "" {
		return ""
	}
	return strings.ToUpper(f.Status[:1])
}
