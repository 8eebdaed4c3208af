package commit

import "strings"

// ParseLog splits raw `git log --pretty=format:LogFormat` output into commits.
// Records with fewer than three fields (hash, author, subject) are skipped;
// the body is optional. Input order is preserved.
func ParseLog(raw string) []Commit {
	var commits []Commit

	for _, record := range strings.Split(raw, RecordSeparator) {
		record = strings.Trim(record, "\r\n")
		if record == "" {
			continue
		}

		fields := strings.SplitN(record, FieldSeparator, 4)
		if len(fields) < 3 {
			continue
		}

		body := ""
		if len(fields) > 3 {
			body = strings.TrimSpace(fields[3])
		}

		commits = append(commits, New(
			strings.TrimSpace(fields[0]),
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			body,
		))
	}

	return commits
}

// ParseNameStatus parses `git show --name-status --pretty=format:` output.
// Each line is "<status>\t<path>" or "<status>\t<old>\t<new>" for renames and
// copies, in which case the destination path is kept. Blank lines and lines
// with fewer than two tab-separated fields are ignored.
func ParseNameStatus(raw string) []FileChange {
	var changes []FileChange

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		changes = append(changes, FileChange{
			Status: strings.TrimSpace(parts[0]),
			Path:   strings.TrimSpace(parts[len(parts)-1]),
		})
	}

	return changes
}
