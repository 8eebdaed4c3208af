package classify

import (
	"regexp"
	"strings"
)

// BreakingMarker flags a breaking change when found in a commit body.
const BreakingMarker = "BREAKING CHANGE"

// Result is the outcome of classifying one commit message.
type Result struct {
	Category Category
	Breaking bool
}

// convention is one subject pattern. Its regexp must capture a "type" group;
// a non-empty "breaking" group marks the commit as breaking.
type convention struct {
	name    string
	pattern *regexp.Regexp
}

// conventions are tried in order; the first anchored match wins.
var conventions = []convention{
	{
		name:    "conventional",
		pattern: regexp.MustCompile(`^(?P<type>[a-zA-Z]+)(\([^)]*\))?(?P<breaking>!)?:\s*(?P<summary>.+)$`),
	},
	{
		name:    "bracket",
		pattern: regexp.MustCompile(`^\[(?P<type>[a-zA-Z]+)]\s*(?P<summary>.+)$`),
	},
}

// Classify returns the category of a commit and whether it is breaking.
// It never fails: unrecognized subjects are OTHERS.
func Classify(subject, body string) (Category, bool) {
	r := ClassifyResult(subject, body)
	return r.Category, r.Breaking
}

// ClassifyResult is Classify returning a Result.
func ClassifyResult(subject, body string) Result {
	bodyBreaking := HasBreakingMarker(body)

	for _, conv := range conventions {
		match := conv.pattern.FindStringSubmatch(subject)
		if match == nil {
			continue
		}
		return Result{
			Category: ForType(group(conv.pattern, match, "type")),
			Breaking: group(conv.pattern, match, "breaking") != "" || bodyBreaking,
		}
	}

	return Result{Category: Others, Breaking: bodyBreaking}
}

// Convention returns the name of the subject convention that matches, or ""
// when the subject follows none of them.
func Convention(subject string) string {
	for _, conv := range conventions {
		if conv.pattern.MatchString(subject) {
			return conv.name
		}
	}
	return ""
}

// HasBreakingMarker reports whether text contains "BREAKING CHANGE" in any case.
func HasBreakingMarker(text string) bool {
	return strings.Contains(strings.ToUpper(text), BreakingMarker)
}

// group returns a named submatch, "" when the pattern has no such group.
func group(re *regexp.Regexp, match []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(match) {
		return ""
	}
	return match[idx]
}
