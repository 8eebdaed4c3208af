package notes

import "strings"

// Render replaces every {{NAME}} token whose name is in values.
// Replacement is a single left-to-right pass: inserted text is never
// rescanned, and tokens with unknown names are left untouched.
func Render(template string, values Values) string {
	if len(values) == 0 {
		return template
	}

	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, Token(name), value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Unresolved returns the names of {{NAME}} tokens left in a rendered text,
// in order of first appearance.
func Unresolved(text string) []string {
	var names []string
	seen := make(map[string]bool)

	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			break
		}
		rest := text[start+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			break
		}
		name := rest[:end]
		if name != "" && !strings.ContainsAny(name, "{} \n") && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		text = rest[end+2:]
	}

	return names
}
