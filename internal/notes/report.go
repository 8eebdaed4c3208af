package notes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/filter"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatMarkdown, FormatYAML, FormatJSON}
}

// Report is the structured form of a run: placeholder values plus what
// happened to every commit in the range.
type Report struct {
	Placeholders Values            `json:"placeholders" yaml:"placeholders"`
	Commits      []filter.Decision `json:"commits" yaml:"commits"`
}

// WriteReport encodes r as YAML or JSON.
func WriteReport(w io.Writer, r Report, format string) error {
	switch strings.ToLower(format) {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
