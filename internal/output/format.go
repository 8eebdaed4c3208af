// Package output provides terminal output formatting utilities for the relnotes CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the width of f, defaulting to 80 if unavailable.
func GetTerminalWidth(f *os.File) int {
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSummary prints the one-line result of a run, e.g.
// "✓ 12 of 30 commits kept (18 filtered)".
func PrintSummary(out io.Writer, kept, total int) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %d of %d commits kept %s\n", green("✓"), kept, total, dim(fmt.Sprintf("(%d filtered)", total-kept)))
}

// PrintWritten reports the file the document was written to.
// Uses green checkmark and cyan for the path.
func PrintWritten(out io.Writer, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s Wrote %s\n", green("✓"), cyan(path))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintUnresolved warns about {{NAME}} tokens left in a rendered document.
func PrintUnresolved(out io.Writer, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	PrintWarning(out, "unknown placeholders left as-is: "+strings.Join(tokens, ", "))
}

// Rule returns a horizontal rule of the given width with label centered.
func Rule(width int, label string) string {
	lineLen := (width - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}
	line := strings.Repeat("─", lineLen)
	return line + label + line
}
