package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette paints the parts of a rendered error. The plain palette leaves
// text untouched; fatih/color already drops escapes when NO_COLOR is set or
// the output is not a terminal.
type palette struct {
	label, category, message, detail, usage, fix, bullet func(a ...any) string
}

var (
	colorPalette = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		detail:   color.New(color.Faint).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plainPalette = palette{
		label: fmt.Sprint, category: fmt.Sprint, message: fmt.Sprint, detail: fmt.Sprint,
		usage: fmt.Sprint, fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

// FormatError renders err for the terminal:
//
//	Error [Runtime Error]: fatal: ambiguous argument 'v9..HEAD'
//	  │ Use '--' to separate paths from revisions
//
//	To fix this:
//	  • Check that both ends of --range exist: git rev-parse <rev>
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, colorPalette)
}

// FormatErrorPlain is FormatError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, plainPalette)
}

func render(err *CLIError, p palette) string {
	var sb strings.Builder

	// git reports on several stderr lines; the first is the headline.
	headline, details, _ := strings.Cut(err.Message, "\n")
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category), p.message(headline))
	for _, line := range strings.Split(details, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&sb, "  %s\n", p.detail("│ "+line))
		}
	}

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w. CLIErrors keep their category and remediation;
// anything else is reported as a runtime error.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), Cause: err}
	}
	FprintError(w, cliErr)
}
