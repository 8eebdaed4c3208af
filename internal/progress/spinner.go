package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner reports per-commit progress. It is inert when the terminal is not
// interactive or it was disabled, so callers never need to check.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	enabled bool
	label   string
	s       *spinner.Spinner
}

// NewSpinner returns a Spinner drawing on out.
func NewSpinner(out io.Writer, caps TerminalCapabilities, enabled bool) *Spinner {
	return &Spinner{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
		enabled: enabled && caps.IsTTY,
	}
}

// Active reports whether the spinner draws anything.
func (p *Spinner) Active() bool {
	return p.enabled
}

// Start begins spinning with label.
func (p *Spinner) Start(label string) {
	p.label = label
	if !p.enabled || p.s != nil {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(p.out))
	p.s.Suffix = " " + label
	p.s.Start()
}

// Update shows the position within total, e.g. "Inspecting files 3/12 abc1234".
func (p *Spinner) Update(index, total int, detail string) {
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + Status(p.label, index, total, detail)
	p.s.Unlock()
}

// Stop halts the spinner and prints a final line with a success or failure mark.
func (p *Spinner) Stop(ok bool, message string) {
	if p.s == nil {
		return
	}
	mark := p.symbols.Checkmark
	if !ok {
		mark = p.symbols.Failure
	}
	p.s.FinalMSG = fmt.Sprintf("%s %s\n", mark, message)
	p.s.Stop()
	p.s = nil
}

// Status formats a progress line.
func Status(label string, index, total int, detail string) string {
	line := fmt.Sprintf("%s %d/%d", label, index, total)
	if detail != "" {
		line += " " + detail
	}
	return line
}
