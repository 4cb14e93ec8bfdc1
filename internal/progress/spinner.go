// Package progress shows short-lived progress feedback on the terminal.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerDelay is the frame interval of the spinner animation.
const spinnerDelay = 100 * time.Millisecond

// Spinner reports progress of one blocking step. On a non-TTY it stays
// silent, so scripted runs only see the final result on stdout.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner creates a Spinner writing to w with the given capabilities.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating with msg as the suffix.
func (p *Spinner) Start(msg string) {
	if !p.caps.IsTTY {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(p.w))
	p.s.Suffix = " " + msg
	if !p.caps.SupportsColor {
		_ = p.s.Color("reset")
	}
	p.s.Start()
}

// Success stops the animation and prints msg with a checkmark.
func (p *Spinner) Success(msg string) {
	p.finish(p.symbols.Checkmark, msg)
}

// Fail stops the animation and prints msg with a failure mark.
func (p *Spinner) Fail(msg string) {
	p.finish(p.symbols.Failure, msg)
}

func (p *Spinner) finish(symbol, msg string) {
	if p.s == nil {
		return
	}
	p.s.FinalMSG = fmt.Sprintf("%s %s\n", symbol, msg)
	p.s.Stop()
	p.s = nil
}
