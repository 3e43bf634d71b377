package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// ProgressDisplay shows one stage at a time. It is not safe for concurrent use.
type ProgressDisplay struct {
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	spinner *spinner.Spinner
	stage   string
	started time.Time
}

// NewProgressDisplay creates a display writing to stderr.
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayWithWriter(caps, os.Stderr)
}

// NewProgressDisplayWithWriter creates a display writing to out. The spinner
// only runs when caps reports a tty.
func NewProgressDisplayWithWriter(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// StartStage begins a stage, ending any stage still running as completed.
func (d *ProgressDisplay) StartStage(name string) error {
	if d.stage != "" {
		if err := d.CompleteStage(); err != nil {
			return err
		}
	}
	if name == "" {
		return fmt.Errorf("stage name must not be empty")
	}

	d.stage = name
	d.started = time.Now()
	if d.caps.IsTTY {
		d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(d.out))
		d.spinner.Suffix = " " + name
		d.spinner.Start()
	}
	return nil
}

// CompleteStage ends the running stage with a success line.
func (d *ProgressDisplay) CompleteStage() error {
	return d.finish(d.symbols.Checkmark, color.FgGreen)
}

// StopSpinner stops the spinner without printing a status line.
func (d *ProgressDisplay) StopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// Println writes a line above the spinner, pausing it meanwhile.
func (d *ProgressDisplay) Println(line string) {
	running := d.spinner != nil
	if running {
		d.spinner.Stop()
	}
	fmt.Fprintln(d.out, line)
	if running {
		d.spinner.Start()
	}
}

func (d *ProgressDisplay) finish(symbol string, attr color.Attribute) error {
	if d.stage == "" {
		return nil
	}
	d.StopSpinner()

	if d.caps.SupportsColor {
		symbol = color.New(attr).Sprint(symbol)
	}
	elapsed := time.Since(d.started).Round(10 * time.Millisecond)
	_, err := fmt.Fprintf(d.out, "%s %s (%s)\n", symbol, d.stage, elapsed)
	d.stage = ""
	if err != nil {
		return fmt.Errorf("writing stage status: %w", err)
	}
	return nil
}
