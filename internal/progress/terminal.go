// Package progress renders stage progress on the terminal: a spinner while a
// stage runs and a status line when it ends. Without a tty only the status
// lines are written.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// ProgressSymbols are the glyphs used for stage status.
type ProgressSymbols struct {
	Checkmark  string
	SpinnerSet int // index into spinner.CharSets
}

// DetectTerminalCapabilities inspects stderr, where progress is drawn.
// NO_COLOR disables color and AUTORELEASE_ASCII=1 forces ASCII glyphs.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stderr.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("AUTORELEASE_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols picks Unicode glyphs when the terminal renders them and
// ASCII ones otherwise.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
