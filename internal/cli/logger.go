package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ariel-frischer/autorelease/internal/progress"
	"github.com/ariel-frischer/autorelease/internal/release"
)

var (
	debugLabel   = color.New(color.Faint).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	groupLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// terminalLogger renders pipeline logs for a person at a terminal.
// Debug lines need --debug; info lines are dropped when quiet unless debug
// is on. When a progress display is attached, groups drive its stages.
type terminalLogger struct {
	out     io.Writer
	debug   bool
	quiet   bool
	display *progress.ProgressDisplay
}

func newTerminalLogger(out io.Writer, debug, quiet bool, display *progress.ProgressDisplay) *terminalLogger {
	return &terminalLogger{out: out, debug: debug, quiet: quiet, display: display}
}

func (l *terminalLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.println(debugLabel("debug: " + fmt.Sprintf(format, args...)))
	}
}

func (l *terminalLogger) Infof(format string, args ...any) {
	if !l.quiet || l.debug {
		l.println(fmt.Sprintf(format, args...))
	}
}

func (l *terminalLogger) Warningf(format string, args ...any) {
	l.println(warningLabel("warning: ") + fmt.Sprintf(format, args...))
}

func (l *terminalLogger) Group(title string) {
	if l.display != nil {
		_ = l.display.StartStage(title)
		return
	}
	if !l.quiet || l.debug {
		l.println(groupLabel("==> " + title))
	}
}

func (l *terminalLogger) EndGroup() {
	if l.display != nil {
		_ = l.display.CompleteStage()
	}
}

func (l *terminalLogger) println(line string) {
	if l.display != nil {
		l.display.Println(line)
		return
	}
	fmt.Fprintln(l.out, line)
}

var _ release.Logger = (*terminalLogger)(nil)
