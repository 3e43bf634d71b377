package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatError formats a CLIError for display in a terminal.
// Colors are dropped automatically by fatih/color when stdout is not a tty or NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, true)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

// RemediationOf returns the remediation hints of the CLIError in err's
// chain, or nil.
func RemediationOf(err error) []string {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr.Remediation
	}
	return nil
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(paint(errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, err.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, err.Message))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: "))
		sb.WriteString(paint(usageText, err.Usage))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w, using the structured layout when err carries a
// CLIError and a Runtime-category layout otherwise.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	FprintError(w, &CLIError{Category: Runtime, Message: err.Error(), Err: err})
}
