package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

var (
	breakingStyle = SectionStyle{Color: color.New(color.FgRed, color.Bold), Icon: "⚠"}
	commitsStyle  = SectionStyle{Color: color.New(color.FgWhite), Icon: "•"}
	defaultStyle  = SectionStyle{Color: color.New(color.FgCyan), Icon: "~"}
)

// typeStyles maps commit types to their terminal styling.
var typeStyles = map[commits.Type]SectionStyle{
	commits.TypeFeat:     {Color: color.New(color.FgGreen), Icon: "✓"},
	commits.TypeFix:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	commits.TypeDocs:     {Color: color.New(color.FgBlue), Icon: "✎"},
	commits.TypePerf:     {Color: color.New(color.FgMagenta), Icon: "»"},
	commits.TypeRevert:   {Color: color.New(color.FgRed), Icon: "↺"},
	commits.TypeRefactor: {Color: color.New(color.FgCyan), Icon: "~"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// StyleFor returns the terminal style of a section.
func StyleFor(s Section) SectionStyle {
	switch s.Kind {
	case KindBreaking:
		return breakingStyle
	case KindCommits:
		return commitsStyle
	}
	if style, ok := typeStyles[s.Type]; ok {
		return style
	}
	return defaultStyle
}

// FormatTerminal writes the changelog with terminal styling, one colored
// header per section and wrapped entries. With Plain set it writes the same
// Markdown a release body would get.
func FormatTerminal(c *Changelog, w io.Writer, opts FormatOptions) error {
	if c.IsEmpty() {
		_, err := fmt.Fprintln(w, "No changelog entries.")
		return err
	}

	if opts.Plain {
		_, err := fmt.Fprintln(w, c.Markdown())
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	for i, s := range c.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeSection(s, w, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Title, err)
		}
	}
	return nil
}

func writeSection(s Section, w io.Writer, width int) error {
	style := StyleFor(s)
	colored := style.Color.SprintFunc()

	if _, err := fmt.Fprintf(w, "%s %s\n", colored(style.Icon), colored(s.Title)); err != nil {
		return err
	}

	const prefix = "  "
	for _, entry := range s.Entries {
		wrapped := wrapText(entry, width-len(prefix), prefix+"  ")
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapped); err != nil {
			return err
		}
	}
	return nil
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Breaks never fall inside a multi-byte character.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text
	for utf8.RuneCountInString(remaining) > maxWidth {
		limit := runeOffset(remaining, maxWidth)
		breakPoint := strings.LastIndex(remaining[:limit], " ")
		if breakPoint <= 0 {
			breakPoint = limit
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}
	if remaining != "" {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// runeOffset returns the byte index at which the n-th rune of s starts, or
// len(s) when s has n runes or fewer.
func runeOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
