package commits

import (
	"regexp"
	"strings"
)

const scissors = "# ------------------------ >8 ------------------------"

var (
	headerPattern    = regexp.MustCompile(`^(\w*)(?:\((.*)\))?: (.*)$`)
	mergePattern     = regexp.MustCompile(`^Merge pull request #(.*) from (.*)$`)
	revertPattern    = regexp.MustCompile(`(?i)^(?:Revert|revert:)\s"?([\s\S]+?)"?\s*This reverts commit (\w*)\.`)
	notePattern      = regexp.MustCompile(`(?i)^[\s|*]*(BREAKING CHANGE|BREAKING CHANGES)[:\s]+(.*)`)
	referencePattern = regexp.MustCompile(`#[\w-]*\d`)
	breakingPattern  = regexp.MustCompile(`(?m)^BREAKING\s+CHANGES?:\s+`)
	lineSplit        = regexp.MustCompile(`\r?\n`)
)

// Parse parses a commit message into its conventional-commit parts.
// It never fails: a message without a conventional header yields a
// ParsedCommit with TypeNone and the first line as Header.
func Parse(message string) ParsedCommit {
	var pc ParsedCommit

	lines := truncateAtScissors(lineSplit.Split(trimNewlines(message), -1))
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return pc
	}

	header, rest := lines[0], lines[1:]
	if m := mergePattern.FindStringSubmatch(header); m != nil {
		pc.Merge = &MergeInfo{IssueID: m[1], Source: m[2]}
		header, rest = nextNonBlank(rest)
	}
	pc.Header = header

	if m := headerPattern.FindStringSubmatch(header); m != nil {
		pc.RawType = m[1]
		pc.Scope = m[2]
		pc.Subject = m[3]
		pc.Type = NormalizeType(m[1])
	}

	if m := revertPattern.FindStringSubmatch(message); m != nil {
		pc.Revert = &RevertInfo{Header: m[1], Hash: m[2]}
	}

	pc.Body, pc.Footer, pc.Notes = splitBodyFooter(rest)
	pc.Breaking = IsBreaking(pc.Body, pc.Footer)
	return pc
}

// ParseCommit parses the message of raw and attaches raw to the result.
func ParseCommit(raw RawCommit) ParsedCommit {
	pc := Parse(raw.Message)
	pc.Raw = raw
	return pc
}

// IsBreaking reports whether body or footer contains a line that starts with
// "BREAKING CHANGE:" or "BREAKING CHANGES:" followed by whitespace.
// The marker is case-sensitive and must open the line.
func IsBreaking(body, footer string) bool {
	return breakingPattern.MatchString(body) || breakingPattern.MatchString(footer)
}

// splitBodyFooter walks the lines after the header. Lines belong to the body
// until the first note or issue-reference line; from there on they belong to
// the footer. Lines following a note extend that note until a reference line.
func splitBodyFooter(lines []string) (body, footer string, notes []Note) {
	var bodyLines, footerLines []string
	inBody, inNote := true, false

	for _, line := range lines {
		if m := notePattern.FindStringSubmatch(line); m != nil {
			inBody, inNote = false, true
			footerLines = append(footerLines, line)
			notes = append(notes, Note{Title: m[1], Text: m[2]})
			continue
		}

		if referencePattern.MatchString(line) {
			inBody, inNote = false, false
			footerLines = append(footerLines, line)
			continue
		}

		switch {
		case inNote:
			last := &notes[len(notes)-1]
			last.Text = appendLine(last.Text, line)
			footerLines = append(footerLines, line)
		case inBody:
			bodyLines = append(bodyLines, line)
		default:
			footerLines = append(footerLines, line)
		}
	}

	for i := range notes {
		notes[i].Text = trimNewlines(notes[i].Text)
	}
	return joinLines(bodyLines), joinLines(footerLines), notes
}

func appendLine(text, line string) string {
	if text == "" {
		return line
	}
	return text + "\n" + line
}

func joinLines(lines []string) string {
	return trimNewlines(strings.Join(lines, "\n"))
}

func trimNewlines(s string) string {
	return strings.Trim(s, "\r\n")
}

func truncateAtScissors(lines []string) []string {
	for i, line := range lines {
		if line == scissors {
			return lines[:i]
		}
	}
	return lines
}

func nextNonBlank(lines []string) (string, []string) {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return line, lines[i+1:]
		}
	}
	return "", nil
}
