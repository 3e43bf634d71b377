// Package progress tests stage display without a terminal.
// Related: internal/progress/display.go, internal/progress/terminal.go
// Tags: progress, display, spinner

package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{},
			want: ProgressSymbols{Checkmark: "[OK]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestProgressDisplay_NonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := NewProgressDisplayWithWriter(TerminalCapabilities{IsTTY: false}, &buf)

	require.NoError(t, d.StartStage("Determining release tags"))
	assert.Nil(t, d.spinner, "no spinner without a tty")
	d.Println("note")
	require.NoError(t, d.StartStage("Generating changelog"))
	require.NoError(t, d.CompleteStage())

	out := buf.String()
	assert.Contains(t, out, "note\n")
	assert.Contains(t, out, "[OK] Determining release tags (")
	assert.Contains(t, out, "[OK] Generating changelog (")
	assert.Less(t, strings.Index(out, "note"), strings.Index(out, "[OK] Determining"), "a new stage closes the previous one")
}

func TestProgressDisplay_Idle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := NewProgressDisplayWithWriter(TerminalCapabilities{}, &buf)

	require.NoError(t, d.CompleteStage())
	require.NoError(t, d.CompleteStage())
	d.StopSpinner()
	assert.Empty(t, buf.String())

	assert.Error(t, d.StartStage(""))
}
