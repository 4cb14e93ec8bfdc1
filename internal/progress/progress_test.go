package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii terminal": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
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

func TestSpinner_SilentWithoutTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})
	s.Start("collecting commits")
	s.Success("12 commits")
	s.Fail("unused")

	assert.Empty(t, buf.String())
}
