package testutil

import (
	"testing"

	"github.com/agbru/bigcalc/internal/ui"
)

func TestStripAnsiCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, in, want string
	}{
		{"plain", "2 + 3 = 5", "2 + 3 = 5"},
		{"theme colors", ui.DarkTheme.Success + "42" + ui.DarkTheme.Reset, "42"},
		{"bold and underline", "\x1b[1m\x1b[4mEngine\x1b[0m", "Engine"},
		{"multi-parameter", "\x1b[1;32m✓ Result\x1b[0m saved", "✓ Result saved"},
	}
	for _, tt := range tests {
		if got := StripAnsiCodes(tt.in); got != tt.want {
			t.Errorf("%s: StripAnsiCodes(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
