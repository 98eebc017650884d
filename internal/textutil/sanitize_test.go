package textutil

import "testing"

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain file name", "batch-2024.pdf", "batch-2024.pdf"},
		{"escape sequence", "bad\x1b[31m\nname.pdf", "bad?[31m name.pdf"},
		{"tab", "a\tb", "a b"},
		{"bidi override", "scan\u202efdp.exe", "scan\uFFFDfdp.exe"},
		{"zero width and soft hyphen", "a\u200bb\u00adc", "a\uFFFDb\uFFFDc"},
		{"line separator", "x\u2028y", "x\uFFFDy"},
		{"accents survive", "zażółć.pdf", "zażółć.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminalText(tt.input); got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTerminalTextLeavesNoControls(t *testing.T) {
	got := SanitizeTerminalText("\x00\x07\x7fok")
	for _, r := range got {
		if r < 0x20 || r == 0x7f {
			t.Fatalf("sanitized text should not contain control characters: %q", got)
		}
	}
}
