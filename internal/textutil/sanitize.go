package textutil

import (
	"strings"
	"unicode"
)

// replacementRune stands in for invisible formatting characters so a file
// name using a right-to-left override cannot pose as something else.
const replacementRune = '\uFFFD'

// SanitizeTerminalText makes text from file names and page comments safe to
// draw: control characters become '?', line breaks and tabs become spaces and
// bidi or zero-width formatting runes become U+FFFD.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, requiresSanitization) < 0 {
		return text
	}
	return strings.Map(sanitizeRune, text)
}

func requiresSanitization(r rune) bool {
	return r < 0x20 || r == 0x7f || isFormattingRune(r)
}

func sanitizeRune(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return ' '
	case r < 0x20 || r == 0x7f:
		return '?'
	case isFormattingRune(r):
		return replacementRune
	}
	return r
}

// isFormattingRune covers the Cf category (bidi overrides, zero-width joiners,
// soft hyphen, BOM) plus the Unicode line and paragraph separators.
func isFormattingRune(r rune) bool {
	return unicode.Is(unicode.Cf, r) || r == '\u2028' || r == '\u2029'
}
