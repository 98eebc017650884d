package textutil

import (
	"strings"
	"unicode"
)

// CleanComment turns free text typed or pasted by the user into a single-line
// page comment: formatting runes and control characters are dropped and
// whitespace runs collapse to one space.
func CleanComment(text string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range text {
		switch {
		case isFormattingRune(r):
			continue
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
			continue
		case unicode.IsControl(r):
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
