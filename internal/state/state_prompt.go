package state

import "unicode"

// CommentPrompt is the single-line comment editor shown in the footer.
type CommentPrompt struct {
	Active    bool
	Value     []rune
	CursorPos int
	original  string
	done      func(string)
}

// Text returns the current prompt value.
func (p CommentPrompt) Text() string {
	return string(p.Value)
}

// Prompt opens the comment editor. done receives the edited text on confirm
// and the original value on cancel.
func (s *AppState) Prompt(value string, done func(string)) {
	if s.Comment.Active && s.Comment.done != nil {
		s.Comment.done(s.Comment.original)
	}
	runes := []rune(value)
	s.Comment = CommentPrompt{
		Active:    true,
		Value:     runes,
		CursorPos: len(runes),
		original:  value,
		done:      done,
	}
}

func (s *AppState) closePrompt(result string) {
	done := s.Comment.done
	s.Comment = CommentPrompt{}
	if done != nil {
		done(result)
	}
}

func (s *AppState) promptInsert(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	p := &s.Comment
	value := make([]rune, 0, len(p.Value)+1)
	value = append(value, p.Value[:p.CursorPos]...)
	value = append(value, r)
	value = append(value, p.Value[p.CursorPos:]...)
	p.Value = value
	p.CursorPos++
}

func (s *AppState) promptBackspace() {
	p := &s.Comment
	if p.CursorPos == 0 {
		return
	}
	p.Value = append(p.Value[:p.CursorPos-1], p.Value[p.CursorPos:]...)
	p.CursorPos--
}

func (s *AppState) promptDelete() {
	p := &s.Comment
	if p.CursorPos >= len(p.Value) {
		return
	}
	p.Value = append(p.Value[:p.CursorPos], p.Value[p.CursorPos+1:]...)
}

func (s *AppState) promptMove(direction string) {
	p := &s.Comment
	switch direction {
	case "left":
		if p.CursorPos > 0 {
			p.CursorPos--
		}
	case "right":
		if p.CursorPos < len(p.Value) {
			p.CursorPos++
		}
	case "home":
		p.CursorPos = 0
	case "end":
		p.CursorPos = len(p.Value)
	}
}
