package prompt

import (
	"strings"
	"unicode/utf8"
)

// Mask returns one mask rune per rune of value.
func Mask(value string, mask rune) string {
	return strings.Repeat(string(mask), utf8.RuneCountInString(value))
}

// Render draws the prompt line and the error line for the session. prefix
// overrides the theme glyph when non-empty (the spinner while validating).
// The buffer itself never appears in the output.
func Render(s *Session, label, prefix string, mask rune, theme Theme) (string, string) {
	if prefix == "" {
		prefix = theme.Prefix(s.Status())
	}

	value := Mask(s.Buffer(), mask)
	if s.Status() == StatusAccepted {
		value = theme.Answer(value)
	}

	line := strings.Join([]string{prefix, theme.Message(label, s.Status()), value}, " ")

	var errLine string
	if msg := s.Err(); msg != "" {
		errLine = theme.Error(msg)
	}
	return line, errLine
}
