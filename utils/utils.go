package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials extracts uppercase initials from first and last name, e.g.
// ("Jean", "Tremblay") -> "JT". First runes, not bytes: accented names
// ("Éric") are common here.
func Initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
