package util

import (
	"strings"
	"unicode"
)

// Snippet condenses a blob of extracted or generated text into a single
// log-friendly line capped at maxRunes.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 200
	}
	s = SanitizeText(s)
	s = strings.Join(strings.Fields(s), " ")

	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	trimmed := strings.TrimSpace(string(out))
	runes := []rune(trimmed)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return trimmed
}
