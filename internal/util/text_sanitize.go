package util

import "strings"

// SanitizeText strips the bytes that break Postgres text columns and the
// merged CSV, in particular the NUL runs some PDF extractors emit for
// embedded fonts. Tabs and newlines survive, other C0 controls are dropped.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s))
}
