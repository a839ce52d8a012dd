package tokenbudget

import (
	"strings"
	"unicode"
)

// Encode splits text into tokens that can be sliced and rejoined without
// losing a byte: a token is a maximal letter/digit run or a single
// punctuation rune, carrying the whitespace that precedes it. Trailing
// whitespace sticks to the last token, so Decode(Encode(s)) == s.
func Encode(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	tokens := make([]string, 0, len(runes)/4)
	var b strings.Builder

	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
		}
		if i >= len(runes) {
			break
		}
		if isWordRune(runes[i]) {
			for i < len(runes) && isWordRune(runes[i]) {
				b.WriteRune(runes[i])
				i++
			}
		} else {
			b.WriteRune(runes[i])
			i++
		}
		tokens = append(tokens, b.String())
		b.Reset()
	}
	if b.Len() > 0 {
		if len(tokens) > 0 {
			tokens[len(tokens)-1] += b.String()
		} else {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}

// Decode is plain concatenation.
func Decode(tokens []string) string {
	return strings.Join(tokens, "")
}

// CountTokens reports the token count of text under Encode.
func CountTokens(text string) int {
	return len(Encode(text))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
