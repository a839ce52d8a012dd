package meta

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	abstractStartRe = regexp.MustCompile(`(?i)\bAbstract\b[\s.:]*`)
	abstractEndRes  = []*regexp.Regexp{
		regexp.MustCompile(`\n\s*\n`),
		regexp.MustCompile(`(?i)\b(?:Introduction|Keywords)\b`),
		regexp.MustCompile(`(?i)\b1\.?\s+Introduction\b`),
	}

	keywordsStartRe = regexp.MustCompile(`(?i)\bKeywords\b[\s:.]*`)
	keywordsEndRe   = regexp.MustCompile(`(?i)\n|\bIntroduction\b|\b1\.`)
	keywordSplitRe  = regexp.MustCompile(`[,;]`)
)

// ExtractAbstract slices the abstract body off the first page: from the
// Abstract heading up to the first blank line or the next heading. Empty
// when no heading exists.
func ExtractAbstract(firstPageText string) string {
	loc := abstractStartRe.FindStringIndex(firstPageText)
	if loc == nil {
		return ""
	}
	body := firstPageText[loc[1]:]
	end := len(body)
	for _, re := range abstractEndRes {
		if m := re.FindStringIndex(body); m != nil && m[0] < end {
			end = m[0]
		}
	}
	abstract := strings.ReplaceAll(body[:end], "\n", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(abstract, " "))
}

// ExtractKeywords parses the Keywords line into at most 10 entries.
func ExtractKeywords(firstPageText string) []string {
	loc := keywordsStartRe.FindStringIndex(firstPageText)
	if loc == nil {
		return nil
	}
	line := firstPageText[loc[1]:]
	if m := keywordsEndRe.FindStringIndex(line); m != nil {
		line = line[:m[0]]
	}
	var out []string
	for _, kw := range keywordSplitRe.Split(line, -1) {
		kw = strings.TrimSpace(kw)
		if n := utf8.RuneCountInString(kw); n > 2 && n < 50 {
			out = append(out, kw)
			if len(out) == 10 {
				break
			}
		}
	}
	return out
}
