package meta

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var doiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(10\.\d{4,9}/[-._;()\w\[\]/:]+)\b`),
	regexp.MustCompile(`(?i)doi\.org/(10\.\d{4,9}/[-._;()\w\[\]/:]+)`),
	regexp.MustCompile(`(?i)dx\.doi\.org/(10\.\d{4,9}/[-._;()\w\[\]/:]+)`),
	regexp.MustCompile(`(?i)DOI\s*:?\s*(10\.\d{4,9}/[-._;()\w\[\]/:]+)`),
}

var doiTrailingPunctRe = regexp.MustCompile(`[.,;)\]}]+$`)

// ExtractDOI returns the first valid DOI in the text, or empty.
func ExtractDOI(text string) string {
	for _, re := range doiPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		doi := doiTrailingPunctRe.ReplaceAllString(m[1], "")
		if isValidDOI(doi) {
			return doi
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	if n := len(doi); n < 7 || n > 200 {
		return false
	}
	return strings.Contains(doi, "/")
}

var arxivPatterns = []*regexp.Regexp{
	// New format, YYMM.NNNNN[vN], labeled or bare.
	regexp.MustCompile(`(?i)arXiv:(\d{4}\.\d{4,5}(?:v\d+)?)\b`),
	// Old format, subject-class/YYMMnnn[vN].
	regexp.MustCompile(`(?i)arXiv:([a-z-]+/\d{7}(?:v\d+)?)\b`),
	regexp.MustCompile(`\b(\d{4}\.\d{4,5}(?:v\d+)?)\b`),
	regexp.MustCompile(`(?i)arxiv\.org/abs/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv\.org/abs/([a-z-]+/\d{7}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arXiv\s*:\s*(\d{4}\.\d{4,5}(?:v\d+)?)`),
}

var (
	arxivNewFormatRe = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)
	arxivOldFormatRe = regexp.MustCompile(`^[a-z-]+/\d{7}(?:v\d+)?$`)
)

// ExtractArxivID returns the first id candidate that validates, or empty.
func ExtractArxivID(text string) string {
	for _, re := range arxivPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if isValidArxivID(m[1]) {
			return m[1]
		}
	}
	return ""
}

func isValidArxivID(id string) bool {
	if arxivNewFormatRe.MatchString(id) {
		year, _ := strconv.Atoi(id[:2])
		month, _ := strconv.Atoi(id[2:4])
		// Two-digit years read as 2007-2099 plus 2100-2150 rollover room.
		if (7 <= year && year <= 99) || (0 <= year && year <= 50) {
			if 1 <= month && month <= 12 {
				return true
			}
		}
		// Implausible year/month falls through to the loose check below.
	}
	if arxivOldFormatRe.MatchString(id) {
		return true
	}
	if utf8.RuneCountInString(id) >= 6 && strings.ContainsAny(id, "0123456789") {
		return true
	}
	return false
}
