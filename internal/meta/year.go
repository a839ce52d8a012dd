package meta

import (
	"regexp"
	"strconv"
	"time"
)

var (
	pathYearRe  = regexp.MustCompile(`20\d{2}`)
	textYearRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}`),
		regexp.MustCompile(`20[12]\d`),
	}
)

// ExtractYear prefers a publication year encoded in the file path (curated
// filenames beat in-document dates, which mix submission and revision
// stamps), then falls back to the newest plausible year in the text.
func ExtractYear(firstPageText, path string) string {
	current := time.Now().Year()

	best := 0
	for _, m := range pathYearRe.FindAllString(path, -1) {
		if y, err := strconv.Atoi(m); err == nil && 1990 <= y && y <= current+1 && y > best {
			best = y
		}
	}
	if best > 0 {
		return strconv.Itoa(best)
	}

	for _, re := range textYearRes {
		for _, m := range re.FindAllString(firstPageText, -1) {
			if y, err := strconv.Atoi(m); err == nil && 1990 <= y && y <= current+1 && y > best {
				best = y
			}
		}
	}
	if best > 0 {
		return strconv.Itoa(best)
	}
	return NotMentioned
}
