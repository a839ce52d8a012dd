package meta

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Venue patterns in priority order: preprints, proceedings, IEEE/ACM
// events, top AI/ML and robotics acronyms with a year, journals and
// journal-family names.
var venuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)arXiv preprint`),
	regexp.MustCompile(`(?i)Proceedings of\s+[\w\s]+`),
	regexp.MustCompile(`(?i)In Proceedings of\s+[\w\s]+`),
	regexp.MustCompile(`(?i)IEEE.*?Conference`),
	regexp.MustCompile(`(?i)IEEE.*?Workshop`),
	regexp.MustCompile(`(?i)IEEE.*?Symposium`),
	regexp.MustCompile(`(?i)ACM.*?Conference`),
	regexp.MustCompile(`(?i)ACM.*?Workshop`),
	regexp.MustCompile(`(?i)\b(ICLR|ICML|NeurIPS|NIPS|CVPR|ICCV|ECCV|AAAI|IJCAI)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(ICRA|IROS|RSS|CoRL)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(Nature|Science|Cell)\b`),
	regexp.MustCompile(`(?i)Nature\s+\w+`),
	regexp.MustCompile(`(?i)Science\s+\w+`),
	regexp.MustCompile(`(?i)\b(SIGRAPH|SIGGRAPH|CHI|UIST|CSCW)\b`),
	regexp.MustCompile(`(?i)Journal of\s+[\w\s]+`),
	regexp.MustCompile(`(?i)IEEE Transactions on\s+[\w\s]+`),
	regexp.MustCompile(`(?i)ACM Transactions on\s+[\w\s]+`),
}

// High-confidence fallback patterns searched over the whole first page when
// the header window yields nothing.
var venueFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(ICLR|ICML|NeurIPS|NIPS|CVPR|ICCV|ECCV|AAAI|IJCAI)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(ICRA|IROS|RSS|CoRL)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\bNature\s+(?:Communications|Machine Intelligence|Robotics)\b`),
	regexp.MustCompile(`(?i)\bScience\s+(?:Robotics|Advances)\b`),
}

var (
	venueTrailingPunctRe = regexp.MustCompile(`[.,;:]+$`)
	authorShapedVenueRe  = regexp.MustCompile(`^[A-Z][a-z]+\d+[*†‡]*$`)
	venueAuthorPairRe    = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	venueNameNumberRe    = regexp.MustCompile(`\b[A-Z][a-z]+\d+\b`)
	allDigitsRe          = regexp.MustCompile(`^\d+$`)
)

var venueValidKeywords = []string{
	"conference", "workshop", "symposium", "journal", "transactions",
	"proceedings", "arxiv", "preprint",
	"ieee", "acm", "iclr", "icml", "neurips", "nips", "cvpr", "iccv",
	"eccv", "aaai", "ijcai", "icra", "iros", "rss", "corl",
}

// Journal names too generic to accept without supporting context.
var venueContextDependent = []string{"nature", "science", "cell"}

// ExtractVenue searches the first 20 lines against the ordered venue
// patterns, validating each hit, then falls back to the high-confidence
// patterns over the whole page. Empty means no venue found.
func ExtractVenue(firstPageText string) string {
	lines := strings.Split(firstPageText, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	header := strings.Join(lines, "\n")

	for _, re := range venuePatterns {
		m := re.FindString(header)
		if m == "" {
			continue
		}
		venue := cleanVenue(m)
		if venue != "" && utf8.RuneCountInString(venue) > 2 && isValidVenue(venue) {
			return venue
		}
	}

	for _, re := range venueFallbackPatterns {
		if m := re.FindString(firstPageText); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func cleanVenue(venue string) string {
	venue = strings.TrimSpace(whitespaceRe.ReplaceAllString(venue, " "))
	return venueTrailingPunctRe.ReplaceAllString(venue, "")
}

func isValidVenue(venue string) bool {
	// An author name with a footnote digit ("Ding12") is the classic false
	// positive here.
	if authorShapedVenueRe.MatchString(venue) {
		return false
	}
	if allDigitsRe.MatchString(venue) || utf8.RuneCountInString(venue) < 3 {
		return false
	}
	if venueAuthorPairRe.MatchString(venue) || venueNameNumberRe.MatchString(venue) {
		return false
	}

	lower := strings.ToLower(venue)
	if containsAny(lower, venueValidKeywords) {
		return true
	}
	if containsAny(lower, venueContextDependent) {
		return utf8.RuneCountInString(venue) > 10 ||
			containsAny(lower, []string{"communications", "robotics", "advances", "machine"})
	}
	// Short all-caps tokens pass as plausible conference acronyms; a known
	// precision trade-off.
	return utf8.RuneCountInString(venue) >= 4 && venue == strings.ToUpper(venue) &&
		strings.ContainsFunc(venue, func(r rune) bool { return r >= 'A' && r <= 'Z' })
}
