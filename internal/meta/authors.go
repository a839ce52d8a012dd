package meta

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var institutionKeywords = []string{
	"university", "institute", "laboratory", "lab", "research",
	"center", "centre", "college", "school", "academy",
	"dept", "department", "faculty", "division", "group", "team",
	"ai2robotics", "nvidia", "google", "microsoft", "meta", "amazon",
	"tsinghua university", "peking university", "georgia institute of technology",
	"chinese university of hong kong", "state key laboratory",
	"beijing academy of artificial intelligence",
}

var authorExcludeKeywords = []string{
	"abstract", "introduction", "email:", "code:", "http",
	"figure", "table", "acknowledgments", "references",
	"appendix", "supplementary material", "contact",
	"copyright", "license", "disclaimer",
}

// Words that signal a line (or candidate) is really title text, not a name.
var titleIndicators = []string{
	"survey", "analysis", "model", "system", "architecture", "framework",
	"robotic", "manipulation", "vision", "language", "action",
}

var authorInvalidWords = []string{
	"university", "institute", "department", "laboratory", "center", "school",
	"college", "corp", "inc", "ltd", "group", "team", "intelligence",
	"berkeley", "stanford", "mit", "research", "technologies", "lab",
	"moscow", "russia", "china", "beijing", "shanghai", "california", "texas",
	"london", "paris", "tokyo", "seoul", "singapore",
	"dataset", "chat", "model", "system", "framework", "algorithm", "science",
	"engineering", "computer", "artificial", "machine", "learning", "vision",
	"language", "action", "robot", "robotics",
	"proceedings", "conference", "workshop", "journal", "nature", "ieee",
	"acm", "cvpr", "iccv", "nips", "icml", "iclr",
	"applications", "abstract", "paper", "study", "analysis", "method", "approach",
}

var (
	nameTokenRe    = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`)
	capitalWordRe  = regexp.MustCompile(`\b[A-Z][a-z]*\b`)
	footnoteMarkRe = regexp.MustCompile(`[\d*†‡∗]`)
	commaAndSplit  = regexp.MustCompile(`,|and`)

	emailRe         = regexp.MustCompile(`\S+@\S+\.\S+`)
	emailStripRe    = regexp.MustCompile(`\S*@\S*\s?`)
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:street|st|avenue|ave|road|rd|drive|dr|blvd|boulevard)\b`),
		regexp.MustCompile(`(?i)\b[A-Z]{2}\s+\d{5}\b`),
		regexp.MustCompile(`(?i)\b\d{5}\s+[A-Z][a-z]+\b`),
	}

	semicolonSplitRe  = regexp.MustCompile(`\s*;\s*`)
	commaSplitRe      = regexp.MustCompile(`,\s*`)
	andSplitRe        = regexp.MustCompile(`\s+and\s+`)
	fullNameShapeRe   = regexp.MustCompile(`^[A-Z][a-z]*(?:\s+[A-Z][a-z]*)*\s*[*†‡\d]*$`)
	firstNameShapeRe  = regexp.MustCompile(`^[A-Z][a-z]*(?:\s+[A-Z]\.?)*$`)
	blobNameRe        = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]*\.?)*\s+[A-Z][a-z]+)(?:\d+[*†‡]*)?`)
	concatenatedRunRe = regexp.MustCompile(`\b(?:[A-Z][a-z]+\s+[A-Z][a-z]+)(?:\d+[*†‡]*\s*)+(?:[A-Z][a-z]+\s+[A-Z][a-z]+)`)
	markedNameRe      = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\d+[*†‡]*\s*)*`)
	pairNameRe        = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\b`)
	markStripRe       = regexp.MustCompile(`[\d*†‡∗]+`)
	embeddedNameRe    = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]*\.?)*\s+[A-Z][a-z]+`)
)

// Name shapes a cleaned candidate must match to count as a person.
var nameShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]\.\s*[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z]\.\s*[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]\.$`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+\s+[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]+\s+[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+-[A-Z][a-z]+\s+[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+-[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+$`),
}

// ExtractAuthors isolates author names from the block that follows the
// title. It returns the sentinel when nothing survives the filters.
func ExtractAuthors(firstPageText, title string) string {
	if title == "" {
		return NotMentioned
	}

	var lines []string
	for _, l := range strings.Split(firstPageText, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	titleWords := wordSet(strings.ToLower(cleanTitle(title)))
	if len(titleWords) == 0 {
		return NotMentioned
	}

	// The title may span several lines; the last line sharing more than
	// half the title's words marks the end of the title block.
	titleEnd := -1
	for i, line := range lines {
		lineWords := wordSet(strings.ToLower(line))
		overlap := 0
		for w := range titleWords {
			if lineWords[w] {
				overlap++
			}
		}
		if float64(overlap)/float64(len(titleWords)) > 0.5 {
			titleEnd = i
		}
	}
	if titleEnd == -1 {
		return NotMentioned
	}

	var authorLines []string
	for i := titleEnd + 1; i < titleEnd+8 && i < len(lines); i++ {
		lower := strings.ToLower(lines[i])
		if strings.Contains(lower, "abstract") || strings.Contains(lower, "introduction") {
			break
		}
		if isLikelyAuthorLine(lines[i]) {
			authorLines = append(authorLines, lines[i])
		}
	}
	if len(authorLines) == 0 {
		return NotMentioned
	}
	return extractAuthorNames(strings.Join(authorLines, " "))
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func isLikelyAuthorLine(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < 5 || n > 400 {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range authorExcludeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	if isAffiliationLine(line) {
		return false
	}

	hasSeparator := strings.ContainsAny(line, ";,") || strings.Contains(lower, "and")
	if len(nameTokenRe.FindAllString(line, -1)) >= 1 && hasSeparator &&
		len(commaAndSplit.Split(line, -1)) > 1 {
		return true
	}
	if len(capitalWordRe.FindAllString(line, -1)) >= 2 {
		return true
	}
	// Footnote marks attached to names.
	return footnoteMarkRe.MatchString(line)
}

func isAffiliationLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range institutionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if emailRe.MatchString(line) {
		return true
	}
	for _, re := range addressPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func extractAuthorNames(authorText string) string {
	// When title text bled into the author block, skip forward to the first
	// name-shaped token after a title-indicator word.
	for _, indicator := range titleIndicators {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(indicator) + `\b`)
		loc := re.FindStringIndex(authorText)
		if loc == nil {
			continue
		}
		post := authorText[loc[1]:]
		if nameLoc := embeddedNameRe.FindStringIndex(post); nameLoc != nil {
			authorText = post[nameLoc[0]:]
			break
		}
	}

	authorText = parentheticalRe.ReplaceAllString(authorText, "")
	authorText = emailStripRe.ReplaceAllString(authorText, "")
	for _, kw := range institutionKeywords {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		authorText = re.ReplaceAllString(authorText, "")
	}
	authorText = strings.TrimSpace(whitespaceRe.ReplaceAllString(authorText, " "))

	raw := splitAuthorTokens(authorText)
	raw = expandConcatenatedNames(raw)

	var cleaned []string
	seen := map[string]bool{}
	for _, author := range raw {
		author = strings.TrimSpace(author)
		if author == "" {
			continue
		}
		clean := strings.TrimSpace(markStripRe.ReplaceAllString(author, ""))
		if n := utf8.RuneCountInString(clean); n < 3 || n > 40 {
			continue
		}
		if containsAny(strings.ToLower(clean), titleIndicators) {
			clean = salvageNameFromTitleMix(clean)
			if clean == "" {
				continue
			}
		}
		if !matchesNameShape(clean) || containsAny(strings.ToLower(clean), authorInvalidWords) {
			continue
		}
		if containsAny(strings.ToLower(clean), institutionKeywords) {
			continue
		}
		if !seen[clean] {
			seen[clean] = true
			cleaned = append(cleaned, clean)
		}
	}

	switch {
	case len(cleaned) == 0:
		return NotMentioned
	case len(cleaned) == 1:
		return cleaned[0]
	case len(cleaned) > 5:
		return strings.Join(cleaned[:5], ", ") + " et al."
	default:
		return strings.Join(cleaned, ", ")
	}
}

// splitAuthorTokens cuts the cleaned blob into raw candidates: semicolons
// are the most reliable separator, then commas (merging "Last, First"
// pairs), then " and ". A single over-long token falls back to a
// name-shaped regexp scan.
func splitAuthorTokens(authorText string) []string {
	var raw []string
	switch {
	case strings.Contains(authorText, ";"):
		raw = semicolonSplitRe.Split(authorText, -1)
	case strings.Contains(authorText, ","):
		parts := commaSplitRe.Split(authorText, -1)
		for i := 0; i < len(parts); i++ {
			part := strings.TrimSpace(parts[i])
			if fullNameShapeRe.MatchString(part) {
				raw = append(raw, part)
			} else if i+1 < len(parts) {
				next := strings.TrimSpace(parts[i+1])
				if firstNameShapeRe.MatchString(next) {
					raw = append(raw, next+" "+part)
					i++
				} else {
					raw = append(raw, part)
				}
			} else {
				raw = append(raw, part)
			}
		}
	default:
		raw = andSplitRe.Split(authorText, -1)
	}

	if len(raw) == 1 && utf8.RuneCountInString(raw[0]) > 50 {
		var names []string
		for _, m := range blobNameRe.FindAllStringSubmatch(raw[0], -1) {
			names = append(names, m[1])
		}
		if len(names) > 1 {
			raw = names
		}
	}
	return raw
}

// expandConcatenatedNames splits runs like "Shangke Lyu2 Ying Peng2 Donglin
// Wang2" that footnote markers glued together.
func expandConcatenatedNames(raw []string) []string {
	var out []string
	for _, author := range raw {
		author = strings.TrimSpace(author)
		if author == "" {
			continue
		}
		if concatenatedRunRe.MatchString(author) {
			var names []string
			for _, m := range markedNameRe.FindAllStringSubmatch(author, -1) {
				names = append(names, m[1])
			}
			if len(names) > 1 {
				out = append(out, names...)
				continue
			}
		}
		out = append(out, author)
	}
	return out
}

// salvageNameFromTitleMix pulls the first person-shaped pair out of a
// candidate contaminated with title words, or gives up with "".
func salvageNameFromTitleMix(candidate string) string {
	for _, m := range pairNameRe.FindAllStringSubmatch(candidate, -1) {
		if !containsAny(strings.ToLower(m[1]), titleIndicators) {
			return m[1]
		}
	}
	return ""
}

func matchesNameShape(candidate string) bool {
	for _, re := range nameShapePatterns {
		if re.MatchString(candidate) {
			return true
		}
	}
	return false
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
