// Package meta extracts bibliographic metadata (authors, venue, DOI, arXiv
// id, year) from first-page paper text with best-effort heuristics. Every
// extractor is a pure function that degrades to an absent value, never an
// error.
package meta

import (
	"log"
	"regexp"
	"strings"
)

// NotMentioned marks a field no heuristic could fill. It is distinguishable
// from an empty-but-valid extraction.
const NotMentioned = "not mentioned"

// PaperMetadata is derived from page text alone, independent of the section
// structure. Authors and Year carry the sentinel on a miss; Venue, DOI and
// ArxivID stay empty so callers can tell absence from the sentinel.
type PaperMetadata struct {
	Title    string   `json:"title"`
	Authors  string   `json:"authors"`
	Year     string   `json:"year"`
	Abstract string   `json:"abstract"`
	Keywords []string `json:"keywords,omitempty"`
	Venue    string   `json:"venue,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	ArxivID  string   `json:"arxiv_id,omitempty"`
}

// Extract runs every extractor over the first-page text. A panic inside a
// heuristic is contained here: the field stays at its absent value and the
// batch moves on.
func Extract(firstPage, title, path string) (m PaperMetadata) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("metadata extraction recovered: %v", r)
			if m.Authors == "" {
				m.Authors = NotMentioned
			}
			if m.Year == "" {
				m.Year = NotMentioned
			}
		}
	}()

	m.Title = cleanTitle(title)
	m.Authors = ExtractAuthors(firstPage, title)
	m.Year = ExtractYear(firstPage, path)
	m.Abstract = ExtractAbstract(firstPage)
	m.Keywords = ExtractKeywords(firstPage)
	m.Venue = ExtractVenue(firstPage)
	m.DOI = ExtractDOI(firstPage)
	m.ArxivID = ExtractArxivID(firstPage)
	return m
}

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingMarksRe = regexp.MustCompile(`[*†‡]+$`)
)

// cleanTitle folds a possibly multi-line title into one line and strips a
// trailing footnote mark.
func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
	return strings.TrimSpace(trailingMarksRe.ReplaceAllString(title, ""))
}
