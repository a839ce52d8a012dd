package pdfdoc

import (
	"fmt"
	"strings"
)

// Run is one line of page text with the font metadata title detection needs.
type Run struct {
	Text     string
	FontSize float64
	Y        float64
}

// Page is an immutable unit of extracted document text.
type Page struct {
	Index int
	Text  string
	Runs  []Run
}

// SectionRef records where a canonical section heading was first observed.
// Slice order is document reading order, not canonical-list order.
type SectionRef struct {
	Name string
	Page int
}

// Document is the structured representation of one paper. It is fully
// derived at construction time; no PDF handle is retained.
type Document struct {
	Path      string
	Pages     []Page
	Title     string
	TitlePage int
	Sections  []SectionRef

	// SectionText maps canonical section names to assembled text, plus the
	// synthetic "title" and "paper_info" keys.
	SectionText map[string]string
}

// DocumentError wraps a failure that makes a whole document unusable.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string { return fmt.Sprintf("document %s: %v", e.Path, e.Err) }
func (e *DocumentError) Unwrap() error { return e.Err }

// Build derives a Document from extracted pages. It is pure so tests can
// feed synthetic pages without a PDF fixture.
func Build(path string, pages []Page) *Document {
	title, titlePage := detectTitle(pages)
	refs := indexSections(pages)
	texts, rawAbstract := assembleSections(pages, refs)

	texts["title"] = title
	texts["paper_info"] = paperInfo(pages, titlePage, rawAbstract)

	return &Document{
		Path:        path,
		Pages:       pages,
		Title:       title,
		TitlePage:   titlePage,
		Sections:    refs,
		SectionText: texts,
	}
}

// paperInfo isolates the header block (authors, affiliations, venue stamp)
// by removing the abstract body from the title page once. The removal uses
// the raw assembled slice so it actually matches the page text.
func paperInfo(pages []Page, titlePage int, rawAbstract string) string {
	if len(pages) == 0 {
		return ""
	}
	if titlePage < 0 || titlePage >= len(pages) {
		titlePage = 0
	}
	text := pages[titlePage].Text
	if rawAbstract != "" {
		text = strings.Replace(text, rawAbstract, "", 1)
	}
	return text
}

// FirstPageText is the text the metadata extractors operate on: the page
// carrying the title, falling back to the first page.
func (d *Document) FirstPageText() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	p := d.TitlePage
	if p < 0 || p >= len(d.Pages) {
		p = 0
	}
	return d.Pages[p].Text
}
