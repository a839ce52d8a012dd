package pdfdoc

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"litscan/internal/util"
)

// Load opens a PDF, extracts per-page text and font runs, and derives the
// Document. The file handle is closed before Load returns on every path.
func Load(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	defer f.Close()

	pages := readPages(r)
	if len(pages) == 0 {
		return nil, &DocumentError{Path: path, Err: util.ErrEmptyDocument}
	}
	hasText := false
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		return nil, &DocumentError{Path: path, Err: util.ErrNoExtractableText}
	}
	return Build(path, pages), nil
}

func readPages(r *pdf.Reader) []Page {
	total := r.NumPage()
	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		runs := readRuns(p)

		lines := make([]string, 0, len(runs))
		for _, run := range runs {
			lines = append(lines, run.Text)
		}
		text := strings.Join(lines, "\n")
		if text == "" {
			if plain, err := p.GetPlainText(nil); err == nil {
				text = plain
			}
		}
		pages = append(pages, Page{Index: len(pages), Text: util.SanitizeText(text), Runs: runs})
	}
	return pages
}

// readRuns flattens a page into per-line runs. Row text joins the row's
// spans, inserting a space only when the horizontal gap between spans says
// the words were separate.
func readRuns(p pdf.Page) []Run {
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil
	}
	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		var size float64
		prevEnd := 0.0
		for i, word := range row.Content {
			if i > 0 && word.X-prevEnd > 1 &&
				!strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(word.S, " ") {
				b.WriteByte(' ')
			}
			b.WriteString(word.S)
			prevEnd = word.X + word.W
			if word.FontSize > size {
				size = word.FontSize
			}
		}
		text := strings.TrimRight(b.String(), " ")
		if strings.TrimSpace(text) == "" {
			continue
		}
		runs = append(runs, Run{Text: text, FontSize: size, Y: float64(row.Position)})
	}
	return runs
}
