package survey

import (
	"strings"

	"litscan/internal/pdfdoc"
)

// BuildLabeledText flattens a structured document into the labeled form the
// prompt and the sections truncation strategy both understand: a Title line,
// a Paper_info line, then each recognized section in reading order.
func BuildLabeledText(doc *pdfdoc.Document) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(doc.Title)
	b.WriteString("\n")
	b.WriteString("Paper_info: ")
	b.WriteString(doc.SectionText["paper_info"])
	b.WriteString("\n")
	for _, ref := range doc.Sections {
		text, ok := doc.SectionText[ref.Name]
		if !ok {
			continue
		}
		b.WriteString(ref.Name)
		b.WriteString(": ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
