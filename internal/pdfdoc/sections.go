package pdfdoc

import "strings"

// sectionPattern pairs a canonical section name with its page-matching rule.
// Headings match line-exact (literal name followed by a newline, in given or
// upper case); "Abstract" also matches bare since abstracts often run on
// without a separate heading line.
type sectionPattern struct {
	Name      string
	MatchBare bool
}

// Canonical section names in priority order. First match per name wins
// across the page scan.
var sectionPatterns = []sectionPattern{
	{Name: "Abstract", MatchBare: true},
	{Name: "Introduction"},
	{Name: "Related Work"},
	{Name: "Background"},
	{Name: "Preliminary"},
	{Name: "Problem Formulation"},
	{Name: "Methods"},
	{Name: "Methodology"},
	{Name: "Method"},
	{Name: "Approach"},
	{Name: "Approaches"},
	{Name: "Materials and Methods"},
	{Name: "Experiment Settings"},
	{Name: "Experiment"},
	{Name: "Experimental Results"},
	{Name: "Evaluation"},
	{Name: "Experiments"},
	{Name: "Results"},
	{Name: "Findings"},
	{Name: "Data Analysis"},
	{Name: "Discussion"},
	{Name: "Results and Discussion"},
	{Name: "Conclusion"},
	{Name: "References"},
}

func (sp sectionPattern) matches(pageText string) bool {
	if sp.MatchBare && strings.Contains(pageText, sp.Name) {
		return true
	}
	return strings.Contains(pageText, sp.Name+"\n") ||
		strings.Contains(pageText, strings.ToUpper(sp.Name)+"\n")
}

// indexSections records, per canonical name, the first page whose text
// matches the heading pattern. Names never found are absent. The returned
// order is first-appearance order across pages.
func indexSections(pages []Page) []SectionRef {
	found := map[string]bool{}
	refs := make([]SectionRef, 0, 8)
	for _, p := range pages {
		for _, sp := range sectionPatterns {
			if found[sp.Name] {
				continue
			}
			if sp.matches(p.Text) {
				found[sp.Name] = true
				refs = append(refs, SectionRef{Name: sp.Name, Page: p.Index})
			}
		}
	}
	return refs
}

// headingIndex locates a heading occurrence in page text, trying the given
// case then upper case.
func headingIndex(text, name string) int {
	if i := strings.Index(text, name); i >= 0 {
		return i
	}
	return strings.Index(text, strings.ToUpper(name))
}

// assembleSections slices continuous text per indexed section. Each
// section's end boundary is the next section's start page (page count for
// the last). Sections that share a page with their successor are cut at the
// successor's heading on that page. The returned rawAbstract is the
// pre-cleanup slice of the Abstract, used to subtract it from the title
// page.
func assembleSections(pages []Page, refs []SectionRef) (map[string]string, string) {
	texts := make(map[string]string, len(refs)+2)
	rawAbstract := ""

	for i, ref := range refs {
		endPage := len(pages)
		nextName := ""
		if i+1 < len(refs) {
			endPage = refs[i+1].Page
			nextName = refs[i+1].Name
		}

		var raw strings.Builder
		if endPage == ref.Page {
			// Zero-span: this section and the next share a page.
			pageText := pages[ref.Page].Text
			start := headingIndex(pageText, ref.Name)
			if start < 0 {
				start = 0
			}
			end := headingIndex(pageText, nextName)
			if end < start {
				end = len(pageText)
			}
			raw.WriteString(pageText[start:end])
		} else {
			for pi := ref.Page; pi < endPage; pi++ {
				pageText := pages[pi].Text
				if pi == ref.Page {
					start := headingIndex(pageText, ref.Name)
					if start < 0 {
						start = 0
					}
					raw.WriteString(pageText[start:])
				} else {
					raw.WriteString(pageText)
				}
			}
			if nextName != "" && endPage < len(pages) {
				pageText := pages[endPage].Text
				if end := headingIndex(pageText, nextName); end > 0 {
					raw.WriteString(pageText[:end])
				}
			}
		}

		if ref.Name == "Abstract" {
			rawAbstract = raw.String()
		}
		texts[ref.Name] = cleanSectionText(raw.String())
	}
	return texts, rawAbstract
}

// cleanSectionText collapses line-wrap hyphenation and folds the section
// into one line.
func cleanSectionText(s string) string {
	s = strings.ReplaceAll(s, "-\n", "")
	return strings.ReplaceAll(s, "\n", " ")
}
