package pdfdoc

import (
	"strings"
	"testing"
)

func page(index int, fontSizes []float64, lines ...string) Page {
	runs := make([]Run, 0, len(lines))
	for i, l := range lines {
		size := 10.0
		if i < len(fontSizes) {
			size = fontSizes[i]
		}
		runs = append(runs, Run{Text: l, FontSize: size, Y: float64(800 - 12*i)})
	}
	return Page{Index: index, Text: strings.Join(lines, "\n"), Runs: runs}
}

func TestDetectTitleJoinsLargestFontLines(t *testing.T) {
	p := page(0,
		[]float64{6, 18, 17.8, 10, 10},
		"arXiv:2304.12345v2 [cs.RO] 1 Apr 2023",
		"Grounded Policies for",
		"Long-Horizon Manipulation",
		"Jane Doe, John Smith",
		"Abstract",
	)
	doc := Build("paper.pdf", []Page{p})
	if doc.Title != "Grounded Policies for Long-Horizon Manipulation" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if doc.TitlePage != 0 {
		t.Fatalf("unexpected title page: %d", doc.TitlePage)
	}
}

func TestDetectTitleExcludesArxivBannerAndShortRuns(t *testing.T) {
	p := page(0,
		[]float64{20, 19.9, 20},
		"arXiv preprint under review somewhere",
		"Tiny",
		"A Perfectly Reasonable Title",
	)
	doc := Build("p.pdf", []Page{p})
	if doc.Title != "A Perfectly Reasonable Title" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
}

func TestDetectTitleEmptyWhenNothingQualifies(t *testing.T) {
	p := page(0, []float64{10, 10}, "abcd", "arXiv only banner text")
	doc := Build("p.pdf", []Page{p})
	if doc.Title != "" {
		t.Fatalf("expected empty title, got %q", doc.Title)
	}
}

func TestSectionIndexFirstPageWinsAndAbsentNamesExcluded(t *testing.T) {
	pages := []Page{
		page(0, nil, "A Title", "Abstract", "the abstract body."),
		page(1, nil, "Introduction", "intro body."),
		page(2, nil, "more intro.", "Introduction", "repeated heading ignored."),
		page(3, nil, "Conclusion", "closing remarks."),
	}
	doc := Build("p.pdf", pages)

	want := []SectionRef{
		{Name: "Abstract", Page: 0},
		{Name: "Introduction", Page: 1},
		{Name: "Conclusion", Page: 3},
	}
	if len(doc.Sections) != len(want) {
		t.Fatalf("unexpected section refs: %+v", doc.Sections)
	}
	for i, ref := range want {
		if doc.Sections[i] != ref {
			t.Fatalf("section %d: got %+v want %+v", i, doc.Sections[i], ref)
		}
	}
	if _, ok := doc.SectionText["Methods"]; ok {
		t.Fatalf("absent section must not be recorded")
	}
}

func TestSectionAssemblyAcrossPages(t *testing.T) {
	pages := []Page{
		page(0, nil, "Some Title", "Abstract", "the abstract runs", "to the page end."),
		page(1, nil, "Introduction", "intro prose."),
		page(2, nil, "Conclusion", "closing remarks."),
	}
	doc := Build("p.pdf", pages)

	abs := doc.SectionText["Abstract"]
	if !strings.HasPrefix(abs, "Abstract") || !strings.Contains(abs, "to the page end.") {
		t.Fatalf("abstract not sliced to end of its page: %q", abs)
	}
	if strings.Contains(abs, "Introduction") {
		t.Fatalf("abstract leaked into the next page: %q", abs)
	}
	intro := doc.SectionText["Introduction"]
	if !strings.Contains(intro, "intro prose.") || strings.Contains(intro, "Conclusion") {
		t.Fatalf("unexpected introduction text: %q", intro)
	}
}

func TestSectionAssemblySharedPage(t *testing.T) {
	pages := []Page{
		page(0, nil, "Header stuff", "Abstract", "short abstract here.", "Introduction", "intro starts on the same page."),
		page(1, nil, "more intro prose."),
	}
	doc := Build("p.pdf", pages)

	abs := doc.SectionText["Abstract"]
	if !strings.Contains(abs, "short abstract here.") {
		t.Fatalf("abstract body missing: %q", abs)
	}
	if strings.Contains(abs, "Introduction") {
		t.Fatalf("shared-page abstract not cut at next heading: %q", abs)
	}
	intro := doc.SectionText["Introduction"]
	if !strings.Contains(intro, "more intro prose.") {
		t.Fatalf("introduction should span to document end: %q", intro)
	}
}

func TestSectionTextCleansHyphenationAndNewlines(t *testing.T) {
	pages := []Page{
		{Index: 0, Text: "Abstract\nthis line is hyphen-\nated and wraps\nacross lines.", Runs: []Run{{Text: "Abstract", FontSize: 10}}},
	}
	doc := Build("p.pdf", pages)
	abs := doc.SectionText["Abstract"]
	if !strings.Contains(abs, "hyphenated and wraps across lines.") {
		t.Fatalf("cleanup failed: %q", abs)
	}
}

func TestPaperInfoExcludesAbstractOnce(t *testing.T) {
	pages := []Page{
		page(0,
			[]float64{18, 18, 10, 10, 10},
			"A Large Font",
			"Title",
			"Jane Doe, John Smith",
			"Abstract",
			"the abstract body text.",
		),
		page(1, nil, "Introduction", "intro."),
	}
	doc := Build("p.pdf", pages)

	info := doc.SectionText["paper_info"]
	if !strings.Contains(info, "Jane Doe, John Smith") {
		t.Fatalf("paper_info lost the header block: %q", info)
	}
	if strings.Contains(info, "the abstract body text.") {
		t.Fatalf("paper_info still contains the abstract: %q", info)
	}
	if doc.SectionText["title"] != "A Large Font Title" {
		t.Fatalf("synthetic title key missing: %q", doc.SectionText["title"])
	}
}
