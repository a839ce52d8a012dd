package meta

import (
	"strings"
	"testing"
)

func TestExtractAuthorsBasic(t *testing.T) {
	text := "A Study\nJia-Feng Cai, Ying Peng, Donglin Wang1\nZhejiang University\nAbstract: we study things."
	got := ExtractAuthors(text, "A Study")
	if got != "Jia-Feng Cai, Ying Peng, Donglin Wang" {
		t.Fatalf("unexpected authors: %q", got)
	}
	if strings.Contains(got, "Zhejiang") {
		t.Fatalf("affiliation leaked into authors: %q", got)
	}
}

func TestExtractAuthorsExpandsFootnoteRun(t *testing.T) {
	text := "Policies For Robots\nShangke Lyu2 Ying Peng2 Donglin Wang2\nWestlake University\nAbstract"
	got := ExtractAuthors(text, "Policies For Robots")
	for _, name := range []string{"Shangke Lyu", "Ying Peng", "Donglin Wang"} {
		if !strings.Contains(got, name) {
			t.Fatalf("missing %q in %q", name, got)
		}
	}
}

func TestExtractAuthorsEtAlAfterFive(t *testing.T) {
	text := "Big Collaboration Paper\n" +
		"Alice Smith; Bob Jones; Carol White; Dan Brown; Erin Green; Frank Black; Grace Stone\n" +
		"Abstract"
	got := ExtractAuthors(text, "Big Collaboration Paper")
	if !strings.HasSuffix(got, " et al.") {
		t.Fatalf("expected et al. suffix: %q", got)
	}
	if strings.Count(got, ",") != 4 {
		t.Fatalf("expected exactly 5 listed names: %q", got)
	}
}

func TestExtractAuthorsSentinelWhenMissing(t *testing.T) {
	if got := ExtractAuthors("no matching title line here", "Some Unrelated Title"); got != NotMentioned {
		t.Fatalf("expected sentinel, got %q", got)
	}
	if got := ExtractAuthors("anything", ""); got != NotMentioned {
		t.Fatalf("expected sentinel for empty title, got %q", got)
	}
}

func TestExtractVenueProceedings(t *testing.T) {
	got := ExtractVenue("Some Title\nProceedings of CoRL 2024\nmore header text")
	if !strings.Contains(got, "CoRL 2024") {
		t.Fatalf("unexpected venue: %q", got)
	}
}

func TestExtractVenueRejectsAuthorShaped(t *testing.T) {
	if got := ExtractVenue("Smith12\nplain body text with no venue"); got != "" {
		t.Fatalf("author-shaped text yielded venue %q", got)
	}
}

func TestExtractVenueFallbackAcronym(t *testing.T) {
	lines := make([]string, 25)
	for i := range lines {
		lines[i] = "header filler line"
	}
	text := strings.Join(lines, "\n") + "\nAccepted at ICRA 2023 for presentation."
	if got := ExtractVenue(text); !strings.Contains(got, "ICRA 2023") {
		t.Fatalf("fallback missed acronym venue: %q", got)
	}
}

func TestExtractDOI(t *testing.T) {
	got := ExtractDOI("available at https://doi.org/10.1038/s41586-023-1234-5. See also")
	if got != "10.1038/s41586-023-1234-5" {
		t.Fatalf("unexpected DOI: %q", got)
	}
	if got := ExtractDOI("no identifiers here"); got != "" {
		t.Fatalf("expected empty DOI, got %q", got)
	}
}

func TestExtractArxivID(t *testing.T) {
	if got := ExtractArxivID("see arXiv:2304.12345v2 for details"); got != "2304.12345v2" {
		t.Fatalf("unexpected arxiv id: %q", got)
	}
	// Month 99 fails the new-format check but the loose rule still accepts.
	if got := ExtractArxivID("see arXiv:2404.99999"); got != "2404.99999" {
		t.Fatalf("unexpected loose-rule result: %q", got)
	}
	if got := ExtractArxivID("plain text"); got != "" {
		t.Fatalf("expected empty arxiv id, got %q", got)
	}
}

func TestExtractYearPrefersPath(t *testing.T) {
	got := ExtractYear("published 2019", "papers/2023/foo_2021.pdf")
	if got != "2023" {
		t.Fatalf("expected path year 2023, got %q", got)
	}
	if got := ExtractYear("camera ready 2019, revised 2020", "foo.pdf"); got != "2020" {
		t.Fatalf("expected newest text year, got %q", got)
	}
	if got := ExtractYear("no dates", "foo.pdf"); got != NotMentioned {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestExtractAbstractAndKeywords(t *testing.T) {
	text := "Title Line\nAbstract\nThis is the abstract body\nwhich wraps lines.\n\nIntroduction\nbody"
	abs := ExtractAbstract(text)
	if abs != "This is the abstract body which wraps lines." {
		t.Fatalf("unexpected abstract: %q", abs)
	}

	kws := ExtractKeywords("Keywords: robot learning, manipulation; AI\nIntroduction")
	if len(kws) != 2 || kws[0] != "robot learning" || kws[1] != "manipulation" {
		t.Fatalf("unexpected keywords: %#v", kws)
	}
}

func TestExtractAggregatesWithSentinels(t *testing.T) {
	m := Extract("completely unstructured text", "", "nopath.pdf")
	if m.Authors != NotMentioned {
		t.Fatalf("authors: %q", m.Authors)
	}
	if m.Year != NotMentioned {
		t.Fatalf("year: %q", m.Year)
	}
	if m.Venue != "" || m.DOI != "" || m.ArxivID != "" {
		t.Fatalf("expected empty venue/doi/arxiv: %+v", m)
	}
}
