package pdfdoc

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const titleFontTolerance = 0.3

// detectTitle joins the lines rendered in the document's largest fonts.
// A line qualifies when its font size is within the tolerance of the largest
// or second-largest observed size (duplicates count, so a title spanning two
// lines claims both slots), it is longer than 4 characters, and it is not an
// "arXiv" banner. The title page is the page of the last qualifying line.
func detectTitle(pages []Page) (string, int) {
	var sizes []float64
	for _, p := range pages {
		for _, run := range p.Runs {
			sizes = append(sizes, run.FontSize)
		}
	}
	if len(sizes) == 0 {
		return "", 0
	}
	sort.Float64s(sizes)
	largest := sizes[len(sizes)-1]
	second := largest
	if len(sizes) > 1 {
		second = sizes[len(sizes)-2]
	}

	var fragments []string
	titlePage := 0
	for _, p := range pages {
		for _, run := range p.Runs {
			if math.Abs(run.FontSize-largest) >= titleFontTolerance &&
				math.Abs(run.FontSize-second) >= titleFontTolerance {
				continue
			}
			if utf8.RuneCountInString(run.Text) <= 4 || strings.Contains(run.Text, "arXiv") {
				continue
			}
			fragments = append(fragments, strings.ReplaceAll(run.Text, "\n", " "))
			titlePage = p.Index
		}
	}
	return strings.Join(fragments, " "), titlePage
}
