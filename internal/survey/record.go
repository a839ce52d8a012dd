package survey

import (
	"encoding/csv"
	"fmt"
	"strings"

	"litscan/internal/meta"
)

// Record is one data row of the merged CSV, aligned with Columns.
type Record []string

// ParseResponse extracts the header and data row from a model response.
// The contract is exactly two CSV lines; anything else is rejected so a
// malformed reply can never reach the shared output file.
func ParseResponse(text string) (Record, error) {
	lines := nonEmptyLines(stripCodeFences(text))
	if len(lines) < 2 {
		return nil, fmt.Errorf("expected header and data line, got %d lines", len(lines))
	}
	header, err := parseCSVLine(lines[0])
	if err != nil {
		return nil, fmt.Errorf("parse header line: %w", err)
	}
	data, err := parseCSVLine(lines[1])
	if err != nil {
		return nil, fmt.Errorf("parse data line: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(Columns))
	}
	if len(data) != len(Columns) {
		return nil, fmt.Errorf("data row has %d columns, want %d", len(data), len(Columns))
	}
	rec := make(Record, len(data))
	for i, v := range data {
		v = strings.TrimSpace(v)
		if v == "" {
			v = meta.NotMentioned
		}
		rec[i] = v
	}
	return rec, nil
}

// MergeMetadata overrides the bibliographic columns with locally extracted
// values, which are deterministic where the model tends to paraphrase.
func MergeMetadata(rec Record, md meta.PaperMetadata) Record {
	if len(rec) != len(Columns) {
		return rec
	}
	out := make(Record, len(rec))
	copy(out, rec)
	if t := strings.TrimSpace(md.Title); t != "" {
		out[colTitle] = t
	}
	if hasValue(md.Authors) {
		out[colAuthors] = md.Authors
	}
	if hasValue(md.Year) {
		out[colYear] = md.Year
	}
	if strings.TrimSpace(md.Venue) != "" {
		out[colVenue] = md.Venue
	}
	if strings.TrimSpace(md.DOI) != "" {
		out[colDOI] = md.DOI
	}
	if strings.TrimSpace(md.ArxivID) != "" {
		out[colArxivID] = md.ArxivID
	}
	return out
}

func hasValue(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.EqualFold(s, meta.NotMentioned)
}

func parseCSVLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
