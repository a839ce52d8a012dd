package survey

import (
	"fmt"
	"strings"
	"time"
)

// Counts summarizes one batch run.
type Counts struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func (c Counts) Total() int { return c.Processed + c.Skipped + c.Failed }

// Report is the human-readable summary written after a batch run.
type Report struct {
	RunID    string
	Keyword  string
	CSVPath  string
	Counts   Counts
	Started  time.Time
	Finished time.Time
	Failures []string

	// Analysis is nil when the merged CSV could not be aggregated.
	Analysis *Aggregate
}

// Markdown renders the report for the export directory.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Survey Run Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "- Keyword: %s\n", r.Keyword)
	fmt.Fprintf(&b, "- Started: %s\n", r.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Finished: %s\n", r.Finished.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Merged CSV: %s\n\n", r.CSVPath)
	b.WriteString("## Outcome\n\n")
	fmt.Fprintf(&b, "| processed | skipped | failed | total |\n|---|---|---|---|\n| %d | %d | %d | %d |\n",
		r.Counts.Processed, r.Counts.Skipped, r.Counts.Failed, r.Counts.Total())
	if len(r.Failures) > 0 {
		b.WriteString("\n## Failed documents\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if r.Analysis != nil {
		writeAnalysis(&b, *r.Analysis)
	}
	return b.String()
}

func writeAnalysis(b *strings.Builder, a Aggregate) {
	b.WriteString("\n## Corpus analysis\n\n")
	fmt.Fprintf(b, "Papers in merged CSV: %d\n\n", a.Papers)

	b.WriteString("### Resource bottlenecks\n\n")
	b.WriteString("| both | data only | compute only | none |\n|---|---|---|---|\n")
	fmt.Fprintf(b, "| %d | %d | %d | %d |\n\n",
		a.BothBottlenecks, a.DataOnly, a.ComputeOnly, a.NoBottleneck)

	if len(a.Years) > 0 {
		b.WriteString("### Papers per year\n\n")
		for _, y := range sortedKeys(a.Years) {
			fmt.Fprintf(b, "- %s: %d\n", y, a.Years[y])
		}
		b.WriteString("\n")
	}
	if len(a.Architectures) > 0 {
		b.WriteString("### Architecture types\n\n")
		for _, e := range topCounts(a.Architectures, 0) {
			fmt.Fprintf(b, "- %s: %d\n", e.Key, e.Count)
		}
		b.WriteString("\n")
	}
	if len(a.Venues) > 0 {
		b.WriteString("### Top venues\n\n")
		for _, e := range topCounts(a.Venues, 10) {
			fmt.Fprintf(b, "- %s: %d\n", e.Key, e.Count)
		}
	}
}
