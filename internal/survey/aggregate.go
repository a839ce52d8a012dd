package survey

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"litscan/internal/meta"
)

// Aggregate holds the corpus-level distributions computed from a merged CSV.
type Aggregate struct {
	Papers        int            `json:"papers"`
	Years         map[string]int `json:"years"`
	Venues        map[string]int `json:"venues"`
	Architectures map[string]int `json:"architectures"`

	// Bottleneck combinations, keyed off the yes/no analysis columns.
	BothBottlenecks int `json:"both_bottlenecks"`
	DataOnly        int `json:"data_only"`
	ComputeOnly     int `json:"compute_only"`
	NoBottleneck    int `json:"no_bottleneck"`
}

// AggregateCSV reads a merged survey CSV and tallies the distributions the
// run report presents. Header rows and short rows are skipped.
func AggregateCSV(path string) (Aggregate, error) {
	f, err := os.Open(path)
	if err != nil {
		return Aggregate{}, fmt.Errorf("open merged csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return Aggregate{}, fmt.Errorf("read merged csv: %w", err)
	}

	agg := Aggregate{
		Years:         map[string]int{},
		Venues:        map[string]int{},
		Architectures: map[string]int{},
	}
	for _, row := range rows {
		if len(row) < len(Columns) || row[colTitle] == Columns[colTitle] {
			continue
		}
		agg.Papers++
		tally(agg.Years, row[colYear])
		tally(agg.Venues, row[colVenue])
		tally(agg.Architectures, row[colArchitecture])

		data := isYes(row[colDataBottleneck])
		compute := isYes(row[colComputeBottleneck])
		switch {
		case data && compute:
			agg.BothBottlenecks++
		case data:
			agg.DataOnly++
		case compute:
			agg.ComputeOnly++
		default:
			agg.NoBottleneck++
		}
	}
	return agg, nil
}

func tally(m map[string]int, v string) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, meta.NotMentioned) {
		return
	}
	m[v]++
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}

type countEntry struct {
	Key   string
	Count int
}

// topCounts orders a tally by descending count, ties broken by key, and
// keeps at most n entries. n <= 0 keeps everything.
func topCounts(m map[string]int, n int) []countEntry {
	out := make([]countEntry, 0, len(m))
	for k, c := range m {
		out = append(out, countEntry{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
