package tokenbudget

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Strategy selects how Truncate condenses over-budget text.
type Strategy string

const (
	StrategyFront    Strategy = "front"
	StrategyBalanced Strategy = "balanced"
	StrategySections Strategy = "sections"
)

// ParseStrategy maps a config string to a Strategy, falling back to
// balanced for anything unrecognized.
func ParseStrategy(s string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyFront:
		return StrategyFront
	case StrategySections:
		return StrategySections
	default:
		return StrategyBalanced
	}
}

// ErrInvalidBudget reports a reservation that leaves no usable content budget.
var ErrInvalidBudget = errors.New("reserved tokens leave no room for content")

const (
	balancedElisionMarker = "\n\n[...content omitted for length...]\n\n"
	sectionElisionMarker  = "\n\n[...section truncated for length...]\n\n"
)

// Manager condenses text under a fixed model context budget.
type Manager struct {
	maxTokens int
}

func NewManager(maxTokens int) *Manager {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Manager{maxTokens: maxTokens}
}

func (m *Manager) MaxTokens() int { return m.maxTokens }

// Truncate returns text unchanged when it fits within maxTokens minus
// reserved, and otherwise condenses it with the chosen strategy. The result
// is a pure function of (text, budget, strategy).
func (m *Manager) Truncate(text string, reserved int, strategy Strategy) (string, error) {
	usable := m.maxTokens - reserved
	if usable <= 0 {
		return "", fmt.Errorf("max %d tokens with %d reserved: %w", m.maxTokens, reserved, ErrInvalidBudget)
	}
	if CountTokens(text) <= usable {
		return text, nil
	}
	switch strategy {
	case StrategyFront:
		return truncateFront(text, usable), nil
	case StrategySections:
		return truncateSections(text, usable), nil
	default:
		return truncateBalanced(text, usable), nil
	}
}

func truncateFront(text string, maxTokens int) string {
	tokens := Encode(text)
	if len(tokens) > maxTokens {
		return cleanDangling(Decode(tokens[:maxTokens]))
	}
	return text
}

func truncateBalanced(text string, maxTokens int) string {
	tokens := Encode(text)
	if len(tokens) <= maxTokens {
		return text
	}

	frontN := maxTokens * 40 / 100
	backN := maxTokens * 40 / 100

	combined := Decode(tokens[:frontN]) + balancedElisionMarker + Decode(tokens[len(tokens)-backN:])

	if CountTokens(combined) > maxTokens {
		available := maxTokens - CountTokens(balancedElisionMarker)
		frontN = available / 2
		backN = available - frontN
		if frontN < 0 {
			frontN = 0
		}
		if backN < 0 {
			backN = 0
		}
		combined = Decode(tokens[:frontN]) + balancedElisionMarker + Decode(tokens[len(tokens)-backN:])
	}
	return cleanDangling(combined)
}

// Segment labels ordered from most to least important. The condenser keeps
// whole labeled segments greedily in this order.
var priorityLabels = []string{
	"Title:", "Paper_info:", "Abstract:",
	"Introduction:", "Method:", "Methods:", "Methodology:", "Approach:", "Approaches:",
	"Results:", "Experimental Results:", "Findings:",
	"Conclusion:", "Discussion:", "Results and Discussion:",
	"Related Work:", "Background:", "Preliminary:", "Problem Formulation:",
	"Experiments:", "Experiment:", "Evaluation:", "Experiment Settings:",
	"References:",
}

type segment struct {
	key     string
	content string
}

// splitSegments carves text into labeled segments at lines that begin with a
// known label. Text before the first label lands under "Header". A repeated
// label replaces the earlier segment's content in place.
func splitSegments(text string) []segment {
	segs := make([]segment, 0, 8)
	index := map[string]int{}

	store := func(key, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		if i, ok := index[key]; ok {
			segs[i].content = content
			return
		}
		index[key] = len(segs)
		segs = append(segs, segment{key: key, content: content})
	}

	currentKey := "Header"
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		newKey := ""
		trimmed := strings.TrimSpace(line)
		for _, label := range priorityLabels {
			if strings.HasPrefix(trimmed, label) {
				newKey = strings.TrimSuffix(label, ":")
				break
			}
		}
		if newKey != "" {
			store(currentKey, current.String())
			currentKey = newKey
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	store(currentKey, current.String())
	return segs
}

func truncateSections(text string, maxTokens int) string {
	segs := splitSegments(text)
	bykey := make(map[string]string, len(segs))
	for _, s := range segs {
		bykey[s.key] = s.content
	}

	var out strings.Builder
	used := 0

	for _, label := range priorityLabels {
		key := strings.TrimSuffix(label, ":")
		content, ok := bykey[key]
		if !ok {
			continue
		}
		n := CountTokens(content)
		if used+n <= maxTokens {
			out.WriteString(content)
			out.WriteString("\n\n")
			used += n
			continue
		}
		if remaining := maxTokens - used; remaining > 100 {
			// The marker spends part of the remaining budget too.
			keep := remaining - CountTokens(sectionElisionMarker)
			if keep > 0 {
				out.WriteString(truncateFront(content, keep))
				out.WriteString(sectionElisionMarker)
				used = maxTokens
			}
		}
		break
	}

	prioritized := make(map[string]bool, len(priorityLabels))
	for _, label := range priorityLabels {
		prioritized[strings.TrimSuffix(label, ":")] = true
	}
	for _, s := range segs {
		if prioritized[s.key] {
			continue
		}
		n := CountTokens(s.content)
		if used+n > maxTokens {
			break
		}
		out.WriteString(s.content)
		out.WriteString("\n\n")
		used += n
	}
	// Cut content has already been cleaned by truncateFront; a second pass
	// here would eat the tail of a trailing elision marker.
	return strings.TrimSpace(out.String())
}

// cleanDangling drops a short sentence fragment left hanging after the final
// period by a mid-sentence cut.
func cleanDangling(text string) string {
	parts := strings.Split(text, ".")
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if strings.TrimSpace(last) != "" && utf8.RuneCountInString(last) < 50 {
			text = strings.Join(parts[:len(parts)-1], ".") + "."
		}
	}
	return strings.TrimSpace(text)
}
