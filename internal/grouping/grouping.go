// Package grouping partitions a market batch into comparison groups.
// Both groupings are pure functions of the batch: they hold no state
// between invocations, and group order is the first-seen order of keys so
// downstream output is deterministic.
package grouping

import (
	"strconv"
	"strings"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// MinGroupSize is the smallest group that participates in downstream
// analysis. A market with no group-mate carries no cross-market signal.
const MinGroupSize = 2

// Group is a set of markets sharing a comparison key.
type Group struct {
	Key     string
	Markets []types.Market
}

// ByCategory partitions active markets by lowercase category, dropping
// markets with an empty category and groups smaller than minSize.
func ByCategory(markets []types.Market, minSize int) []Group {
	return partition(markets, minSize, func(m *types.Market) string {
		if m.Category == "" {
			return ""
		}
		return strings.ToLower(m.Category)
	})
}

// ByStem partitions active markets by question stem, dropping markets
// whose question yields no valid stem and groups smaller than minSize.
// Markets without an end date carry no tenor and are excluded.
func ByStem(markets []types.Market, minSize int) []Group {
	return partition(markets, minSize, func(m *types.Market) string {
		if m.EndDateISO == "" {
			return ""
		}
		return QuestionStem(m.Question)
	})
}

func partition(markets []types.Market, minSize int, keyFn func(*types.Market) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for i := range markets {
		if !markets[i].Active {
			continue
		}
		key := keyFn(&markets[i])
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Key: key})
		}
		groups[pos].Markets = append(groups[pos].Markets, markets[i])
	}

	kept := groups[:0]
	for _, g := range groups {
		if len(g.Markets) >= minSize {
			kept = append(kept, g)
		}
	}
	return kept
}

// QuestionStem derives a comparison key from a question by removing words
// that parse as numbers after stripping ',', '$' and the letter 'k'. The
// stem is only valid when at least 3 non-numeric words remain; generic
// short questions would otherwise over-group.
func QuestionStem(question string) string {
	q := strings.TrimSpace(strings.ToLower(question))
	q = strings.TrimSpace(strings.TrimRight(q, "?"))

	words := strings.Fields(q)
	stem := make([]string, 0, len(words))
	for _, w := range words {
		cleaned := strings.NewReplacer(",", "", "$", "", "k", "").Replace(w)
		if _, err := strconv.ParseFloat(cleaned, 64); err == nil {
			continue
		}
		stem = append(stem, w)
	}
	if len(stem) < 3 {
		return ""
	}
	return strings.Join(stem, " ")
}
