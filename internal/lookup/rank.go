package lookup

import (
	"sort"

	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// Shortlist scores composed candidates for the query phrase and keeps
// the top N. Combos with characters outside the common CJK block are
// dropped first. Scoring rewards live-vocabulary membership, manual
// renderings of this phrase and aggregate corpus frequency, and
// penalizes reduplicated strings. Without any ranking input it falls
// back to the raw combo order, truncated and tagged as unranked.
func (e *Engine) Shortlist(phrase string, combos []string) []schema.Candidate {
	combos = schema.FilterCommonCJK(combos)
	if len(combos) == 0 {
		return nil
	}

	topN := e.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	if len(e.Vocab) == 0 && len(e.Overrides) == 0 && !e.hasFreq() {
		if len(combos) > topN {
			combos = combos[:topN]
		}
		out := make([]schema.Candidate, len(combos))
		for i, combo := range combos {
			out[i] = schema.Candidate{Hanzi: combo, Source: schema.SourceTier2}
		}
		return out
	}

	totals := e.mergedFreqTotals()
	scored := make([]schema.Candidate, len(combos))
	for i, combo := range combos {
		scored[i] = schema.Candidate{
			Hanzi:  combo,
			Source: schema.SourceTier2Ranked,
			Score:  e.scoreCombo(phrase, combo, totals),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Hanzi < scored[j].Hanzi
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

func (e *Engine) scoreCombo(phrase, combo string, totals map[string]int) int {
	score := 0
	if _, ok := e.Vocab[combo]; ok {
		score += vocabBonus
	}
	if e.Overrides[phrase][combo] {
		score += overrideBonus
	}
	score += totals[combo]
	if hasRepeatedRune(combo) && combo != reduplicatedException {
		score -= repeatPenalty
	}
	return score
}

// hasRepeatedRune reports whether any character occurs more than once.
func hasRepeatedRune(s string) bool {
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

func (e *Engine) hasFreq() bool {
	for _, t := range e.Freq {
		if t != nil && len(t.Counts) > 0 {
			return true
		}
	}
	return false
}

// mergedFreqTotals sums per-Hanzi counts across layers, built once per
// engine.
func (e *Engine) mergedFreqTotals() map[string]int {
	if e.freqTotals == nil {
		e.freqTotals = corpus.MergeHanziTotals(e.Freq)
	}
	return e.freqTotals
}
