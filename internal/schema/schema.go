// Package schema defines candidate and index data structures for the
// reverse lookup engine.
package schema

import (
	"sort"
	"strings"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
)

// Source identifies where a candidate came from.
type Source string

// Known candidate sources, strongest first.
const (
	SourceManual      Source = "manual"
	SourceCache       Source = "cache"
	SourceVocab       Source = "andys_list"
	SourceBuiltin     Source = "builtin"
	SourceHKCanCor    Source = "hkcancor"
	SourceSubtitles   Source = "subtitles"
	SourceCCCanto     Source = "cccanto"
	SourcePhonetic    Source = "phonetic"
	SourceTier2Ranked Source = "tier2-char-ranked"
	SourceTier2       Source = "tier2-char"
)

// sourceOrder ranks sources for merging and re-ranking: curated entries
// beat the built-in safety net, which beats corpus hits, which beat
// compositional (tier-2) guesses.
var sourceOrder = []Source{
	SourceManual,
	SourceCache,
	SourceVocab,
	SourceBuiltin,
	SourceHKCanCor,
	SourceSubtitles,
	SourceCCCanto,
	SourcePhonetic,
	SourceTier2Ranked,
	SourceTier2,
}

// Strength returns the priority of a source; higher is stronger.
// Unknown sources rank below every known one.
func (s Source) Strength() int {
	for i, known := range sourceOrder {
		if s == known {
			return len(sourceOrder) - i
		}
	}
	return 0
}

// Candidate is one possible Hanzi rendering of a Jyutping phrase.
// Score is a relative confidence proxy, only comparable within a single
// query's result list.
type Candidate struct {
	Hanzi  string `json:"hanzi"`
	Source Source `json:"source"`
	Score  int    `json:"score"`
}

// ReverseIndex maps a normalized Jyutping phrase to its candidate list.
type ReverseIndex map[string][]Candidate

// NewReverseIndex creates an empty reverse index.
func NewReverseIndex() ReverseIndex {
	return make(ReverseIndex)
}

// Add records a candidate under a phrase, normalizing the key and
// skipping exact duplicate (hanzi, source, score) triples.
// Reports whether the candidate was added.
func (r ReverseIndex) Add(phrase string, c Candidate) bool {
	key := jyutping.Normalize(phrase)
	if key == "" || c.Hanzi == "" {
		return false
	}
	for _, existing := range r[key] {
		if existing == c {
			return false
		}
	}
	r[key] = append(r[key], c)
	return true
}

// Merge folds another index into this one, keeping Add's dedup rule.
func (r ReverseIndex) Merge(other ReverseIndex) {
	keys := make([]string, 0, len(other))
	for k := range other {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, c := range other[k] {
			r.Add(k, c)
		}
	}
}

// Lookup returns the stored candidates for a phrase, in stored order.
func (r ReverseIndex) Lookup(phrase string) []Candidate {
	return r[jyutping.Normalize(phrase)]
}

// VocabEntry is one live flashcard entry: its English meanings and the
// Jyutping pronunciation of the headword.
type VocabEntry struct {
	Meanings []string
	Jyutping string
}

// Vocab is the user-editable vocabulary, keyed by Hanzi headword.
// The lookup engine only ever reads it.
type Vocab map[string]VocabEntry

// HanziFor returns all headwords whose pronunciation matches the
// normalized phrase, sorted for stable output.
func (v Vocab) HanziFor(phrase string) []string {
	key := jyutping.Normalize(phrase)
	if key == "" {
		return nil
	}
	var out []string
	for hz, entry := range v {
		if jyutping.Normalize(entry.Jyutping) == key {
			out = append(out, hz)
		}
	}
	sort.Strings(out)
	return out
}

// Common CJK ideograph block; shortlist candidates outside it are
// discarded to avoid rare-codepoint noise.
const (
	commonCJKMin = 0x4E00
	commonCJKMax = 0x9FFF
)

// IsCJK reports whether a rune is a CJK ideograph (unified blocks,
// extensions A-F and compatibility ideographs).
func IsCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF)
}

// IsCommonCJK reports whether every rune of s falls in the common CJK
// ideograph block.
func IsCommonCJK(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < commonCJKMin || r > commonCJKMax {
			return false
		}
	}
	return true
}

// FilterCommonCJK keeps only strings made entirely of common CJK
// ideographs, preserving order.
func FilterCommonCJK(cands []string) []string {
	out := make([]string, 0, len(cands))
	for _, s := range cands {
		if IsCommonCJK(s) {
			out = append(out, s)
		}
	}
	return out
}

// hanziPunct lists Chinese punctuation commonly seen in teaching
// material headings.
const hanziPunct = "，。？！；：「」『』、．⋯…—＂＇﹑〔〕（）［］〈〉《》｣"

// SanitizeHanzi strips Chinese punctuation from a Hanzi key.
func SanitizeHanzi(hanzi string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(hanziPunct, r) {
			return -1
		}
		return r
	}, hanzi)
}
