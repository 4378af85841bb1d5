// Package lookup implements reverse Jyutping-to-Hanzi search: an exact
// pass over curated and corpus-derived indexes, with a bounded
// character-composition fallback for unseen phrases.
package lookup

import (
	"sort"

	"github.com/brownidj/learn-canto-0-1/internal/attest"
	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// PhoneticProvider is an optional external enrichment source consulted
// during the exact pass. Implementations must be best-effort; a nil
// provider simply contributes nothing.
type PhoneticProvider interface {
	Candidates(phrase string) []schema.Candidate
}

const (
	defaultTopN           = 10
	defaultCapPerSyllable = 30
	defaultCapCombos      = 100

	vocabBonus    = 1000
	overrideBonus = 900
	repeatPenalty = 5
	maxGlossesPer = 3
)

// reduplicatedException is the one known-good reduplicated word that
// the repeat penalty must not touch.
const reduplicatedException = "爸爸"

// Vocative-prefix variants. The first is the preferred colloquial form;
// the others are formal-register spellings of the same prefix.
var vocativeVariants = []rune{'阿', '亞', '亚'}

// Engine answers reverse lookups over a loaded corpus. It never
// mutates the corpus structures and is safe for repeated queries.
type Engine struct {
	Reverse  schema.ReverseIndex
	CCCanto  *corpus.CCCanto
	CharMap  corpus.CharMap
	Freq     []*corpus.FreqTable
	Vocab    schema.Vocab
	Phonetic PhoneticProvider

	// Overrides maps a normalized phrase to its manually curated
	// renderings. The ranking bonus applies only to combos listed
	// under the query phrase itself.
	Overrides map[string]map[string]bool

	// Attest answers corpus-attestation checks for input gating.
	Attest *attest.Cache

	TopN           int
	CapPerSyllable int
	CapCombos      int

	freqTotals map[string]int

	// Test hook; fires whenever the compositional pass runs.
	onCompose func(phrase string)
}

// New builds an engine over a loaded corpus with default limits.
// Manual reverse-index entries seed the ranking override set.
func New(c *corpus.Corpus) *Engine {
	e := &Engine{
		Reverse:        c.Reverse,
		CCCanto:        c.CCCanto,
		CharMap:        c.CharMap,
		Freq:           c.Freq,
		Vocab:          c.Vocab,
		Overrides:      make(map[string]map[string]bool),
		Attest:         attest.NewCache(c.Vocab, c.Freq),
		TopN:           defaultTopN,
		CapPerSyllable: defaultCapPerSyllable,
		CapCombos:      defaultCapCombos,
	}
	for jy, cands := range c.Reverse {
		for _, cand := range cands {
			if cand.Source == schema.SourceManual {
				if e.Overrides[jy] == nil {
					e.Overrides[jy] = make(map[string]bool)
				}
				e.Overrides[jy][cand.Hanzi] = true
			}
		}
	}
	return e
}

// Candidates is the single query entry point. It normalizes the
// phrase, runs the exact pass, falls back to composition when nothing
// matched and the phrase is at least loosely syllabic, dedups by Hanzi
// in source-priority order and returns the re-ranked list. An empty
// result is a normal outcome.
func (e *Engine) Candidates(phrase string) []schema.Candidate {
	norm := jyutping.Normalize(phrase)
	if norm == "" {
		return nil
	}

	cands := e.lookupExact(norm)
	if len(cands) == 0 && jyutping.ValidLoose(norm) {
		if e.onCompose != nil {
			e.onCompose(norm)
		}
		cands = e.Shortlist(norm, e.Compose(norm))
	}

	return e.Rerank(dedupeByPriority(cands))
}

// lookupExact runs the tiered exact pass: stored reverse index first,
// the dictionary-derived map only when that misses, then the live
// vocabulary and the built-in safety net, then frequency rows and the
// optional phonetic provider. Every later source appends only Hanzi
// not already present.
func (e *Engine) lookupExact(norm string) []schema.Candidate {
	var out []schema.Candidate
	out = append(out, e.Reverse.Lookup(norm)...)

	if len(out) == 0 && e.CCCanto != nil {
		for _, hz := range e.CCCanto.HanziFor(norm) {
			out = appendNewHanzi(out, schema.Candidate{Hanzi: hz, Source: schema.SourceCCCanto})
		}
	}

	for _, hz := range e.Vocab.HanziFor(norm) {
		out = appendNewHanzi(out, schema.Candidate{Hanzi: hz, Source: schema.SourceVocab})
	}
	for _, hz := range corpus.BuiltinHanziFor(norm) {
		out = appendNewHanzi(out, schema.Candidate{Hanzi: hz, Source: schema.SourceBuiltin})
	}

	for _, table := range e.Freq {
		rows := table.MatchPhrase(norm)
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Score != rows[j].Score {
				return rows[i].Score > rows[j].Score
			}
			return rows[i].Hanzi < rows[j].Hanzi
		})
		for _, row := range rows {
			out = appendNewHanzi(out, row)
		}
	}

	if e.Phonetic != nil {
		for _, cand := range e.Phonetic.Candidates(norm) {
			out = appendNewHanzi(out, cand)
		}
	}
	return out
}

// appendNewHanzi appends cand unless its Hanzi already appears.
func appendNewHanzi(list []schema.Candidate, cand schema.Candidate) []schema.Candidate {
	if cand.Hanzi == "" {
		return list
	}
	for _, have := range list {
		if have.Hanzi == cand.Hanzi {
			return list
		}
	}
	return append(list, cand)
}

// dedupeByPriority keeps one candidate per Hanzi, preferring the
// strongest source; ties keep the earlier entry. Relative order of the
// survivors is preserved.
func dedupeByPriority(cands []schema.Candidate) []schema.Candidate {
	best := make(map[string]schema.Candidate, len(cands))
	for _, c := range cands {
		have, ok := best[c.Hanzi]
		if !ok || c.Source.Strength() > have.Source.Strength() {
			best[c.Hanzi] = c
		}
	}
	out := make([]schema.Candidate, 0, len(best))
	seen := make(map[string]bool, len(best))
	for _, c := range cands {
		if seen[c.Hanzi] {
			continue
		}
		seen[c.Hanzi] = true
		out = append(out, best[c.Hanzi])
	}
	return out
}

// Meanings returns up to three short glosses for a Hanzi headword,
// preferring the live vocabulary over the dictionary. When the literal
// form has no gloss and the word starts with a vocative-prefix
// character, its interchangeable spellings are tried too.
func (e *Engine) Meanings(hanzi string) []string {
	if hanzi == "" {
		return nil
	}
	for _, form := range prefixForms(hanzi) {
		if entry, ok := e.Vocab[form]; ok && len(entry.Meanings) > 0 {
			return capGlosses(entry.Meanings)
		}
	}
	if e.CCCanto != nil {
		for _, form := range prefixForms(hanzi) {
			if glosses := e.CCCanto.GlossesFor(form); len(glosses) > 0 {
				return capGlosses(glosses)
			}
		}
	}
	return nil
}

// prefixForms returns the word itself, plus its spellings under the
// other vocative-prefix variants when the first character is one.
func prefixForms(hanzi string) []string {
	runes := []rune(hanzi)
	if len(runes) == 0 {
		return nil
	}
	forms := []string{hanzi}
	if !isVocativePrefix(runes[0]) {
		return forms
	}
	for _, v := range vocativeVariants {
		if v == runes[0] {
			continue
		}
		alt := append([]rune{v}, runes[1:]...)
		forms = append(forms, string(alt))
	}
	return forms
}

func isVocativePrefix(r rune) bool {
	for _, v := range vocativeVariants {
		if r == v {
			return true
		}
	}
	return false
}

func capGlosses(glosses []string) []string {
	if len(glosses) > maxGlossesPer {
		return glosses[:maxGlossesPer]
	}
	return glosses
}

// Rerank orders candidates for display. The sort key is
// (has gloss, colloquial prefix form, source strength, score), all
// descending; the sort is stable so ties keep their incoming order.
func (e *Engine) Rerank(cands []schema.Candidate) []schema.Candidate {
	type keyed struct {
		cand       schema.Candidate
		hasGloss   int
		colloquial int
		strength   int
	}
	keys := make([]keyed, len(cands))
	for i, c := range cands {
		k := keyed{cand: c, strength: c.Source.Strength()}
		if len(e.Meanings(c.Hanzi)) > 0 {
			k.hasGloss = 1
		}
		if runes := []rune(c.Hanzi); len(runes) > 0 && runes[0] == vocativeVariants[0] {
			k.colloquial = 1
		}
		keys[i] = k
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.hasGloss != b.hasGloss {
			return a.hasGloss > b.hasGloss
		}
		if a.colloquial != b.colloquial {
			return a.colloquial > b.colloquial
		}
		if a.strength != b.strength {
			return a.strength > b.strength
		}
		return a.cand.Score > b.cand.Score
	})

	out := make([]schema.Candidate, len(keys))
	for i, k := range keys {
		out[i] = k.cand
	}
	return out
}

// Valid reports whether the phrase passes the full Jyutping grammar.
func (e *Engine) Valid(phrase string) bool {
	return jyutping.Valid(phrase)
}

// Attested reports whether the phrase is backed by the loaded corpora.
// Without an attestation cache it falls back to the grammar check.
func (e *Engine) Attested(phrase string) bool {
	if e.Attest == nil {
		return e.Valid(phrase)
	}
	return e.Attest.Attested(phrase)
}
