// Package attest decides whether a Jyutping phrase is attested in the
// loaded corpora, and suggests close alternatives when it is not.
package attest

import (
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
	"github.com/brownidj/learn-canto-0-1/internal/similarity"
)

// seedBases are common syllable bases always treated as attested,
// crossed with all six tones. They keep the check usable when the
// corpora are thin.
var seedBases = []string{
	"a", "aa", "ai", "au", "am", "an", "ang", "ap", "at", "ak",
	"e", "ei", "eng", "ek",
	"i", "iu", "im", "in", "ing", "ip", "it", "ik",
	"o", "oi", "on", "ong", "ot", "ok",
	"ou", "u", "ui", "un", "ung", "ut", "uk",
	"eo", "eoi", "eon", "eot", "eok",
	"oe", "oeng", "oek",
	"yu", "yun", "yut",
	"m", "ng", "nei", "hou", "sin", "saang", "pin", "fuk", "baa",
}

const suggestMaxDistance = 2

// Cache holds the lazily built attested-phrase and attested-syllable
// sets. Building happens once; afterwards the cache is read-only and
// safe to share across queries.
type Cache struct {
	vocab schema.Vocab
	freq  []*corpus.FreqTable

	once      sync.Once
	phrases   map[string]bool
	syllables map[string]bool
	tree      *similarity.Tree
}

// NewCache wraps the corpus sources without building anything yet.
func NewCache(vocab schema.Vocab, freq []*corpus.FreqTable) *Cache {
	return &Cache{vocab: vocab, freq: freq}
}

func (c *Cache) build() {
	c.phrases = make(map[string]bool)
	c.syllables = make(map[string]bool)
	c.tree = similarity.NewTree()

	addPhrase := func(raw string) {
		norm := jyutping.Normalize(raw)
		if norm == "" {
			return
		}
		if !c.phrases[norm] {
			c.phrases[norm] = true
			c.tree.Add(norm)
		}
		for _, syl := range jyutping.Syllables(norm) {
			c.syllables[syl] = true
		}
	}

	for _, entry := range c.vocab {
		addPhrase(entry.Jyutping)
	}
	for _, table := range c.freq {
		if table == nil {
			continue
		}
		for _, phrase := range table.Phrases() {
			addPhrase(phrase)
		}
	}

	for _, base := range seedBases {
		for tone := '1'; tone <= '6'; tone++ {
			c.syllables[base+string(tone)] = true
		}
	}
}

func (c *Cache) ensure() {
	c.once.Do(c.build)
}

// Attested reports whether the phrase is backed by the corpora: the
// whole phrase is known, or every syllable is known, or the phrase at
// least passes the full structural grammar. Empty input is never
// attested.
func (c *Cache) Attested(phrase string) bool {
	c.ensure()

	norm := jyutping.Normalize(phrase)
	if norm == "" {
		return false
	}
	if c.phrases[norm] {
		return true
	}

	allKnown := true
	for _, syl := range jyutping.Syllables(norm) {
		if !c.syllables[syl] {
			allKnown = false
			break
		}
	}
	if allKnown {
		return true
	}

	return jyutping.Valid(norm)
}

// Suggest returns up to limit attested phrases close to the input,
// nearest first. Edit-distance neighbors come first, then fuzzy
// subsequence matches over the whole phrase set.
func (c *Cache) Suggest(phrase string, limit int) []string {
	c.ensure()

	norm := jyutping.Normalize(phrase)
	if norm == "" || limit <= 0 {
		return nil
	}

	var out []string
	seen := map[string]bool{norm: true}

	near := c.tree.Near(norm, suggestMaxDistance)
	sort.Slice(near, func(i, j int) bool {
		if near[i].Distance != near[j].Distance {
			return near[i].Distance < near[j].Distance
		}
		return near[i].Phrase < near[j].Phrase
	})
	for _, m := range near {
		if !seen[m.Phrase] {
			seen[m.Phrase] = true
			out = append(out, m.Phrase)
		}
		if len(out) >= limit {
			return out
		}
	}

	targets := make([]string, 0, len(c.phrases))
	for p := range c.phrases {
		targets = append(targets, p)
	}
	sort.Strings(targets)

	ranks := fuzzy.RankFindFold(norm, targets)
	sort.Sort(ranks)
	for _, r := range ranks {
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}
