package lookup

import (
	"sort"
	"strings"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// Compose builds whole-phrase Hanzi candidates character by character.
// Each syllable is matched against the reading map, exact tone first,
// tone-relaxed if nothing matched exactly. A syllable with no match at
// all makes the whole phrase uncomposable and the result empty.
// Per-syllable and total combination counts are capped.
func (e *Engine) Compose(phrase string) []string {
	syls := jyutping.Syllables(phrase)
	if len(syls) == 0 || len(e.CharMap) == 0 {
		return nil
	}

	perSyllable := make([][]string, len(syls))
	for i, syl := range syls {
		chars := e.charsForSyllable(syl)
		if len(chars) == 0 {
			return nil
		}
		perSyllable[i] = chars
	}

	return cartesian(perSyllable, e.CapCombos)
}

// charsForSyllable returns the CJK characters whose reading list
// contains the syllable, or matches it with tones stripped when no
// exact reading exists. Rare-block characters survive composition and
// are dropped at shortlist time. Sorted and capped for determinism.
func (e *Engine) charsForSyllable(syl string) []string {
	var exact, relaxed []string
	base := jyutping.StripTone(syl)

	for ch, readings := range e.CharMap {
		if !isCJKChar(ch) {
			continue
		}
		exactHit, relaxedHit := false, false
		for _, r := range readings {
			if r == syl {
				exactHit = true
				break
			}
			if jyutping.StripTone(r) == base {
				relaxedHit = true
			}
		}
		switch {
		case exactHit:
			exact = append(exact, ch)
		case relaxedHit:
			relaxed = append(relaxed, ch)
		}
	}

	chars := exact
	if len(chars) == 0 {
		chars = relaxed
	}
	sort.Strings(chars)
	if len(chars) > e.CapPerSyllable {
		chars = chars[:e.CapPerSyllable]
	}
	return chars
}

// isCJKChar reports whether every rune is a CJK ideograph, including
// the extension and compatibility blocks.
func isCJKChar(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !schema.IsCJK(r) {
			return false
		}
	}
	return true
}

// cartesian enumerates combinations across syllable positions in
// lexicographic order of the per-position lists, stopping at the
// limit. Combos are deduplicated by the resulting string.
func cartesian(perSyllable [][]string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	idx := make([]int, len(perSyllable))

	for {
		var b strings.Builder
		for i, pos := range idx {
			b.WriteString(perSyllable[i][pos])
		}
		combo := b.String()
		if !seen[combo] {
			seen[combo] = true
			out = append(out, combo)
			if len(out) >= limit {
				return out
			}
		}

		// Advance the rightmost position, odometer style.
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(perSyllable[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
