// Package jyutping handles normalization and validation of romanized
// Cantonese (Jyutping) phrases.
package jyutping

import (
	"regexp"
	"strings"
)

// initials is the fixed set of valid syllable onsets. An empty onset is
// also allowed (vowel-initial syllables such as "aa3").
const initials = "b|p|m|f|d|t|n|l|g|k|ng|h|z|c|s|gw|kw|w|j"

// finals covers the standard Jyutping finals, including the "ou", "oe",
// "eo" and "yu" series.
const finals = "aa|aai|aau|aam|aan|aang|aap|aat|aak|" +
	"ai|au|am|an|ang|ap|at|ak|" +
	"e|ei|eng|ek|" +
	"i|iu|im|in|ing|ip|it|ik|" +
	"o|oi|on|ong|ot|ok|" +
	"ou|" +
	"u|ui|un|ung|ut|uk|" +
	"eo|eoi|eon|eot|eok|" +
	"oe|oeng|oek|" +
	"yu|yun|yut"

// strictSyllable is the full grammar: (initial)?(final)(tone), or a
// standalone syllabic nasal "m"/"ng" plus tone.
var strictSyllable = regexp.MustCompile(`^(?:(?:` + initials + `)?(?:` + finals + `)|m|ng)[1-6]$`)

// looseSyllable only requires a letter run ending in a tone digit. Used
// as a structural pre-filter where the full grammar is too strict.
var looseSyllable = regexp.MustCompile(`^(?:m|ng|[a-z]+)[1-6]$`)

var toneDigits = strings.NewReplacer("1", "", "2", "", "3", "", "4", "", "5", "", "6", "")

// Normalize returns the canonical form of a Jyutping phrase: lowercase,
// trimmed, syllables separated by single spaces. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Syllables normalizes a phrase and splits it into syllable tokens.
func Syllables(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Valid reports whether every syllable of the phrase matches the full
// initial+final+tone grammar. Empty phrases are invalid.
func Valid(s string) bool {
	parts := Syllables(s)
	if len(parts) == 0 {
		return false
	}
	for _, syl := range parts {
		if !strictSyllable.MatchString(syl) {
			return false
		}
	}
	return true
}

// ValidLoose reports whether every syllable is a letter run followed by
// a tone digit 1-6. Weaker than Valid; accepts unknown finals.
func ValidLoose(s string) bool {
	parts := Syllables(s)
	if len(parts) == 0 {
		return false
	}
	for _, syl := range parts {
		if !looseSyllable.MatchString(syl) {
			return false
		}
	}
	return true
}

// StripTone removes tone digits from a syllable, leaving its base form.
func StripTone(syl string) string {
	return toneDigits.Replace(syl)
}
