// Package ipa renders Jyutping syllables as Cantonese IPA, with Chao
// tone letters.
package ipa

import (
	"strings"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
)

// Transcriber converts normalized Jyutping phrases to IPA notation.
type Transcriber struct{}

// NewTranscriber creates a transcriber.
func NewTranscriber() *Transcriber {
	return &Transcriber{}
}

// initialRules maps Jyutping onsets to IPA. Aspiration is marked on
// the plain stops; z/c are the apical affricates.
var initialRules = map[string]string{
	"b": "p", "p": "pʰ", "m": "m", "f": "f",
	"d": "t", "t": "tʰ", "n": "n", "l": "l",
	"g": "k", "k": "kʰ", "ng": "ŋ", "h": "h",
	"z": "ts", "c": "tsʰ", "s": "s",
	"gw": "kʷ", "kw": "kʷʰ", "w": "w", "j": "j",
}

var finalRules = map[string]string{
	"aa": "aː", "aai": "aːi", "aau": "aːu", "aam": "aːm", "aan": "aːn",
	"aang": "aːŋ", "aap": "aːp", "aat": "aːt", "aak": "aːk",
	"ai": "ɐi", "au": "ɐu", "am": "ɐm", "an": "ɐn", "ang": "ɐŋ",
	"ap": "ɐp", "at": "ɐt", "ak": "ɐk",
	"e": "ɛː", "ei": "ei", "eng": "ɛːŋ", "ek": "ɛːk",
	"i": "iː", "iu": "iːu", "im": "iːm", "in": "iːn", "ing": "ɪŋ",
	"ip": "iːp", "it": "iːt", "ik": "ɪk",
	"o": "ɔː", "oi": "ɔːi", "on": "ɔːn", "ong": "ɔːŋ", "ot": "ɔːt",
	"ok": "ɔːk", "ou": "ou",
	"u": "uː", "ui": "uːi", "un": "uːn", "ung": "ʊŋ", "ut": "uːt", "uk": "ʊk",
	"eo": "ɵ", "eoi": "ɵy", "eon": "ɵn", "eot": "ɵt", "eok": "ɵk",
	"oe": "œː", "oeng": "œːŋ", "oek": "œːk",
	"yu": "yː", "yun": "yːn", "yut": "yːt",
}

// toneLetters are the Chao contours for tones 1-6.
var toneLetters = map[byte]string{
	'1': "˥", '2': "˧˥", '3': "˧", '4': "˨˩", '5': "˩˧", '6': "˨",
}

// Onsets ordered longest first so gw/kw/ng win over g/k/n.
var onsetOrder = []string{"gw", "kw", "ng", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "z", "c", "s", "w", "j"}

// Transcribe converts a Jyutping phrase to IPA, one transcription per
// syllable, space-separated. Syllables that do not parse pass through
// unchanged.
func (t *Transcriber) Transcribe(phrase string) string {
	syls := jyutping.Syllables(phrase)
	out := make([]string, len(syls))
	for i, syl := range syls {
		out[i] = t.syllable(syl)
	}
	return strings.Join(out, " ")
}

func (t *Transcriber) syllable(syl string) string {
	if len(syl) < 2 {
		return syl
	}
	toneDigit := syl[len(syl)-1]
	tone, ok := toneLetters[toneDigit]
	if !ok {
		return syl
	}
	body := syl[:len(syl)-1]

	// Syllabic nasals stand alone.
	switch body {
	case "m":
		return "m̩" + tone
	case "ng":
		return "ŋ̩" + tone
	}

	onset := ""
	for _, o := range onsetOrder {
		rest := strings.TrimPrefix(body, o)
		if rest == body || rest == "" {
			continue
		}
		if _, ok := finalRules[rest]; ok {
			onset = o
			body = rest
			break
		}
	}

	final, ok := finalRules[body]
	if !ok {
		return syl
	}
	return initialRules[onset] + final + tone
}
