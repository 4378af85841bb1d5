package corpus

import (
	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
)

// builtinReverse is a small curated safety net of very common phrases.
// It keeps reverse lookup useful when every corpus file is absent.
var builtinReverse = map[string][]string{
	// greetings / basics
	"nei5 hou2": {"你好"},
	// common kinship / titles
	"sin1 saang1": {"先生"},
	"taa3 taai2":  {"太太"},
	// money / shopping
	"cin2":                     {"錢"},
	"ping4 di1":                {"平啲"},
	"jau5 mou5 zit3 aa3":       {"有冇折呀"},
	"ni1 bun2 syu1 gei2 cin2 aa3": {"呢本書幾錢呀"},
}

// BuiltinHanziFor returns the safety-net renderings for a phrase.
func BuiltinHanziFor(phrase string) []string {
	return builtinReverse[jyutping.Normalize(phrase)]
}
