package attest

import (
	"testing"

	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

func testCache() *Cache {
	vocab := schema.Vocab{
		"你好": {Meanings: []string{"hello"}, Jyutping: "nei5 hou2"},
	}
	freq := []*corpus.FreqTable{{
		Source: schema.SourceHKCanCor,
		Counts: map[corpus.FreqKey]int{
			{Hanzi: "錢", Jyutping: "cin2"}:        5,
			{Hanzi: "先生", Jyutping: "sin1 saang1"}: 3,
		},
	}}
	return NewCache(vocab, freq)
}

func TestAttested(t *testing.T) {
	c := testCache()

	tests := []struct {
		name     string
		phrase   string
		expected bool
	}{
		{"vocabulary phrase", "nei5 hou2", true},
		{"frequency phrase", "cin2", true},
		{"messy spacing still found", "  NEI5   HOU2 ", true},
		{"all syllables known individually", "hou2 nei5", true},
		{"seeded syllable", "baa1", true},
		{"unseen but structurally valid", "gwok3 jyu5", true},
		{"structurally invalid and unseen", "xyz9 qqq", false},
		{"missing tone digit", "nei hou", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Attested(tt.phrase); got != tt.expected {
				t.Errorf("Attested(%q) = %v, want %v", tt.phrase, got, tt.expected)
			}
		})
	}
}

func TestAttestedEmptyCorpora(t *testing.T) {
	c := NewCache(nil, nil)

	// Structural validity decides when nothing is loaded.
	if !c.Attested("gwok3 jyu5") {
		t.Error("valid phrase rejected with empty corpora")
	}
	if c.Attested("not jyutping") {
		t.Error("invalid phrase accepted with empty corpora")
	}
}

func TestSuggest(t *testing.T) {
	c := testCache()

	got := c.Suggest("cin3", 3)

	if len(got) == 0 || got[0] != "cin2" {
		t.Errorf("Suggest(cin3) = %v, want cin2 first", got)
	}
}

func TestSuggestExcludesQueryItself(t *testing.T) {
	c := testCache()

	for _, s := range c.Suggest("cin2", 5) {
		if s == "cin2" {
			t.Error("suggestion list echoed the query")
		}
	}
}

func TestSuggestEmptyInput(t *testing.T) {
	c := testCache()

	if got := c.Suggest("", 5); got != nil {
		t.Errorf("Suggest(empty) = %v, want nil", got)
	}
	if got := c.Suggest("cin3", 0); got != nil {
		t.Errorf("Suggest(limit 0) = %v, want nil", got)
	}
}
