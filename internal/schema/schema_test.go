package schema

import (
	"reflect"
	"testing"
)

func TestSourceStrength(t *testing.T) {
	ordered := []Source{
		SourceManual, SourceCache, SourceVocab, SourceBuiltin,
		SourceHKCanCor, SourceSubtitles, SourceCCCanto,
		SourcePhonetic, SourceTier2Ranked, SourceTier2,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Strength() <= ordered[i].Strength() {
			t.Errorf("Strength(%s)=%d not above Strength(%s)=%d",
				ordered[i-1], ordered[i-1].Strength(), ordered[i], ordered[i].Strength())
		}
	}

	if got := Source("mystery").Strength(); got != 0 {
		t.Errorf("unknown source strength = %d, want 0", got)
	}
}

func TestReverseIndexAdd(t *testing.T) {
	idx := NewReverseIndex()

	if !idx.Add("NEI5   HOU2", Candidate{Hanzi: "你好", Source: SourceManual, Score: 10}) {
		t.Fatal("first add rejected")
	}
	// Exact duplicate triple is skipped.
	if idx.Add("nei5 hou2", Candidate{Hanzi: "你好", Source: SourceManual, Score: 10}) {
		t.Error("duplicate triple accepted")
	}
	// Same Hanzi from a different source is a distinct record at the
	// index level; Hanzi-level dedup happens in the engine.
	if !idx.Add("nei5 hou2", Candidate{Hanzi: "你好", Source: SourceCache, Score: 3}) {
		t.Error("distinct triple rejected")
	}

	if idx.Add("", Candidate{Hanzi: "你好", Source: SourceManual}) {
		t.Error("empty key accepted")
	}
	if idx.Add("nei5 hou2", Candidate{Source: SourceManual}) {
		t.Error("empty hanzi accepted")
	}

	got := idx.Lookup(" NEI5  hou2 ")
	if len(got) != 2 || got[0].Hanzi != "你好" || got[0].Source != SourceManual {
		t.Errorf("Lookup = %v", got)
	}
}

func TestReverseIndexMerge(t *testing.T) {
	a := NewReverseIndex()
	a.Add("cin2", Candidate{Hanzi: "錢", Source: SourceManual, Score: 5})

	b := NewReverseIndex()
	b.Add("cin2", Candidate{Hanzi: "錢", Source: SourceManual, Score: 5}) // dup
	b.Add("cin2", Candidate{Hanzi: "錢", Source: SourceCCCanto, Score: 0})
	b.Add("m4 goi1", Candidate{Hanzi: "唔該", Source: SourceManual, Score: 8})

	a.Merge(b)

	if len(a["cin2"]) != 2 {
		t.Errorf("cin2 candidates = %v, want 2 entries", a["cin2"])
	}
	if len(a["m4 goi1"]) != 1 {
		t.Errorf("m4 goi1 missing after merge: %v", a)
	}
}

func TestVocabHanziFor(t *testing.T) {
	v := Vocab{
		"你好": {Meanings: []string{"hello"}, Jyutping: "nei5 hou2"},
		"妳好": {Meanings: []string{"hello (to a woman)"}, Jyutping: "Nei5  Hou2"},
		"錢":  {Meanings: []string{"money"}, Jyutping: "cin2"},
	}

	got := v.HanziFor("NEI5 HOU2")
	want := []string{"你好", "妳好"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HanziFor = %v, want %v", got, want)
	}

	if got := v.HanziFor(""); got != nil {
		t.Errorf("HanziFor(empty) = %v, want nil", got)
	}
}

func TestIsCommonCJK(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"common word", "你好", true},
		{"empty", "", false},
		{"latin", "abc", false},
		{"mixed", "你a", false},
		{"extension B excluded", "\U00020000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCommonCJK(tt.input); got != tt.expected {
				t.Errorf("IsCommonCJK(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeHanzi(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"呢個係咩？", "呢個係咩"},
		{"你食左飯未呀？", "你食左飯未呀"},
		{"你好", "你好"},
	}

	for _, tt := range tests {
		if got := SanitizeHanzi(tt.input); got != tt.expected {
			t.Errorf("SanitizeHanzi(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
