package corpus

import (
	"path/filepath"
	"testing"

	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

func TestLoadFreqCSVHeaderInference(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"canonical headers",
			"hanzi,jyut,freq\n你好,nei5 hou2,42\n",
		},
		{
			"alternate spellings",
			"word,jyutping,count\n你好,nei5 hou2,42\n",
		},
		{
			"reordered columns",
			"frequency,jyutping_str,token\n42,nei5 hou2,你好\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "freq.csv", tt.content)

			table, stats := LoadFreqCSV(path, schema.SourceHKCanCor)
			if !stats.Available {
				t.Fatal("stats.Available = false")
			}
			if got := table.Counts[FreqKey{Hanzi: "你好", Jyutping: "nei5 hou2"}]; got != 42 {
				t.Errorf("count = %d, want 42", got)
			}
		})
	}
}

func TestLoadFreqCSVAggregatesDuplicateRows(t *testing.T) {
	content := "hanzi,jyut,freq\n錢,cin2,3\n錢,cin2,4\n"
	dir := t.TempDir()
	path := writeFile(t, dir, "freq.csv", content)

	table, _ := LoadFreqCSV(path, schema.SourceSubtitles)

	if got := table.Counts[FreqKey{Hanzi: "錢", Jyutping: "cin2"}]; got != 7 {
		t.Errorf("aggregated count = %d, want 7", got)
	}
}

func TestFreqMatchPhrase(t *testing.T) {
	content := "hanzi,jyut,freq\n你好,nei5 hou2,42\n錢,cin2,7\n"
	dir := t.TempDir()
	path := writeFile(t, dir, "freq.csv", content)

	table, _ := LoadFreqCSV(path, schema.SourceHKCanCor)

	got := table.MatchPhrase(" NEI5  HOU2 ")
	if len(got) != 1 {
		t.Fatalf("MatchPhrase = %v", got)
	}
	want := schema.Candidate{Hanzi: "你好", Source: schema.SourceHKCanCor, Score: 42}
	if got[0] != want {
		t.Errorf("candidate = %+v, want %+v", got[0], want)
	}

	if m := table.MatchPhrase("mou5 je5"); m != nil {
		t.Errorf("MatchPhrase(absent) = %v, want nil", m)
	}
}

func TestFreqHanziTotalsAndPhrases(t *testing.T) {
	content := "hanzi,jyut,freq\n行,hang4,5\n行,hong4,2\n你好,nei5 hou2,1\n"
	dir := t.TempDir()
	path := writeFile(t, dir, "freq.csv", content)

	table, _ := LoadFreqCSV(path, schema.SourceHKCanCor)

	if got := table.HanziTotals()["行"]; got != 7 {
		t.Errorf("HanziTotals[行] = %d, want 7", got)
	}
	if got := len(table.Phrases()); got != 3 {
		t.Errorf("Phrases count = %d, want 3", got)
	}
}

func TestLoadFreqCSVMissing(t *testing.T) {
	table, stats := LoadFreqCSV(filepath.Join(t.TempDir(), "nope.csv"), schema.SourceCCCanto)

	if stats.Available {
		t.Error("stats.Available = true for missing file")
	}
	if len(table.Counts) != 0 {
		t.Errorf("table = %v, want empty", table.Counts)
	}
}

func TestMergeHanziTotals(t *testing.T) {
	a := &FreqTable{Source: schema.SourceHKCanCor, Counts: map[FreqKey]int{
		{Hanzi: "錢", Jyutping: "cin2"}: 3,
	}}
	b := &FreqTable{Source: schema.SourceSubtitles, Counts: map[FreqKey]int{
		{Hanzi: "錢", Jyutping: "cin2"}: 4,
	}}

	totals := MergeHanziTotals([]*FreqTable{a, nil, b})
	if totals["錢"] != 7 {
		t.Errorf("merged total = %d, want 7", totals["錢"])
	}
}
