package corpus

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// FreqKey identifies one (Hanzi, normalized Jyutping) pair in a
// frequency table.
type FreqKey struct {
	Hanzi    string
	Jyutping string
}

// FreqTable is one frequency corpus layer: aggregated counts per
// (Hanzi, Jyutping) pair, tagged with the corpus it came from.
type FreqTable struct {
	Source schema.Source
	Counts map[FreqKey]int
}

// Candidate column headers; real exports disagree on spelling, so the
// loader infers columns from these fixed lists.
var (
	jyColumns    = []string{"jyut", "jyutping", "jyutping_str", "jyutping_text"}
	hanziColumns = []string{"hanzi", "word", "token", "char", "chars"}
	freqColumns  = []string{"freq", "frequency", "count", "token_count"}
)

// DefaultFreqFiles returns the conventional frequency layers under a
// data directory, with the source labels their rows carry.
func DefaultFreqFiles(dataDir string) map[string]schema.Source {
	freqDir := filepath.Join(dataDir, "frequency")
	return map[string]schema.Source{
		filepath.Join(freqDir, "hkcancor_words.csv"):  schema.SourceHKCanCor,
		filepath.Join(freqDir, "subtitles_words.csv"): schema.SourceSubtitles,
		filepath.Join(freqDir, "cccanto_words.csv"):   schema.SourceCCCanto,
	}
}

// LoadFreqCSV loads one frequency CSV. A missing file yields an empty
// table; rows without a usable Hanzi value are skipped. Column names
// are inferred from the header row.
func LoadFreqCSV(path string, source schema.Source) (*FreqTable, *LoadStats) {
	st := newStats(path)
	table := &FreqTable{Source: source, Counts: make(map[FreqKey]int)}

	file, err := os.Open(path)
	if err != nil {
		debugf("freq csv skip: %s (missing)", path)
		return table, st
	}
	defer file.Close()
	st.Available = true

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		st.addError("parse: %v", err)
		debugf("freq csv error: %s (%v)", path, err)
		return table, st
	}
	if len(rows) < 1 {
		return table, st
	}

	header := lowerRow(rows[0])
	idxJy := findColumn(header, jyColumns...)
	idxHanzi := findColumn(header, hanziColumns...)
	idxFreq := findColumn(header, freqColumns...)

	for _, row := range rows[1:] {
		hz := ""
		if idxHanzi >= 0 && len(row) > idxHanzi {
			hz = strings.TrimSpace(row[idxHanzi])
		} else if len(row) > 0 {
			hz = strings.TrimSpace(row[0])
		}
		if hz == "" {
			st.Skipped++
			continue
		}

		jy := ""
		if idxJy >= 0 && len(row) > idxJy {
			jy = jyutping.Normalize(row[idxJy])
		}

		count := 0
		if idxFreq >= 0 && len(row) > idxFreq {
			if n, err := strconv.Atoi(strings.TrimSpace(row[idxFreq])); err == nil && n > 0 {
				count = n
			}
		}

		table.Counts[FreqKey{Hanzi: hz, Jyutping: jy}] += count
		st.Records++
	}
	debugf("freq csv loaded: %s (%d rows)", path, st.Records)
	return table, st
}

// MatchPhrase returns the rows whose Jyutping equals the normalized
// phrase, as source-labeled candidates scored by count.
func (t *FreqTable) MatchPhrase(phrase string) []schema.Candidate {
	key := jyutping.Normalize(phrase)
	if key == "" {
		return nil
	}
	var out []schema.Candidate
	for k, count := range t.Counts {
		if k.Jyutping == key {
			out = append(out, schema.Candidate{Hanzi: k.Hanzi, Source: t.Source, Score: count})
		}
	}
	return out
}

// HanziTotals aggregates counts per Hanzi across all readings.
func (t *FreqTable) HanziTotals() map[string]int {
	out := make(map[string]int, len(t.Counts))
	for k, count := range t.Counts {
		out[k.Hanzi] += count
	}
	return out
}

// Phrases returns every distinct normalized Jyutping phrase in the
// table. Used to seed the attestation cache.
func (t *FreqTable) Phrases() []string {
	seen := make(map[string]bool, len(t.Counts))
	var out []string
	for k := range t.Counts {
		if k.Jyutping != "" && !seen[k.Jyutping] {
			seen[k.Jyutping] = true
			out = append(out, k.Jyutping)
		}
	}
	return out
}

// MergeHanziTotals sums per-Hanzi counts across layers.
func MergeHanziTotals(tables []*FreqTable) map[string]int {
	out := make(map[string]int)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for k, count := range t.Counts {
			out[k.Hanzi] += count
		}
	}
	return out
}
