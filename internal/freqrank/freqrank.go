// Package freqrank merges the per-corpus frequency layers into a
// single ranked table: counts are log-damped, z-scored within each
// layer and combined with per-layer weights.
package freqrank

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// Weights are the per-layer contributions to the merged score.
type Weights struct {
	HKCanCor  float64
	Subtitles float64
	CCCanto   float64
}

// DefaultWeights favors the hand-annotated corpus over subtitles over
// the dictionary-derived counts.
var DefaultWeights = Weights{HKCanCor: 0.5, Subtitles: 0.3, CCCanto: 0.2}

// Entry is the merged record for one (Hanzi, Jyutping) pair.
type Entry struct {
	Key    corpus.FreqKey
	Score  float64
	Counts LayerValues[int]
	Norm   LayerValues[float64]
}

// LayerValues holds one value per frequency layer.
type LayerValues[T any] struct {
	HKCanCor  T `yaml:"hkc" json:"hkc"`
	Subtitles T `yaml:"subs" json:"subs"`
	CCCanto   T `yaml:"ccc" json:"ccc"`
}

// normalizeLayer z-scores log1p(count) within one layer. An empty
// layer, or one with zero spread, maps everything to 0.
func normalizeLayer(counts map[corpus.FreqKey]int) map[corpus.FreqKey]float64 {
	out := make(map[corpus.FreqKey]float64, len(counts))
	if len(counts) == 0 {
		return out
	}

	logs := make(map[corpus.FreqKey]float64, len(counts))
	sum := 0.0
	for k, c := range counts {
		v := math.Log1p(float64(c))
		logs[k] = v
		sum += v
	}
	mean := sum / float64(len(logs))

	variance := 0.0
	for _, v := range logs {
		variance += (v - mean) * (v - mean)
	}
	sd := 0.0
	if len(logs) > 1 {
		sd = math.Sqrt(variance / float64(len(logs)))
	}
	if sd == 0 || math.IsInf(sd, 0) || math.IsNaN(sd) {
		for k := range logs {
			out[k] = 0
		}
		return out
	}

	for k, v := range logs {
		out[k] = (v - mean) / sd
	}
	return out
}

// Merge combines the three layers into weighted entries, one per
// (Hanzi, Jyutping) pair seen in any layer. Missing layers contribute
// zero.
func Merge(tables []*corpus.FreqTable, weights Weights) []Entry {
	layer := func(source schema.Source) map[corpus.FreqKey]int {
		for _, t := range tables {
			if t != nil && t.Source == source {
				return t.Counts
			}
		}
		return nil
	}

	hkc := layer(schema.SourceHKCanCor)
	subs := layer(schema.SourceSubtitles)
	ccc := layer(schema.SourceCCCanto)

	normHkc := normalizeLayer(hkc)
	normSubs := normalizeLayer(subs)
	normCcc := normalizeLayer(ccc)

	keys := make(map[corpus.FreqKey]bool)
	for k := range hkc {
		keys[k] = true
	}
	for k := range subs {
		keys[k] = true
	}
	for k := range ccc {
		keys[k] = true
	}

	out := make([]Entry, 0, len(keys))
	for k := range keys {
		e := Entry{
			Key:    k,
			Counts: LayerValues[int]{HKCanCor: hkc[k], Subtitles: subs[k], CCCanto: ccc[k]},
			Norm:   LayerValues[float64]{HKCanCor: normHkc[k], Subtitles: normSubs[k], CCCanto: normCcc[k]},
		}
		e.Score = weights.HKCanCor*e.Norm.HKCanCor +
			weights.Subtitles*e.Norm.Subtitles +
			weights.CCCanto*e.Norm.CCCanto
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Key.Hanzi != out[j].Key.Hanzi {
			return out[i].Key.Hanzi < out[j].Key.Hanzi
		}
		return out[i].Key.Jyutping < out[j].Key.Jyutping
	})
	return out
}

// yamlEntry is the serialized per-reading record under a Hanzi key.
type yamlEntry struct {
	Jyut   string               `yaml:"jyut"`
	Score  float64              `yaml:"score"`
	Counts LayerValues[int]     `yaml:"counts"`
	Norm   LayerValues[float64] `yaml:"norm"`
}

// WriteYAML writes the merged table grouped by Hanzi, readings sorted
// by score within each group.
func WriteYAML(entries []Entry, path string) error {
	grouped := make(map[string][]yamlEntry)
	for _, e := range entries {
		grouped[e.Key.Hanzi] = append(grouped[e.Key.Hanzi], yamlEntry{
			Jyut:   e.Key.Jyutping,
			Score:  round6(e.Score),
			Counts: e.Counts,
			Norm: LayerValues[float64]{
				HKCanCor:  round6(e.Norm.HKCanCor),
				Subtitles: round6(e.Norm.Subtitles),
				CCCanto:   round6(e.Norm.CCCanto),
			},
		})
	}
	for h := range grouped {
		g := grouped[h]
		sort.Slice(g, func(i, j int) bool { return g[i].Score > g[j].Score })
	}

	raw, err := yaml.Marshal(grouped)
	if err != nil {
		return fmt.Errorf("marshal freq rank: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// WriteTopCSV writes a flat CSV of the top entries by score.
func WriteTopCSV(entries []Entry, path string, limit int) error {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"hanzi", "jyut", "score", "hkc", "subs", "ccc"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Key.Hanzi,
			e.Key.Jyutping,
			fmt.Sprintf("%.6f", e.Score),
			fmt.Sprintf("%d", e.Counts.HKCanCor),
			fmt.Sprintf("%d", e.Counts.Subtitles),
			fmt.Sprintf("%d", e.Counts.CCCanto),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// BuildResult reports what one build produced.
type BuildResult struct {
	Entries  int
	YAMLPath string
	CSVPath  string
	Errors   []string
}

const topCSVLimit = 5000

// Build loads the three frequency layers from dataDir, merges them and
// writes the YAML table and top-N CSV next to the inputs.
func Build(dataDir string, weights Weights) (*BuildResult, error) {
	files := corpus.DefaultFreqFiles(dataDir)
	tables := make([]*corpus.FreqTable, 0, len(files))
	res := &BuildResult{}
	for path, source := range files {
		table, st := corpus.LoadFreqCSV(path, source)
		tables = append(tables, table)
		res.Errors = append(res.Errors, st.Errors...)
	}

	entries := Merge(tables, weights)
	res.Entries = len(entries)

	freqDir := filepath.Join(dataDir, "frequency")
	res.YAMLPath = filepath.Join(freqDir, "freq_rank.yaml")
	res.CSVPath = filepath.Join(freqDir, "freq_rank_top.csv")

	if err := WriteYAML(entries, res.YAMLPath); err != nil {
		return res, err
	}
	if err := WriteTopCSV(entries, res.CSVPath, topCSVLimit); err != nil {
		return res, err
	}
	return res, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
