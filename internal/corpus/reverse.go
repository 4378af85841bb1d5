package corpus

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// ReverseFile names one reverse-index source and the label its
// candidates carry when the record itself does not say.
type ReverseFile struct {
	Path string
	Tag  schema.Source
}

// DefaultReverseFiles returns the conventional reverse-index locations
// under a data directory: the curated manual file and the memoized
// cache from previous runs.
func DefaultReverseFiles(dataDir string) []ReverseFile {
	return []ReverseFile{
		{Path: dataDir + "/reverse_manual.yaml", Tag: schema.SourceManual},
		{Path: dataDir + "/reverse_cache.yaml", Tag: schema.SourceCache},
	}
}

// LoadReverseIndex merges all given reverse-index files into one index.
// Missing files contribute nothing; duplicate (hanzi, source, score)
// triples for the same phrase are skipped.
func LoadReverseIndex(files ...ReverseFile) (schema.ReverseIndex, []*LoadStats) {
	index := schema.NewReverseIndex()
	stats := make([]*LoadStats, 0, len(files))
	for _, f := range files {
		stats = append(stats, loadReverseFile(index, f))
	}
	return index, stats
}

func loadReverseFile(index schema.ReverseIndex, f ReverseFile) *LoadStats {
	st := newStats(f.Path)

	raw, err := os.ReadFile(f.Path)
	if err != nil {
		debugf("reverse index skip: %s (%v)", f.Path, err)
		return st
	}
	st.Available = true

	// Mapping shape: {jy: [ {hanzi,source,score} | "hanzi", ... ]}
	var asMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &asMap); err == nil && asMap != nil {
		for jy, items := range asMap {
			addReverseItems(index, st, jy, items, f.Tag)
		}
		debugf("reverse index loaded from %s: %d candidates", f.Path, st.Records)
		return st
	}

	// Record-list shape: [{jyut: ..., hanzi: ...}, ...]
	var asList []interface{}
	if err := yaml.Unmarshal(raw, &asList); err != nil {
		st.addError("unparseable yaml: %v", err)
		debugf("reverse index load failed for %s: %v", f.Path, err)
		return st
	}
	for _, rec := range asList {
		m, ok := rec.(map[string]interface{})
		if !ok {
			st.Skipped++
			continue
		}
		jy, _ := m["jyut"].(string)
		if jy == "" {
			jy, _ = m["jy"].(string)
		}
		addReverseItems(index, st, jy, m["hanzi"], f.Tag)
	}
	debugf("reverse index loaded from %s: %d candidates", f.Path, st.Records)
	return st
}

// addReverseItems normalizes every accepted YAML shape for a phrase's
// candidate list down to canonical Candidate records.
func addReverseItems(index schema.ReverseIndex, st *LoadStats, jy string, items interface{}, tag schema.Source) {
	key := jyutping.Normalize(jy)
	if key == "" {
		st.Skipped++
		return
	}

	add := func(c schema.Candidate) {
		if c.Hanzi == "" {
			st.Skipped++
			return
		}
		if index.Add(key, c) {
			st.Records++
		} else {
			st.Skipped++
		}
	}

	switch v := items.(type) {
	case []interface{}:
		for _, item := range v {
			switch it := item.(type) {
			case map[string]interface{}:
				hz := strings.TrimSpace(stringValue(it["hanzi"]))
				src := schema.Source(strings.TrimSpace(stringValue(it["source"])))
				if src == "" {
					src = tag
				}
				add(schema.Candidate{Hanzi: hz, Source: src, Score: intValue(it["score"])})
			default:
				add(schema.Candidate{Hanzi: strings.TrimSpace(stringValue(it)), Source: tag})
			}
		}
	case string:
		add(schema.Candidate{Hanzi: strings.TrimSpace(v), Source: tag})
	case nil:
		st.Skipped++
	default:
		add(schema.Candidate{Hanzi: strings.TrimSpace(stringValue(v)), Source: tag})
	}
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n + 0.5)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f + 0.5)
		}
	}
	return 0
}
