package corpus

import (
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// LoadVocab loads the live vocabulary store. The canonical YAML shape
// is
//
//	Hanzi: [[english, ...], jyutping]
//
// but bare-string and flat-list values from hand-edited files are
// accepted too (meanings only, no pronunciation). Keys are
// NFC-normalized and stripped of Chinese punctuation.
func LoadVocab(path string) (schema.Vocab, *LoadStats) {
	st := newStats(path)
	vocab := make(schema.Vocab)

	raw, err := os.ReadFile(path)
	if err != nil {
		debugf("vocab skip: %s (%v)", path, err)
		return vocab, st
	}
	st.Available = true

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		st.addError("unparseable yaml: %v", err)
		debugf("vocab load failed for %s: %v", path, err)
		return vocab, st
	}

	for key, val := range data {
		hanzi := schema.SanitizeHanzi(norm.NFC.String(strings.TrimSpace(key)))
		if hanzi == "" {
			st.Skipped++
			continue
		}
		entry, ok := vocabEntry(val)
		if !ok {
			st.Skipped++
			continue
		}
		vocab[hanzi] = entry
		st.Records++
	}
	debugf("vocab loaded: %d entries from %s", len(vocab), path)
	return vocab, st
}

// vocabEntry maps every accepted value shape to one canonical entry.
func vocabEntry(val interface{}) (schema.VocabEntry, bool) {
	switch v := val.(type) {
	case []interface{}:
		// Canonical: [[meanings...], jyutping]
		if len(v) == 2 {
			if meanings, ok := v[0].([]interface{}); ok {
				if jy, ok := v[1].(string); ok {
					return schema.VocabEntry{
						Meanings: stringList(meanings),
						Jyutping: jy,
					}, true
				}
			}
		}
		// Flat list of meanings, no pronunciation.
		return schema.VocabEntry{Meanings: stringList(v)}, true
	case string:
		return schema.VocabEntry{Meanings: []string{v}}, true
	case nil:
		return schema.VocabEntry{}, false
	default:
		return schema.VocabEntry{Meanings: []string{stringValue(v)}}, true
	}
}

func stringList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(stringValue(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
