package corpus

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// CharMap maps a single Hanzi character to its known Jyutping readings,
// in source order. Polyphones carry several readings.
type CharMap map[string][]string

// Readings returns the known readings for a character.
func (m CharMap) Readings(ch string) []string {
	return m[ch]
}

// LoadCharMap loads the Unihan-derived character-reading map. The JSON
// may be keyed by literal character or by "U+XXXX" codepoint, with
// readings as a bare string, a list, or an object carrying a
// kCantonese-style field; all shapes normalize to CharMap.
func LoadCharMap(path string) (CharMap, *LoadStats) {
	st := newStats(path)
	out := make(CharMap)

	raw, err := os.ReadFile(path)
	if err != nil {
		debugf("unihan char map missing at %s", path)
		return out, st
	}
	st.Available = true

	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for key, val := range asMap {
			ch := charForKey(key)
			if ch == "" {
				st.Skipped++
				continue
			}
			readings := val
			if obj, ok := val.(map[string]interface{}); ok {
				readings = firstField(obj, "kCantonese", "cantonese", "jyutping", "jyut")
			}
			pushReadings(out, st, ch, readings)
		}
		debugf("unihan char map loaded: %d entries from %s", len(out), path)
		return out, st
	}

	var asList []interface{}
	if err := json.Unmarshal(raw, &asList); err != nil {
		st.addError("unparseable json: %v", err)
		debugf("failed to read unihan json %s: %v", path, err)
		return out, st
	}
	for _, rec := range asList {
		obj, ok := rec.(map[string]interface{})
		if !ok {
			st.Skipped++
			continue
		}
		ch, _ := obj["char"].(string)
		if ch == "" {
			if cp := stringValue(firstField(obj, "codepoint", "cp")); cp != "" {
				ch = charForKey(cp)
			}
		}
		if ch == "" {
			st.Skipped++
			continue
		}
		pushReadings(out, st, ch, firstField(obj, "kCantonese", "cantonese", "jyutping", "jyut"))
	}
	debugf("unihan char map loaded: %d entries from %s", len(out), path)
	return out, st
}

// charForKey accepts either a literal single character or a U+XXXX
// codepoint reference.
func charForKey(key string) string {
	if len([]rune(key)) == 1 {
		return key
	}
	upper := strings.ToUpper(key)
	if strings.HasPrefix(upper, "U+") {
		if cp, err := strconv.ParseInt(upper[2:], 16, 32); err == nil {
			return string(rune(cp))
		}
	}
	return ""
}

// pushReadings folds any accepted reading shape into the map:
// "nei5", "nei5/nei6", or a list of either.
func pushReadings(m CharMap, st *LoadStats, ch string, val interface{}) {
	var parts []string
	switch v := val.(type) {
	case nil:
		st.Skipped++
		return
	case string:
		parts = splitReadings(v)
	case []interface{}:
		for _, item := range v {
			parts = append(parts, splitReadings(stringValue(item))...)
		}
	default:
		parts = splitReadings(stringValue(v))
	}
	if len(parts) == 0 {
		st.Skipped++
		return
	}

	bucket := m[ch]
	for _, r := range parts {
		known := false
		for _, have := range bucket {
			if have == r {
				known = true
				break
			}
		}
		if !known {
			bucket = append(bucket, r)
			st.Records++
		}
	}
	m[ch] = bucket
}

func splitReadings(raw string) []string {
	raw = strings.ToLower(strings.ReplaceAll(raw, "/", " "))
	return strings.Fields(raw)
}

func firstField(obj map[string]interface{}, names ...string) interface{} {
	for _, n := range names {
		if v, ok := obj[n]; ok && v != nil {
			return v
		}
	}
	return nil
}
