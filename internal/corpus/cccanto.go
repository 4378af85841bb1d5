package corpus

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
)

// maxGlosses caps how many short glosses one headword keeps.
const maxGlosses = 3

// CCCanto holds the bilingual dictionary, indexed both ways: a reverse
// map from normalized Jyutping phrase to Hanzi renderings, and a gloss
// index from Hanzi to short English meanings.
type CCCanto struct {
	Reverse map[string][]string
	Glosses map[string][]string
}

// NewCCCanto returns an empty dictionary.
func NewCCCanto() *CCCanto {
	return &CCCanto{
		Reverse: make(map[string][]string),
		Glosses: make(map[string][]string),
	}
}

// HanziFor returns the Hanzi renderings recorded for a phrase.
func (c *CCCanto) HanziFor(phrase string) []string {
	if c == nil {
		return nil
	}
	return c.Reverse[jyutping.Normalize(phrase)]
}

// GlossesFor returns up to maxGlosses meanings for a headword.
func (c *CCCanto) GlossesFor(hanzi string) []string {
	if c == nil {
		return nil
	}
	return c.Glosses[hanzi]
}

func (c *CCCanto) add(st *LoadStats, hanzi, jy string, glosses []string) {
	hanzi = strings.TrimSpace(hanzi)
	key := jyutping.Normalize(jy)
	if hanzi == "" || key == "" {
		st.Skipped++
		return
	}
	bucket := c.Reverse[key]
	known := false
	for _, hz := range bucket {
		if hz == hanzi {
			known = true
			break
		}
	}
	if !known {
		c.Reverse[key] = append(bucket, hanzi)
		st.Records++
	}
	if _, ok := c.Glosses[hanzi]; !ok && len(glosses) > 0 {
		if len(glosses) > maxGlosses {
			glosses = glosses[:maxGlosses]
		}
		c.Glosses[hanzi] = glosses
	}
}

// Dictionary line shapes, e.g.
//
//	傳說 传说 [chuan2 shuo1] {cyun4 syut3} /legend/
//	阿爸 阿爸 {aa3 baa1} /dad/
//
// The Cantonese reading is preferred from {...}; [...] is a fallback
// for rows where only the bracketed reading is present.
var (
	curlyLine  = regexp.MustCompile(`^(\S+)\s+\S+\s+(?:\[[^\]]*\]\s+)?\{([^}]+)\}\s+/(.*)/\s*$`)
	squareLine = regexp.MustCompile(`^(\S+)\s+\S+\s+\[([^\]]+)\]\s+/(.*)/\s*$`)
	glossSplit = regexp.MustCompile(`[;/,]|，|；`)
)

// LoadCCCanto loads the first dictionary file found among paths.
// Accepts CC-CEDICT-style text as well as delimited TSV/CSV exports.
func LoadCCCanto(paths ...string) (*CCCanto, *LoadStats) {
	dict := NewCCCanto()

	var path string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		debugf("cccanto: no dictionary file found in expected paths")
		return dict, newStats("")
	}

	st := newStats(path)
	st.Available = true

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".csv":
		loadCCCantoDelimited(dict, st, path)
	default:
		loadCCCantoText(dict, st, path)
	}
	debugf("cccanto: %d reverse keys, %d glossed headwords from %s",
		len(dict.Reverse), len(dict.Glosses), filepath.Base(path))
	return dict, st
}

func loadCCCantoText(dict *CCCanto, st *LoadStats, path string) {
	file, err := os.Open(path)
	if err != nil {
		st.Available = false
		st.addError("open: %v", err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := curlyLine.FindStringSubmatch(line)
		if m == nil {
			m = squareLine.FindStringSubmatch(line)
		}
		if m == nil {
			st.Skipped++
			continue
		}
		dict.add(st, m[1], m[2], splitGlosses(m[3]))
	}
	if err := scanner.Err(); err != nil {
		st.addError("read: %v", err)
	}
}

func loadCCCantoDelimited(dict *CCCanto, st *LoadStats, path string) {
	file, err := os.Open(path)
	if err != nil {
		st.Available = false
		st.addError("open: %v", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil || len(rows) == 0 {
		if err != nil {
			st.addError("parse: %v", err)
		}
		return
	}

	idxHanzi, idxJy, idxGloss := 0, 1, -1
	start := 0
	if header := lowerRow(rows[0]); looksLikeHeader(header) {
		start = 1
		if i := findColumn(header, "hanzi", "word", "token", "chars", "traditional"); i >= 0 {
			idxHanzi = i
		}
		if i := findColumn(header, "jyut", "jyutping", "jy", "jyutping_str", "reading"); i >= 0 {
			idxJy = i
		}
		idxGloss = findColumn(header, "meaning", "meanings", "english", "gloss", "glosses", "definition", "defs")
	}

	for _, row := range rows[start:] {
		if len(row) <= idxHanzi || len(row) <= idxJy {
			st.Skipped++
			continue
		}
		var glosses []string
		if idxGloss >= 0 && len(row) > idxGloss {
			glosses = splitGlosses(row[idxGloss])
		}
		dict.add(st, row[idxHanzi], row[idxJy], glosses)
	}
}

func splitGlosses(raw string) []string {
	var out []string
	for _, g := range glossSplit.Split(raw, -1) {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func lowerRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}

// looksLikeHeader treats any row containing a letter as a header row;
// data rows here are Hanzi plus numbers.
func looksLikeHeader(row []string) bool {
	for _, col := range row {
		for _, r := range col {
			if r >= 'a' && r <= 'z' {
				return true
			}
		}
	}
	return false
}

func findColumn(header []string, names ...string) int {
	for _, n := range names {
		for i, col := range header {
			if col == n {
				return i
			}
		}
	}
	return -1
}
