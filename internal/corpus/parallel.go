package corpus

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// Paths names every corpus source for one engine build. Zero values
// fall back to the conventional layout under DataDir.
type Paths struct {
	DataDir      string
	ReverseFiles []ReverseFile
	CCCantoPaths []string
	CharMapPath  string
	FreqFiles    map[string]schema.Source
	VocabPath    string
}

// DefaultPaths returns the conventional source layout rooted at a data
// directory, with the vocabulary file beside it.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		DataDir:      dataDir,
		ReverseFiles: DefaultReverseFiles(dataDir),
		CCCantoPaths: []string{
			filepath.Join(dataDir, "CC-Canto", "cccanto.tsv"),
			filepath.Join(dataDir, "cccanto.tsv"),
			filepath.Join(dataDir, "cccanto.csv"),
			filepath.Join(dataDir, "cccanto.txt"),
		},
		CharMapPath: filepath.Join(dataDir, "Unihan", "unihan_cantonese_chars.json"),
		FreqFiles:   DefaultFreqFiles(dataDir),
		VocabPath:   filepath.Join(filepath.Dir(dataDir), "andys_list.yaml"),
	}
}

// Corpus bundles every loaded source, ready for engine construction.
type Corpus struct {
	Reverse schema.ReverseIndex
	CCCanto *CCCanto
	CharMap CharMap
	Freq    []*FreqTable
	Vocab   schema.Vocab
	Stats   []*LoadStats
}

// ProgressCallback is called as each source finishes loading.
type ProgressCallback func(name string, stats []*LoadStats)

// LoadAll loads every source, fanning file reads out over a worker
// pool. Sources that fail simply contribute empty structures; LoadAll
// itself never fails.
func LoadAll(paths Paths, workers int, callback ProgressCallback) *Corpus {
	c := &Corpus{}

	type task struct {
		name string
		run  func() []*LoadStats
	}

	tasks := []task{
		{"reverse-index", func() []*LoadStats {
			idx, st := LoadReverseIndex(paths.ReverseFiles...)
			c.Reverse = idx
			return st
		}},
		{"cccanto", func() []*LoadStats {
			dict, st := LoadCCCanto(paths.CCCantoPaths...)
			c.CCCanto = dict
			return []*LoadStats{st}
		}},
		{"char-map", func() []*LoadStats {
			m, st := LoadCharMap(paths.CharMapPath)
			c.CharMap = m
			return []*LoadStats{st}
		}},
		{"vocab", func() []*LoadStats {
			v, st := LoadVocab(paths.VocabPath)
			c.Vocab = v
			return []*LoadStats{st}
		}},
	}

	// Stable order for the frequency layers.
	freqPaths := make([]string, 0, len(paths.FreqFiles))
	for p := range paths.FreqFiles {
		freqPaths = append(freqPaths, p)
	}
	sort.Strings(freqPaths)

	var freqMu sync.Mutex
	for _, p := range freqPaths {
		p, source := p, paths.FreqFiles[p]
		tasks = append(tasks, task{"freq:" + filepath.Base(p), func() []*LoadStats {
			table, st := LoadFreqCSV(p, source)
			freqMu.Lock()
			c.Freq = append(c.Freq, table)
			freqMu.Unlock()
			return []*LoadStats{st}
		}})
	}

	if workers <= 1 {
		for _, t := range tasks {
			st := t.run()
			c.Stats = append(c.Stats, st...)
			if callback != nil {
				callback(t.name, st)
			}
		}
		return c
	}

	jobs := make(chan task, len(tasks))
	type done struct {
		name  string
		stats []*LoadStats
	}
	results := make(chan done, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results <- done{t.name, t.run()}
			}
		}()
	}

	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		c.Stats = append(c.Stats, r.stats...)
		if callback != nil {
			callback(r.name, r.stats)
		}
	}

	// Sort freq layers by source for deterministic engine behavior.
	sort.Slice(c.Freq, func(i, j int) bool { return c.Freq[i].Source < c.Freq[j].Source })

	return c
}
