package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuiltinHanziFor(t *testing.T) {
	if got := BuiltinHanziFor(" NEI5  hou2 "); !reflect.DeepEqual(got, []string{"你好"}) {
		t.Errorf("BuiltinHanziFor = %v", got)
	}
	if got := BuiltinHanziFor("mou5 je5"); got != nil {
		t.Errorf("BuiltinHanziFor(unknown) = %v, want nil", got)
	}
}

func writeTestCorpus(t *testing.T) Paths {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	for _, sub := range []string{"frequency", "CC-Canto", "Unihan"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	writeFile(t, dataDir, "reverse_manual.yaml",
		"\"nei5 hou2\":\n  - hanzi: \"你好\"\n    score: 10\n")
	writeFile(t, filepath.Join(dataDir, "CC-Canto"), "cccanto.tsv",
		"hanzi\tjyutping\tmeaning\n你好\tnei5 hou2\thello\n")
	writeFile(t, filepath.Join(dataDir, "Unihan"), "unihan_cantonese_chars.json",
		`{"你": "nei5", "好": "hou2"}`)
	writeFile(t, filepath.Join(dataDir, "frequency"), "hkcancor_words.csv",
		"hanzi,jyut,freq\n你好,nei5 hou2,42\n")
	writeFile(t, root, "andys_list.yaml",
		"你好: [[\"hello\"], \"nei5 hou2\"]\n")

	return DefaultPaths(dataDir)
}

func TestLoadAllSequential(t *testing.T) {
	paths := writeTestCorpus(t)

	var names []string
	c := LoadAll(paths, 1, func(name string, _ []*LoadStats) {
		names = append(names, name)
	})

	if got := c.Reverse.Lookup("nei5 hou2"); len(got) != 1 || got[0].Hanzi != "你好" {
		t.Errorf("reverse lookup = %v", got)
	}
	if got := c.CCCanto.HanziFor("nei5 hou2"); len(got) != 1 {
		t.Errorf("cccanto lookup = %v", got)
	}
	if got := c.CharMap.Readings("你"); !reflect.DeepEqual(got, []string{"nei5"}) {
		t.Errorf("char map readings = %v", got)
	}
	if _, ok := c.Vocab["你好"]; !ok {
		t.Error("vocab entry missing")
	}
	if len(names) == 0 {
		t.Error("progress callback never fired")
	}
}

func TestLoadAllParallelMatchesSequential(t *testing.T) {
	paths := writeTestCorpus(t)

	seq := LoadAll(paths, 1, nil)
	par := LoadAll(paths, 4, nil)

	if !reflect.DeepEqual(seq.Reverse, par.Reverse) {
		t.Error("reverse index differs between sequential and parallel load")
	}
	if !reflect.DeepEqual(seq.Vocab, par.Vocab) {
		t.Error("vocab differs between sequential and parallel load")
	}
	if len(seq.Freq) != len(par.Freq) {
		t.Fatalf("freq layer count differs: %d vs %d", len(seq.Freq), len(par.Freq))
	}
	for i := range seq.Freq {
		if seq.Freq[i].Source != par.Freq[i].Source {
			t.Errorf("freq layer %d source order differs", i)
		}
	}
}

func TestLoadAllTotallyMissing(t *testing.T) {
	c := LoadAll(DefaultPaths(filepath.Join(t.TempDir(), "nope")), 2, nil)

	if len(c.Reverse) != 0 || len(c.Vocab) != 0 {
		t.Error("expected empty corpus when every file is absent")
	}
	for _, st := range c.Stats {
		if st.Available {
			t.Errorf("%s reported available", st.Path)
		}
	}
}
