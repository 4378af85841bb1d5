package lookup

import (
	"reflect"
	"testing"

	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

func TestComposeExactTone(t *testing.T) {
	e := newTestEngine()
	e.CharMap["你"] = []string{"nei5"}
	e.CharMap["好"] = []string{"hou2", "hou3"}

	got := e.Compose("nei5 hou2")

	if !reflect.DeepEqual(got, []string{"你好"}) {
		t.Errorf("Compose = %v", got)
	}
}

func TestComposeToneRelaxed(t *testing.T) {
	e := newTestEngine()
	e.CharMap["你"] = []string{"nei5"}
	e.CharMap["好"] = []string{"hou2"}

	// hou6 has no exact reading; the tone-stripped base still matches.
	got := e.Compose("nei5 hou6")

	if !reflect.DeepEqual(got, []string{"你好"}) {
		t.Errorf("Compose = %v", got)
	}
}

func TestComposePrefersExactOverRelaxed(t *testing.T) {
	e := newTestEngine()
	e.CharMap["好"] = []string{"hou2"}
	e.CharMap["號"] = []string{"hou6"}

	// 好 matches hou2 exactly, so the relaxed match 號 must not appear.
	got := e.Compose("hou2")

	if !reflect.DeepEqual(got, []string{"好"}) {
		t.Errorf("Compose = %v", got)
	}
}

func TestComposeUncomposableSyllable(t *testing.T) {
	e := newTestEngine()
	e.CharMap["你"] = []string{"nei5"}

	if got := e.Compose("nei5 zyu1"); got != nil {
		t.Errorf("Compose = %v, want nil for uncomposable syllable", got)
	}
}

func TestComposeEveryResultMatchesInput(t *testing.T) {
	e := newTestEngine()
	e.CharMap["九"] = []string{"gau2"}
	e.CharMap["狗"] = []string{"gau2"}
	e.CharMap["肉"] = []string{"juk6"}
	e.CharMap["玉"] = []string{"juk2"}

	syls := []string{"gau2", "juk6"}
	got := e.Compose("gau2 juk6")

	if len(got) == 0 {
		t.Fatal("Compose returned nothing")
	}
	for _, combo := range got {
		runes := []rune(combo)
		if len(runes) != len(syls) {
			t.Fatalf("combo %q length mismatch", combo)
		}
		for i, r := range runes {
			if !readingMatches(e.CharMap, string(r), syls[i]) {
				t.Errorf("combo %q: char %q does not read %q", combo, string(r), syls[i])
			}
		}
	}
}

func readingMatches(m corpus.CharMap, ch, syl string) bool {
	base := jyutping.StripTone(syl)
	for _, r := range m.Readings(ch) {
		if r == syl || jyutping.StripTone(r) == base {
			return true
		}
	}
	return false
}

func TestComposeBoundsCombinations(t *testing.T) {
	e := newTestEngine()
	e.CapPerSyllable = 3
	e.CapCombos = 5

	chars := []string{"你", "泥", "尼", "妳", "餌"}
	for _, ch := range chars {
		e.CharMap[ch] = []string{"nei5"}
	}
	e.CharMap["好"] = []string{"hou2"}
	e.CharMap["號"] = []string{"hou2"}
	e.CharMap["毫"] = []string{"hou2"}

	got := e.Compose("nei5 hou2 nei5")

	if len(got) != e.CapCombos {
		t.Errorf("combos = %d, want capped at %d", len(got), e.CapCombos)
	}
}

func TestComposeKeepsExtensionCodepoints(t *testing.T) {
	e := newTestEngine()
	e.CharMap["你"] = []string{"nei5"}
	e.CharMap["\U00020000"] = []string{"nei5"}
	e.CharMap["x"] = []string{"nei5"}

	got := e.Compose("nei5")

	// Extension-block characters compose; non-CJK ones never do.
	if !reflect.DeepEqual(got, []string{"你", "\U00020000"}) {
		t.Errorf("Compose = %v", got)
	}
}

func TestShortlistDropsRareCodepoints(t *testing.T) {
	e := newTestEngine()
	e.Vocab["你"] = schema.VocabEntry{Meanings: []string{"you"}}

	got := e.Shortlist("nei5", []string{"你", "\U00020000"})

	if len(got) != 1 || got[0].Hanzi != "你" {
		t.Errorf("Shortlist = %v, want rare codepoint dropped", got)
	}
}

func TestShortlistScoring(t *testing.T) {
	e := newTestEngine()
	e.Vocab["狗肉"] = schema.VocabEntry{Meanings: []string{"dog meat"}}
	e.Overrides["gau2 juk6"] = map[string]bool{"九肉": true}
	e.Freq = []*corpus.FreqTable{{
		Source: schema.SourceHKCanCor,
		Counts: map[corpus.FreqKey]int{
			{Hanzi: "垢肉", Jyutping: "gau3 juk6"}: 40,
		},
	}}

	got := e.Shortlist("gau2 juk6", []string{"垢肉", "九肉", "狗肉"})

	order := make([]string, len(got))
	for i, c := range got {
		order[i] = c.Hanzi
		if c.Source != schema.SourceTier2Ranked {
			t.Errorf("%s source = %s, want ranked label", c.Hanzi, c.Source)
		}
	}
	// Vocabulary membership beats the override bonus beats frequency.
	if !reflect.DeepEqual(order, []string{"狗肉", "九肉", "垢肉"}) {
		t.Errorf("order = %v", order)
	}
	if got[0].Score != vocabBonus {
		t.Errorf("vocab member score = %d, want %d", got[0].Score, vocabBonus)
	}
}

func TestShortlistOverrideBonusIsPhraseScoped(t *testing.T) {
	e := newTestEngine()
	e.Overrides["nei5 hou2"] = map[string]bool{"你好": true}

	// The manual rendering belongs to nei5 hou2; under a tone-relaxed
	// query for a different pronunciation it scores like any other combo.
	got := e.Shortlist("nei6 hou6", []string{"你好"})
	if len(got) != 1 || got[0].Score != 0 {
		t.Errorf("Shortlist(other phrase) = %v, want score 0", got)
	}

	got = e.Shortlist("nei5 hou2", []string{"你好"})
	if len(got) != 1 || got[0].Score != overrideBonus {
		t.Errorf("Shortlist(own phrase) = %v, want score %d", got, overrideBonus)
	}
}

func TestShortlistRepeatPenalty(t *testing.T) {
	e := newTestEngine()
	e.Vocab["一二"] = schema.VocabEntry{} // any ranking input enables scoring

	got := e.Shortlist("maa1 maa1", []string{"媽媽", "爸爸"})

	scores := map[string]int{}
	for _, c := range got {
		scores[c.Hanzi] = c.Score
	}
	if scores["媽媽"] != -repeatPenalty {
		t.Errorf("媽媽 score = %d, want %d", scores["媽媽"], -repeatPenalty)
	}
	if scores["爸爸"] != 0 {
		t.Errorf("爸爸 score = %d, want exempt from the penalty", scores["爸爸"])
	}
}

func TestShortlistUnrankedFallback(t *testing.T) {
	e := newTestEngine()
	e.TopN = 2

	got := e.Shortlist("jat1 ji6 saam1", []string{"一", "二", "三"})

	if len(got) != 2 {
		t.Fatalf("Shortlist = %v, want truncation to 2", got)
	}
	for _, c := range got {
		if c.Source != schema.SourceTier2 {
			t.Errorf("source = %s, want unranked label", c.Source)
		}
	}
	if got[0].Hanzi != "一" || got[1].Hanzi != "二" {
		t.Errorf("unranked order not preserved: %v", got)
	}
}

func TestShortlistTopN(t *testing.T) {
	e := newTestEngine()
	e.TopN = 3
	e.Vocab["零"] = schema.VocabEntry{}

	got := e.Shortlist("jat1", []string{"一", "二", "三", "四", "五"})

	if len(got) != 3 {
		t.Errorf("Shortlist = %d entries, want 3", len(got))
	}
}
