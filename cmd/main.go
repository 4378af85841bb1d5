// Reverse lookup CLI - Jyutping to Hanzi candidates over local corpora.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/brownidj/learn-canto-0-1/internal/config"
	"github.com/brownidj/learn-canto-0-1/internal/corpus"
	"github.com/brownidj/learn-canto-0-1/internal/ipa"
	"github.com/brownidj/learn-canto-0-1/internal/jyutping"
	"github.com/brownidj/learn-canto-0-1/internal/lookup"
	"github.com/brownidj/learn-canto-0-1/internal/metrics"
	"github.com/brownidj/learn-canto-0-1/internal/schema"
	"github.com/brownidj/learn-canto-0-1/internal/ui"
)

// queryResult is the JSON shape for one query in --json mode.
type queryResult struct {
	Phrase     string              `json:"phrase"`
	Valid      bool                `json:"valid"`
	Attested   bool                `json:"attested"`
	Candidates []schema.Candidate  `json:"candidates"`
	Glosses    map[string][]string `json:"glosses,omitempty"`
	IPA        map[string]string   `json:"ipa,omitempty"`
	Suggested  []string            `json:"suggested,omitempty"`
}

func main() {
	dataDir := pflag.StringP("data-dir", "d", config.DefaultDataDir(), "Corpus data directory")
	vocabPath := pflag.String("vocab", config.DefaultVocabPath(), "Vocabulary YAML path (default: beside data dir)")
	topN := pflag.IntP("top", "n", config.DefaultTopN(), "Maximum candidates per query")
	capSyllable := pflag.Int("cap-syllable", config.DefaultCapPerSyllable(), "Maximum composed characters per syllable")
	capCombos := pflag.Int("cap-combos", config.DefaultCapCombos(), "Maximum composed combinations per query")
	suggestLimit := pflag.Int("suggest", config.DefaultSuggestLimit(), "Maximum suggestions for unattested input")
	showIPA := pflag.Bool("ipa", config.DefaultIPA(), "Show IPA transcription per query")
	quiet := pflag.BoolP("quiet", "q", config.DefaultQuiet(), "Suppress progress output")
	verbose := pflag.BoolP("verbose", "v", config.DefaultVerbose(), "Verbose logging")
	writeMetrics := pflag.Bool("metrics", config.DefaultMetrics(), "Write metrics to the data directory")
	jsonOut := pflag.BoolP("json", "j", false, "Emit JSON results only")

	parallel := pflag.BoolP("parallel", "p", config.DefaultParallel(), "Load corpus sources in parallel")
	workers := pflag.IntP("workers", "w", config.DefaultWorkers(), "Number of parallel workers (0 = auto)")

	pflag.Parse()

	queries := pflag.Args()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: lookup [flags] JYUTPING_PHRASE...")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	if *workers <= 0 {
		*workers = runtime.NumCPU()
		if *workers > config.MaxWorkers {
			*workers = config.MaxWorkers
		}
	}
	if !*parallel {
		*workers = 1
	}

	term := ui.New(*quiet || *jsonOut, *verbose)
	if !*jsonOut {
		term.Banner()
		term.Config(*dataDir, *topN, *workers)
	}

	collector := metrics.NewCollector()
	collector.SetConfigMap(map[string]interface{}{
		"data_dir": *dataDir,
		"top_n":    *topN,
		"parallel": *parallel,
		"workers":  *workers,
		"queries":  len(queries),
	})

	// Load every corpus source.
	collector.StartStage(metrics.StageLoad)
	paths := corpus.DefaultPaths(*dataDir)
	if *vocabPath != "" {
		paths.VocabPath = *vocabPath
	}

	spinner := term.Spinner("Loading corpora...")
	loaded := corpus.LoadAll(paths, *workers, func(name string, stats []*corpus.LoadStats) {
		for _, st := range stats {
			term.SourceStatus(name, st.Available, st.Records, st.Errors)
		}
	})
	if spinner != nil {
		spinner.Stop()
	}
	collector.EndStage(metrics.StageLoad)
	collector.SetCounter("sources", int64(len(loaded.Stats)))

	engine := lookup.New(loaded)
	engine.TopN = *topN
	engine.CapPerSyllable = *capSyllable
	engine.CapCombos = *capCombos
	transcriber := ipa.NewTranscriber()

	var totalCandidates int64
	var results []queryResult

	collector.StartStage(metrics.StageLookup)
	for _, phrase := range queries {
		norm := jyutping.Normalize(phrase)
		res := queryResult{
			Phrase:   norm,
			Valid:    engine.Valid(norm),
			Attested: engine.Attested(norm),
		}

		res.Candidates = engine.Candidates(norm)
		totalCandidates += int64(len(res.Candidates))

		res.Glosses = make(map[string][]string)
		for _, c := range res.Candidates {
			if glosses := engine.Meanings(c.Hanzi); len(glosses) > 0 {
				res.Glosses[c.Hanzi] = glosses
			}
		}
		phraseIPA := ""
		if *showIPA {
			phraseIPA = transcriber.Transcribe(norm)
			res.IPA = map[string]string{norm: phraseIPA}
		}

		if !res.Attested {
			res.Suggested = engine.Attest.Suggest(norm, *suggestLimit)
		}

		if *jsonOut {
			results = append(results, res)
			continue
		}

		if !res.Valid {
			term.Warning(fmt.Sprintf("%q is not well-formed Jyutping", norm))
		}
		term.Candidates(norm, res.Candidates, res.Glosses, phraseIPA)
		if !res.Attested {
			term.Suggestions(norm, res.Suggested)
		}
	}
	collector.EndStage(metrics.StageLookup)
	collector.SetCounter("candidates", totalCandidates)

	runMetrics := collector.Finalize(int64(len(queries)), totalCandidates)

	if *writeMetrics {
		reporter := metrics.NewReporter(*dataDir)
		previousRun, _ := reporter.GetLastRun()

		if err := reporter.Write(runMetrics); err != nil {
			term.Warning(fmt.Sprintf("Failed to write metrics: %v", err))
		} else {
			term.Debug(fmt.Sprintf("Metrics written: %s", runMetrics.RunID))
		}

		if previousRun != nil && !*jsonOut {
			if comparison := metrics.CompareRuns(runMetrics, previousRun); comparison != nil {
				term.Info(metrics.FormatComparison(comparison))
			}
		}
	}

	if *jsonOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "encode results: %v\n", err)
			os.Exit(1)
		}
		return
	}

	term.FinalReport(len(queries), int(totalCandidates), collector.GetStageDuration(metrics.StageLoad)+collector.GetStageDuration(metrics.StageLookup))
	term.Done()
}
