// freqrank - Merge frequency corpus layers into one ranked table
// Usage: freqrank -d data [--weights 0.5,0.3,0.2]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/brownidj/learn-canto-0-1/internal/config"
	"github.com/brownidj/learn-canto-0-1/internal/freqrank"
	"github.com/brownidj/learn-canto-0-1/internal/ui"
)

func main() {
	dataDir := pflag.StringP("data-dir", "d", config.DefaultDataDir(), "Corpus data directory")
	weightsArg := pflag.String("weights", "0.5,0.3,0.2", "Comma weights hkcancor,subtitles,cccanto")
	quiet := pflag.BoolP("quiet", "q", config.DefaultQuiet(), "Suppress progress output")
	verbose := pflag.BoolP("verbose", "v", config.DefaultVerbose(), "Verbose logging")
	pflag.Parse()

	term := ui.New(*quiet, *verbose)

	weights, err := parseWeights(*weightsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --weights: %v\n", err)
		os.Exit(2)
	}

	spinner := term.Spinner("Merging frequency layers...")
	res, err := freqrank.Build(*dataDir, weights)
	if spinner != nil {
		spinner.Stop()
	}

	for _, msg := range res.Errors {
		term.Warning(msg)
	}
	if err != nil {
		term.Error(fmt.Sprintf("build failed: %v", err))
		os.Exit(1)
	}

	term.Success(fmt.Sprintf("%d entries merged", res.Entries))
	term.Info("YAML: " + res.YAMLPath)
	term.Info("CSV:  " + res.CSVPath)
	term.Done()
}

func parseWeights(arg string) (freqrank.Weights, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return freqrank.Weights{}, fmt.Errorf("want three comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return freqrank.Weights{}, err
		}
		vals[i] = v
	}
	return freqrank.Weights{HKCanCor: vals[0], Subtitles: vals[1], CCCanto: vals[2]}, nil
}
