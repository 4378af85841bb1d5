// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/brownidj/learn-canto-0-1/internal/schema"
)

// UI wraps pterm components for the lookup tools.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("jyut", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("ping", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()

	pterm.DefaultCenter.Println(
		pterm.FgGray.Sprint("Cantonese Reverse Lookup"),
	)
	fmt.Println()
}

// Config prints the configuration summary.
func (u *UI) Config(dataDir string, topN, workers int) {
	pterm.DefaultSection.Println("Configuration")

	data := [][]string{
		{"Data Directory", dataDir},
		{"Top N", fmt.Sprintf("%d", topN)},
		{"Workers", fmt.Sprintf("%d", workers)},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return spinner
}

// SourceStatus prints the load result for one corpus source.
func (u *UI) SourceStatus(name string, available bool, records int, errs []string) {
	prefix := pterm.FgCyan.Sprintf("[%s]", name)
	switch {
	case len(errs) > 0:
		pterm.Warning.Println(prefix, fmt.Sprintf("%d records, %d errors", records, len(errs)))
	case !available:
		pterm.Info.Println(prefix, "not found, skipped")
	default:
		pterm.Success.Println(prefix, fmt.Sprintf("%d records", records))
	}
}

// Candidates prints the ranked candidate table for one query. The
// phrase transcription, when given, goes in the section header.
func (u *UI) Candidates(phrase string, cands []schema.Candidate, glosses map[string][]string, phraseIPA string) {
	header := fmt.Sprintf("Candidates for %q", phrase)
	if phraseIPA != "" {
		header += "  " + pterm.FgGray.Sprintf("[%s]", phraseIPA)
	}
	pterm.DefaultSection.WithLevel(2).Println(header)

	if len(cands) == 0 {
		pterm.Warning.Println("no candidates found")
		return
	}

	data := pterm.TableData{{"Hanzi", "Source", "Score", "Meanings"}}
	for _, c := range cands {
		data = append(data, []string{
			c.Hanzi,
			string(c.Source),
			fmt.Sprintf("%d", c.Score),
			strings.Join(glosses[c.Hanzi], "; "),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// Suggestions prints near-miss phrases for an unattested query.
func (u *UI) Suggestions(phrase string, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	pterm.Info.Println(fmt.Sprintf("%q is not attested; did you mean:", phrase))
	for _, s := range suggestions {
		pterm.DefaultBasicText.Println("  " + pterm.FgLightBlue.Sprint(s))
	}
	fmt.Println()
}

// FinalReport prints the final summary report.
func (u *UI) FinalReport(queries, candidates int, duration time.Duration) {
	pterm.DefaultSection.Println("Summary")

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Queries:     %s\n"+
				"  Candidates:  %s\n"+
				"  Duration:    %s",
			pterm.FgGreen.Sprintf("%d", queries),
			pterm.FgCyan.Sprintf("%d", candidates),
			pterm.FgYellow.Sprint(duration.Round(time.Millisecond)),
		),
	)
	fmt.Println(panel)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}

// Done prints the completion message.
func (u *UI) Done() {
	fmt.Println()
	pterm.DefaultCenter.Println(
		pterm.FgGreen.Sprint("✓ Done!"),
	)
}
