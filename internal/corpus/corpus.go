// Package corpus loads the reference data the lookup engine runs on:
// curated reverse indexes, the CC-Canto dictionary, the Unihan
// character-reading map, frequency tables and the live vocabulary.
//
// Loaders never fail the caller for a missing or corrupt file: they
// return a best-effort (possibly empty) structure together with
// LoadStats describing what happened. Malformed records are skipped,
// not fatal.
package corpus

import (
	"fmt"

	"github.com/pterm/pterm"
)

// LoadStats describes the outcome of loading one source file.
type LoadStats struct {
	Path      string   `json:"path"`
	Available bool     `json:"available"`
	Records   int      `json:"records"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

func newStats(path string) *LoadStats {
	return &LoadStats{Path: path}
}

func (s *LoadStats) addError(format string, args ...interface{}) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

func debugf(format string, args ...interface{}) {
	pterm.Debug.Printfln(format, args...)
}
