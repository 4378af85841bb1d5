// Package config provides centralized configuration defaults for the
// lookup tools.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFile represents the structure of config.toml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds all default values
type Defaults struct {
	DataDir        string `toml:"data_dir"`
	VocabPath      string `toml:"vocab_path"`
	TopN           int    `toml:"top_n"`
	CapPerSyllable int    `toml:"cap_per_syllable"`
	CapCombos      int    `toml:"cap_combos"`
	SuggestLimit   int    `toml:"suggest_limit"`
	Parallel       bool   `toml:"parallel"`
	Workers        int    `toml:"workers"`
	IPA            bool   `toml:"ipa"`
	Quiet          bool   `toml:"quiet"`
	Verbose        bool   `toml:"verbose"`
	Metrics        bool   `toml:"metrics"`
}

// Hardcoded fallback defaults (used if config.toml not found)
var fallbackDefaults = Defaults{
	DataDir:        "data",
	VocabPath:      "",
	TopN:           10,
	CapPerSyllable: 30,
	CapCombos:      100,
	SuggestLimit:   5,
	Parallel:       true,
	Workers:        0,
	IPA:            true,
	Quiet:          false,
	Verbose:        false,
	Metrics:        true,
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load reads config.toml from the project root
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	// Try to find config.toml by walking up from executable or cwd
	paths := []string{
		"config.toml",
		"../config.toml",
		"../../config.toml",
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "..", "config.toml"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			var cfg ConfigFile
			if _, err := toml.DecodeFile(path, &cfg); err == nil {
				loaded = &cfg
				return loaded
			}
		}
	}

	loaded = &ConfigFile{Defaults: fallbackDefaults}
	return loaded
}

// Convenience accessors that load config on first access
var (
	DefaultDataDir        = func() string { return Load().Defaults.DataDir }
	DefaultVocabPath      = func() string { return Load().Defaults.VocabPath }
	DefaultTopN           = func() int { return Load().Defaults.TopN }
	DefaultCapPerSyllable = func() int { return Load().Defaults.CapPerSyllable }
	DefaultCapCombos      = func() int { return Load().Defaults.CapCombos }
	DefaultSuggestLimit   = func() int { return Load().Defaults.SuggestLimit }
	DefaultParallel       = func() bool { return Load().Defaults.Parallel }
	DefaultWorkers        = func() int { return Load().Defaults.Workers }
	DefaultIPA            = func() bool { return Load().Defaults.IPA }
	DefaultQuiet          = func() bool { return Load().Defaults.Quiet }
	DefaultVerbose        = func() bool { return Load().Defaults.Verbose }
	DefaultMetrics        = func() bool { return Load().Defaults.Metrics }
)

// MaxWorkers is the cap for parallel workers
const MaxWorkers = 8
