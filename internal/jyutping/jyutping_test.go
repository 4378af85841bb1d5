package jyutping

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already canonical", "nei5 hou2", "nei5 hou2"},
		{"uppercase", "NEI5 HOU2", "nei5 hou2"},
		{"extra internal spaces", "nei5   hou2", "nei5 hou2"},
		{"leading and trailing", "  nei5 hou2  ", "nei5 hou2"},
		{"tabs and newlines", "nei5\thou2\n", "nei5 hou2"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"NEI5   HOU2",
		"  m4 goi1 ",
		"ngo5 dei6",
		"",
		"one  two   three",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSyllables(t *testing.T) {
	got := Syllables(" NEI5  hou2 ")
	want := []string{"nei5", "hou2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Syllables = %v, want %v", got, want)
	}

	if s := Syllables("   "); s != nil {
		t.Errorf("Syllables(blank) = %v, want nil", s)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"greeting", "nei5 hou2", true},
		{"syllabic m", "m4", true},
		{"syllabic ng", "ng5", true},
		{"missing tone", "nei hou2", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"vowel initial", "aa3", true},
		{"ng initial", "ngo5", true},
		{"gw initial", "gwai3", true},
		{"ou final", "hou2", true},
		{"eoi final", "zeoi3", true},
		{"oeng final", "loeng5", true},
		{"yu final", "jyu4", true},
		{"tone out of range", "nei7", false},
		{"bad final", "nqx5", false},
		{"irregular spacing ok", " NEI5   HOU2 ", true},
		{"multi syllable with bad one", "nei5 hou", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Valid(tt.input)
			if result != tt.expected {
				t.Errorf("Valid(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidLoose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"greeting", "nei5 hou2", true},
		{"unknown final accepted", "nqx5", true},
		{"missing tone", "nei", false},
		{"empty", "", false},
		{"syllabic m", "m4", true},
		{"digit only", "5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidLoose(tt.input)
			if result != tt.expected {
				t.Errorf("ValidLoose(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStripTone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"nei5", "nei"},
		{"hou2", "hou"},
		{"m4", "m"},
		{"baa", "baa"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripTone(tt.input); got != tt.expected {
			t.Errorf("StripTone(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
