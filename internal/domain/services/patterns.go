package services

import (
	"regexp"
	"strings"
)

// TextPattern is one weighted detection pattern. Patterns are compiled
// once and shared read-only across all analyses.
type TextPattern struct {
	Name        string
	Pattern     *regexp.Regexp
	Weight      float64
	Description string
}

// countMatches returns how many patterns match the content
func countMatches(patterns []TextPattern, content string) int {
	matched := 0
	for _, p := range patterns {
		if p.Pattern.MatchString(content) {
			matched++
		}
	}
	return matched
}

// containsAny reports whether content contains any of the given substrings
func containsAny(content string, words []string) bool {
	for _, w := range words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}

// clamp01 clamps a confidence value to [0, 1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
