// Package utils contains general helper functions used across the dirtree tool.
package utils

import "strings"

// DeduplicatePatterns removes blank and duplicate patterns from a slice while
// preserving order. The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// MergePatterns appends the patterns of every list in order and deduplicates the result.
func MergePatterns(patternLists ...[]string) []string {
	var combinedPatterns []string
	for _, patternList := range patternLists {
		combinedPatterns = append(combinedPatterns, patternList...)
	}
	return DeduplicatePatterns(combinedPatterns)
}

// DeduplicateNames removes empty and duplicate names while preserving order.
// Names are compared byte for byte; surrounding whitespace is significant.
func DeduplicateNames(names []string) []string {
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, exists := encounteredNames[name]; !exists {
			encounteredNames[name] = struct{}{}
			result = append(result, name)
		}
	}
	return result
}

// MergeNames appends the names of every list in order and deduplicates the result.
func MergeNames(nameLists ...[]string) []string {
	var combinedNames []string
	for _, nameList := range nameLists {
		combinedNames = append(combinedNames, nameList...)
	}
	return DeduplicateNames(combinedNames)
}
