package utils_test

import (
	"reflect"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tyemirov/dirtree/internal/utils"
)

func TestDeduplicatePatterns(t *testing.T) {
	testCases := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{name: "empty", patterns: nil, expected: []string{}},
		{name: "keeps_first_occurrence", patterns: []string{"*.log", "vendor", "*.log"}, expected: []string{"*.log", "vendor"}},
		{name: "drops_blank_entries", patterns: []string{" ", "", "node_modules"}, expected: []string{"node_modules"}},
		{name: "trims_whitespace", patterns: []string{" dist ", "dist"}, expected: []string{"dist"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.DeduplicatePatterns(testCase.patterns)
			if !reflect.DeepEqual(result, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}

func TestMergePatterns(t *testing.T) {
	result := utils.MergePatterns([]string{"a", "b"}, nil, []string{"b", "c"})
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf("expected %v, got %v", expected, result)
	}
}

func TestDeduplicateNamesKeepsWhitespace(t *testing.T) {
	testCases := []struct {
		name     string
		names    []string
		expected []string
	}{
		{name: "empty", names: nil, expected: []string{}},
		{name: "drops_empty_only", names: []string{"", " ", "build"}, expected: []string{" ", "build"}},
		{name: "distinguishes_padded_names", names: []string{" build", "build", " build"}, expected: []string{" build", "build"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.DeduplicateNames(testCase.names)
			if !reflect.DeepEqual(result, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}

func TestMergeNames(t *testing.T) {
	result := utils.MergeNames([]string{"a ", "b"}, nil, []string{"b", "a"})
	expected := []string{"a ", "b", "a"}
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf("expected %v, got %v", expected, result)
	}
}

func TestNewApplicationLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, loggerError := utils.NewApplicationLogger(verbose)
		if loggerError != nil {
			t.Fatalf("NewApplicationLogger(%t) error: %v", verbose, loggerError)
		}
		if enabled := logger.Core().Enabled(zapcore.DebugLevel); enabled != verbose {
			t.Fatalf("debug enabled = %t for verbose=%t", enabled, verbose)
		}
	}
}
