package filter_test

import (
	"testing"

	"github.com/tyemirov/dirtree/internal/filter"
	"github.com/tyemirov/dirtree/internal/types"
)

func mustConfiguration(testingHandle *testing.T, options filter.Options) filter.Configuration {
	testingHandle.Helper()
	configuration, configurationError := filter.NewConfiguration(options)
	if configurationError != nil {
		testingHandle.Fatalf("NewConfiguration(%+v) error: %v", options, configurationError)
	}
	return configuration
}

func TestShouldExclude(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		options  filter.Options
		entry    types.DirectoryEntry
		expected bool
	}{
		{
			name:     "hidden_shown",
			options:  filter.Options{ShowHidden: true},
			entry:    types.DirectoryEntry{Name: ".git", IsDirectory: true},
			expected: false,
		},
		{
			name:     "hidden_hidden",
			options:  filter.Options{ShowHidden: false},
			entry:    types.DirectoryEntry{Name: ".env"},
			expected: true,
		},
		{
			name:     "exact_name_ignored",
			options:  filter.Options{ShowHidden: true, IgnoreNames: []string{"node_modules"}},
			entry:    types.DirectoryEntry{Name: "node_modules", IsDirectory: true},
			expected: true,
		},
		{
			name:     "exact_name_is_not_a_prefix_match",
			options:  filter.Options{ShowHidden: true, IgnoreNames: []string{"node"}},
			entry:    types.DirectoryEntry{Name: "node_modules", IsDirectory: true},
			expected: false,
		},
		{
			name:     "ignore_glob_matches",
			options:  filter.Options{ShowHidden: true, IgnoreGlobs: []string{"*.pyc", "*.log"}},
			entry:    types.DirectoryEntry{Name: "server.log"},
			expected: true,
		},
		{
			name:     "ignore_glob_character_class",
			options:  filter.Options{ShowHidden: true, IgnoreGlobs: []string{"build[0-9]"}},
			entry:    types.DirectoryEntry{Name: "build7", IsDirectory: true},
			expected: true,
		},
		{
			name:     "pattern_matches",
			options:  filter.Options{ShowHidden: true, NamePattern: "*.pdf"},
			entry:    types.DirectoryEntry{Name: "report.pdf"},
			expected: false,
		},
		{
			name:     "pattern_does_not_match",
			options:  filter.Options{ShowHidden: true, NamePattern: "*.pdf"},
			entry:    types.DirectoryEntry{Name: "report.txt"},
			expected: true,
		},
		{
			name:     "pattern_applies_to_directories",
			options:  filter.Options{ShowHidden: true, NamePattern: "*.pdf"},
			entry:    types.DirectoryEntry{Name: "docs", IsDirectory: true},
			expected: true,
		},
		{
			name:     "pattern_is_case_sensitive",
			options:  filter.Options{ShowHidden: true, NamePattern: "*.pdf"},
			entry:    types.DirectoryEntry{Name: "REPORT.PDF"},
			expected: true,
		},
		{
			name:     "directories_only_drops_file",
			options:  filter.Options{ShowHidden: true, DirectoriesOnly: true},
			entry:    types.DirectoryEntry{Name: "main.go"},
			expected: true,
		},
		{
			name:     "directories_only_keeps_directory",
			options:  filter.Options{ShowHidden: true, DirectoriesOnly: true},
			entry:    types.DirectoryEntry{Name: "cmd", IsDirectory: true},
			expected: false,
		},
		{
			name:     "no_rules_include",
			options:  filter.Options{ShowHidden: true},
			entry:    types.DirectoryEntry{Name: "readme.md"},
			expected: false,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			configuration := mustConfiguration(testingHandle, testCase.options)
			if excluded := filter.ShouldExclude(testCase.entry, configuration); excluded != testCase.expected {
				testingHandle.Fatalf("ShouldExclude(%+v) = %t, want %t", testCase.entry, excluded, testCase.expected)
			}
		})
	}
}

// TestShowHiddenGrowsIncludedSet verifies that enabling hidden entries never removes an included entry.
func TestShowHiddenGrowsIncludedSet(testingHandle *testing.T) {
	entries := []types.DirectoryEntry{
		{Name: ".git", IsDirectory: true},
		{Name: ".env"},
		{Name: "src", IsDirectory: true},
		{Name: "main.go"},
		{Name: "notes.txt"},
		{Name: ".cache.txt"},
		{Name: "vendor", IsDirectory: true},
	}
	baseOptions := []filter.Options{
		{},
		{DirectoriesOnly: true},
		{NamePattern: "*.txt"},
		{IgnoreNames: []string{"vendor"}, IgnoreGlobs: []string{".e*"}},
	}

	for _, options := range baseOptions {
		hidingOptions := options
		hidingOptions.ShowHidden = false
		showingOptions := options
		showingOptions.ShowHidden = true
		hidingConfiguration := mustConfiguration(testingHandle, hidingOptions)
		showingConfiguration := mustConfiguration(testingHandle, showingOptions)

		for _, entry := range entries {
			includedWhenHiding := !filter.ShouldExclude(entry, hidingConfiguration)
			includedWhenShowing := !filter.ShouldExclude(entry, showingConfiguration)
			if includedWhenHiding && !includedWhenShowing {
				testingHandle.Fatalf("entry %q included when hiding but excluded when showing (options %+v)", entry.Name, options)
			}
		}
	}
}

func TestNewConfigurationRejectsInvalidGlobs(testingHandle *testing.T) {
	testCases := []struct {
		name    string
		options filter.Options
	}{
		{name: "ignore_glob", options: filter.Options{IgnoreGlobs: []string{"[abc"}}},
		{name: "name_pattern", options: filter.Options{NamePattern: "report[0-"}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if _, configurationError := filter.NewConfiguration(testCase.options); configurationError == nil {
				testingHandle.Fatalf("expected error for %+v", testCase.options)
			}
		})
	}
}

func TestZeroConfigurationHidesOnlyHiddenEntries(testingHandle *testing.T) {
	var configuration filter.Configuration
	if !filter.ShouldExclude(types.DirectoryEntry{Name: ".hidden"}, configuration) {
		testingHandle.Fatalf("expected hidden entry to be excluded by zero configuration")
	}
	if filter.ShouldExclude(types.DirectoryEntry{Name: "visible"}, configuration) {
		testingHandle.Fatalf("expected visible entry to be included by zero configuration")
	}
}
