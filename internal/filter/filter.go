// Package filter decides which directory entries are excluded from a rendered tree.
package filter

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/tyemirov/dirtree/internal/types"
)

const (
	// HiddenEntryPrefix marks entries hidden by platform convention.
	HiddenEntryPrefix = "."

	errorCompileIgnoreGlobFormat  = "compiling ignore glob %q: %w"
	errorCompileNamePatternFormat = "compiling name pattern %q: %w"
)

// Options carries the raw filter settings gathered from flags and configuration.
type Options struct {
	ShowHidden      bool
	DirectoriesOnly bool
	NamePattern     string
	IgnoreNames     []string
	IgnoreGlobs     []string
}

// Configuration is the compiled, immutable form of Options.
// The zero value includes every entry except hidden ones.
type Configuration struct {
	showHidden      bool
	directoriesOnly bool
	namePattern     glob.Glob
	ignoreNames     map[string]struct{}
	ignoreGlobs     []glob.Glob
}

// NewConfiguration compiles every glob in options. An invalid glob is reported
// here so that no traversal starts with a configuration that cannot be evaluated.
func NewConfiguration(options Options) (Configuration, error) {
	configuration := Configuration{
		showHidden:      options.ShowHidden,
		directoriesOnly: options.DirectoriesOnly,
		ignoreNames:     make(map[string]struct{}, len(options.IgnoreNames)),
	}

	for _, ignoredName := range options.IgnoreNames {
		configuration.ignoreNames[ignoredName] = struct{}{}
	}

	encounteredGlobs := make(map[string]struct{}, len(options.IgnoreGlobs))
	for _, ignoreGlobText := range options.IgnoreGlobs {
		if _, duplicate := encounteredGlobs[ignoreGlobText]; duplicate {
			continue
		}
		encounteredGlobs[ignoreGlobText] = struct{}{}
		compiledGlob, compileError := glob.Compile(ignoreGlobText)
		if compileError != nil {
			return Configuration{}, fmt.Errorf(errorCompileIgnoreGlobFormat, ignoreGlobText, compileError)
		}
		configuration.ignoreGlobs = append(configuration.ignoreGlobs, compiledGlob)
	}

	if options.NamePattern != "" {
		compiledPattern, compileError := glob.Compile(options.NamePattern)
		if compileError != nil {
			return Configuration{}, fmt.Errorf(errorCompileNamePatternFormat, options.NamePattern, compileError)
		}
		configuration.namePattern = compiledPattern
	}

	return configuration, nil
}

// ShouldExclude reports whether entry is left out of the tree. The rules are
// evaluated in order and the first matching rule decides:
// hidden entries, exact ignored names, ignore globs, the name pattern,
// and finally the directories-only restriction.
func ShouldExclude(entry types.DirectoryEntry, configuration Configuration) bool {
	entryName := entry.Name

	if !configuration.showHidden && IsHidden(entryName) {
		return true
	}
	if _, ignored := configuration.ignoreNames[entryName]; ignored {
		return true
	}
	for _, ignoreGlob := range configuration.ignoreGlobs {
		if ignoreGlob.Match(entryName) {
			return true
		}
	}
	if configuration.namePattern != nil && !configuration.namePattern.Match(entryName) {
		return true
	}
	if configuration.directoriesOnly && !entry.IsDirectory {
		return true
	}
	return false
}

// IsHidden reports whether name follows the hidden-entry convention.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenEntryPrefix)
}
