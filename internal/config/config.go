// Package config loads dirtree configuration files and ignore files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	ignoreFileCommentPrefix = "#"

	errorOpenIgnoreFileFormat = "opening ignore file %s: %w"
	errorReadIgnoreFileFormat = "reading ignore file %s: %w"
)

// LoadIgnoreFilePatterns reads one glob per line from ignoreFilePath. Blank
// lines and lines starting with # are skipped. Trailing slashes are dropped
// because patterns are matched against entry names only.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, fmt.Errorf(errorOpenIgnoreFileFormat, ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, ignoreFileCommentPrefix) {
			continue
		}
		trimmedLine = strings.TrimSuffix(trimmedLine, "/")
		if trimmedLine == "" {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadIgnoreFileFormat, ignoreFilePath, scanError)
	}
	return ignorePatterns, nil
}
