// Package output renders walker events as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tyemirov/dirtree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"
	// CycleMarkerText annotates a directory whose contents were already rendered.
	CycleMarkerText = "↩︎ (cycle)"

	errorWriteLineFormat = "writing output line: %w"
)

// jsonTreeEntry is the serialized form of one render event.
type jsonTreeEntry struct {
	Path  string `json:"path"`
	Name  string `json:"name,omitempty"`
	Depth int    `json:"depth"`
	Type  string `json:"type"`
	Last  bool   `json:"last"`
	Cycle bool   `json:"cycle,omitempty"`
}

// RenderLines converts events into indented tree lines. Each ancestor level
// contributes continuation padding and the entry itself gets a branch glyph.
func RenderLines(events []types.RenderEvent) []string {
	lines := make([]string, 0, len(events))
	var ancestorIsLast []bool

	for _, event := range events {
		if event.Depth <= 0 {
			lines = append(lines, withDirectorySuffix(event.Name))
			ancestorIsLast = ancestorIsLast[:0]
			continue
		}

		ancestorCount := event.Depth - 1
		if ancestorCount > len(ancestorIsLast) {
			ancestorCount = len(ancestorIsLast)
		}
		ancestorIsLast = ancestorIsLast[:ancestorCount]
		linePrefix := ancestorPrefix(ancestorIsLast)

		if event.IsCycleMarker {
			lines = append(lines, linePrefix+CycleMarkerText)
			continue
		}

		connector := treeBranchConnector
		if event.IsLastSibling {
			connector = treeLastConnector
		}
		entryName := event.Name
		if event.IsDirectory {
			entryName += directorySuffix
		}
		lines = append(lines, linePrefix+connector+entryName)
		ancestorIsLast = append(ancestorIsLast, event.IsLastSibling)
	}

	return lines
}

func ancestorPrefix(ancestorIsLast []bool) string {
	var builder strings.Builder
	for _, isLast := range ancestorIsLast {
		if isLast {
			builder.WriteString(treeLastPadding)
		} else {
			builder.WriteString(treeBranchPadding)
		}
	}
	return builder.String()
}

func withDirectorySuffix(path string) string {
	if strings.HasSuffix(path, directorySuffix) {
		return path
	}
	return path + directorySuffix
}

// RenderJSON marshals the events as an indented JSON array.
func RenderJSON(events []types.RenderEvent) (string, error) {
	entries := make([]jsonTreeEntry, 0, len(events))
	for _, event := range events {
		entries = append(entries, jsonTreeEntry{
			Path:  event.Path,
			Name:  event.Name,
			Depth: event.Depth,
			Type:  event.NodeType(),
			Last:  event.IsLastSibling,
			Cycle: event.IsCycleMarker,
		})
	}
	encoded, jsonEncodeError := json.MarshalIndent(entries, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// JoinLines returns lines as one newline-terminated text block.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteLines writes every line to writer followed by a newline.
func WriteLines(writer io.Writer, lines []string) error {
	for _, line := range lines {
		if _, writeError := fmt.Fprintln(writer, line); writeError != nil {
			return fmt.Errorf(errorWriteLineFormat, writeError)
		}
	}
	return nil
}
