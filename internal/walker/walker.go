// Package walker traverses a directory tree and produces the ordered render
// events that describe it.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/tyemirov/dirtree/internal/filesystem"
	"github.com/tyemirov/dirtree/internal/filter"
	"github.com/tyemirov/dirtree/internal/types"
)

const (
	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorStatRootFormat      = "stat failed for %s: %w"
	errorCanonicalRootFormat = "canonicalizing %s: %w"

	debugSkipListingMessage   = "skipping unreadable directory"
	debugSkipEntryTypeMessage = "treating entry as non-directory"
	debugSkipIdentityMessage  = "skipping directory without identity"
	debugCycleMessage         = "directory already visited"
)

// Options controls a single traversal.
type Options struct {
	Filter filter.Configuration
	// MaxDepth limits how deep directories are enumerated. Nil means unlimited;
	// zero renders the root alone.
	MaxDepth       *int
	FollowSymlinks bool
	// FileSystem defaults to the host filesystem when nil.
	FileSystem filesystem.FileSystem
	// Logger receives debug messages about absorbed failures. Nil disables logging.
	Logger *zap.Logger
}

// identityScheme selects how directories are identified for cycle detection.
// One scheme is chosen per walk.
type identityScheme int

const (
	identitySchemeDeviceInode identityScheme = iota
	identitySchemeCanonicalPath
)

// traversalContext carries everything shared by the recursive calls of one walk.
type traversalContext struct {
	options    Options
	fileSystem filesystem.FileSystem
	logger     *zap.Logger
	scheme     identityScheme
	visited    map[types.DirectoryIdentity]struct{}
	events     []types.RenderEvent
}

// Walk validates rootPath and returns the render events of its tree in output
// order. The first event is always the root itself. A missing root yields a
// *NotFoundError and a non-directory root a *NotADirectoryError; failures
// below the root never abort the walk.
func Walk(rootPath string, options Options) ([]types.RenderEvent, error) {
	fileSystem := options.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.NewOSFileSystem()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInfo, rootStatError := fileSystem.Stat(absoluteRootPath)
	if rootStatError != nil {
		if isMissingPathError(rootStatError) {
			return nil, &NotFoundError{Path: absoluteRootPath}
		}
		return nil, fmt.Errorf(errorStatRootFormat, absoluteRootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, &NotADirectoryError{Path: absoluteRootPath}
	}
	canonicalRootPath, canonicalError := fileSystem.Canonicalize(absoluteRootPath)
	if canonicalError != nil {
		return nil, fmt.Errorf(errorCanonicalRootFormat, absoluteRootPath, canonicalError)
	}

	ctx := &traversalContext{
		options:    options,
		fileSystem: fileSystem,
		logger:     logger,
		visited:    make(map[types.DirectoryIdentity]struct{}),
	}
	ctx.events = append(ctx.events, types.RenderEvent{
		Depth:         0,
		Name:          canonicalRootPath,
		Path:          canonicalRootPath,
		IsDirectory:   true,
		IsLastSibling: true,
	})

	if options.FollowSymlinks {
		rootIdentity, rootIdentityError := fileSystem.Identity(canonicalRootPath)
		if rootIdentityError != nil {
			ctx.scheme = identitySchemeCanonicalPath
			rootIdentity = types.DirectoryIdentity{CanonicalPath: canonicalRootPath}
		}
		ctx.markVisited(rootIdentity)
	}

	if ctx.shouldDescend(0) {
		ctx.walkDirectory(canonicalRootPath, 1)
	}
	return ctx.events, nil
}

// isMissingPathError reports stat failures that mean nothing exists at the
// path: no entry, a non-directory component, or a symbolic link loop.
func isMissingPathError(statError error) bool {
	return errors.Is(statError, fs.ErrNotExist) ||
		errors.Is(statError, syscall.ENOTDIR) ||
		errors.Is(statError, syscall.ELOOP)
}

// walkDirectory emits the children of directoryPath, which sit at depth.
func (ctx *traversalContext) walkDirectory(directoryPath string, depth int) {
	entries := ctx.readEntries(directoryPath)

	for entryIndex, entry := range entries {
		isLastSibling := entryIndex == len(entries)-1
		ctx.events = append(ctx.events, types.RenderEvent{
			Depth:         depth,
			Name:          entry.Name,
			Path:          entry.Path,
			IsDirectory:   entry.IsDirectory,
			IsLastSibling: isLastSibling,
		})

		if !entry.IsDirectory || !ctx.shouldDescend(depth) {
			continue
		}
		if ctx.options.FollowSymlinks {
			identity, identityAvailable := ctx.identityOf(entry.Path)
			if !identityAvailable {
				continue
			}
			if ctx.isVisited(identity) {
				ctx.logger.Debug(debugCycleMessage, zap.String("path", entry.Path))
				ctx.events = append(ctx.events, types.RenderEvent{
					Depth:         depth + 1,
					Path:          entry.Path,
					IsLastSibling: true,
					IsCycleMarker: true,
				})
				continue
			}
			ctx.markVisited(identity)
		}
		ctx.walkDirectory(entry.Path, depth+1)
	}
}

// readEntries lists, filters and orders the children of directoryPath.
// An unreadable directory contributes no entries; a listing that fails part
// way through is truncated.
func (ctx *traversalContext) readEntries(directoryPath string) []types.DirectoryEntry {
	directoryEntries, readError := ctx.fileSystem.ReadDirectory(directoryPath)
	if readError != nil {
		// Entries read before the failure are kept.
		ctx.logger.Debug(debugSkipListingMessage, zap.String("path", directoryPath), zap.Error(readError))
	}

	entries := make([]types.DirectoryEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entry := types.DirectoryEntry{
			Path: filepath.Join(directoryPath, directoryEntry.Name()),
			Name: directoryEntry.Name(),
		}
		entry.IsDirectory = ctx.isDirectory(entry.Path, directoryEntry)
		if filter.ShouldExclude(entry, ctx.options.Filter) {
			continue
		}
		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries
}

// isDirectory resolves whether an entry is a directory. Symbolic links count
// as directories only when links are followed and the target is a directory.
func (ctx *traversalContext) isDirectory(entryPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.IsDir()
	}
	if !ctx.options.FollowSymlinks {
		return false
	}
	targetInfo, statError := ctx.fileSystem.Stat(entryPath)
	if statError != nil {
		ctx.logger.Debug(debugSkipEntryTypeMessage, zap.String("path", entryPath), zap.Error(statError))
		return false
	}
	return targetInfo.IsDir()
}

// identityOf returns the identity of directoryPath under the walk's scheme.
func (ctx *traversalContext) identityOf(directoryPath string) (types.DirectoryIdentity, bool) {
	switch ctx.scheme {
	case identitySchemeCanonicalPath:
		canonicalPath, canonicalError := ctx.fileSystem.Canonicalize(directoryPath)
		if canonicalError != nil {
			ctx.logger.Debug(debugSkipIdentityMessage, zap.String("path", directoryPath), zap.Error(canonicalError))
			return types.DirectoryIdentity{}, false
		}
		return types.DirectoryIdentity{CanonicalPath: canonicalPath}, true
	default:
		identity, identityError := ctx.fileSystem.Identity(directoryPath)
		if identityError != nil {
			ctx.logger.Debug(debugSkipIdentityMessage, zap.String("path", directoryPath), zap.Error(identityError))
			return types.DirectoryIdentity{}, false
		}
		return identity, true
	}
}

func (ctx *traversalContext) isVisited(identity types.DirectoryIdentity) bool {
	_, visited := ctx.visited[identity]
	return visited
}

func (ctx *traversalContext) markVisited(identity types.DirectoryIdentity) {
	ctx.visited[identity] = struct{}{}
}

// shouldDescend reports whether directories found at depth are enumerated.
func (ctx *traversalContext) shouldDescend(depth int) bool {
	return ctx.options.MaxDepth == nil || depth < *ctx.options.MaxDepth
}

// sortEntries orders directories before files, then names case-insensitively.
// Equal keys keep their listing order.
func sortEntries(entries []types.DirectoryEntry) {
	sort.SliceStable(entries, func(leftIndex, rightIndex int) bool {
		left := entries[leftIndex]
		right := entries[rightIndex]
		if left.IsDirectory != right.IsDirectory {
			return left.IsDirectory
		}
		return strings.ToLower(left.Name) < strings.ToLower(right.Name)
	})
}
