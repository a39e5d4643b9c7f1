// Package filesystem provides the filesystem operations the tree walker relies on.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tyemirov/dirtree/internal/types"
)

const (
	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorResolveLinksFormat  = "resolving symbolic links for %s: %w"
	errorOpenDirectoryFormat = "opening directory %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorIdentityFormat      = "reading identity of %s: %w"
)

// ErrIdentityUnavailable is returned by Identity on platforms that do not
// expose a device and inode pair.
var ErrIdentityUnavailable = errors.New("device and inode identity unavailable")

// FileSystem is the set of operations used to walk a directory tree.
type FileSystem interface {
	// Stat describes path, following symbolic links.
	Stat(path string) (fs.FileInfo, error)
	// ReadDirectory lists the immediate children of path in listing order.
	// Entries read before a failure are returned alongside the error.
	ReadDirectory(path string) ([]fs.DirEntry, error)
	// Identity returns the device and inode pair of path, following symbolic links.
	Identity(path string) (types.DirectoryIdentity, error)
	// Canonicalize returns the absolute, symbolic-link-free form of path.
	Canonicalize(path string) (string, error)
}

// OSFileSystem implements FileSystem using the host operating system.
type OSFileSystem struct{}

// NewOSFileSystem constructs the host filesystem implementation.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat wraps os.Stat.
func (fileSystem *OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDirectory opens path, reads every entry and closes the handle even when
// reading fails part way through. Entries are not sorted.
func (fileSystem *OSFileSystem) ReadDirectory(path string) (entries []fs.DirEntry, err error) {
	directoryHandle, openError := os.Open(path)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenDirectoryFormat, path, openError)
	}
	defer func() {
		if closeError := directoryHandle.Close(); closeError != nil && err == nil {
			err = closeError
		}
	}()

	directoryEntries, readError := directoryHandle.ReadDir(-1)
	if readError != nil {
		return directoryEntries, fmt.Errorf(errorReadDirectoryFormat, path, readError)
	}
	return directoryEntries, nil
}

// Identity returns the device and inode pair of path.
func (fileSystem *OSFileSystem) Identity(path string) (types.DirectoryIdentity, error) {
	identity, identityError := deviceInodeIdentity(path)
	if identityError != nil {
		return types.DirectoryIdentity{}, fmt.Errorf(errorIdentityFormat, path, identityError)
	}
	return identity, nil
}

// Canonicalize resolves path to an absolute path with every symbolic link evaluated.
func (fileSystem *OSFileSystem) Canonicalize(path string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, path, absolutePathError)
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return "", fmt.Errorf(errorResolveLinksFormat, absolutePath, resolveError)
	}
	return filepath.Clean(resolvedPath), nil
}

var _ FileSystem = (*OSFileSystem)(nil)
