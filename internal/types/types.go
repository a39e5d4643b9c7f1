// Package types defines every cross‑package data structure used by the dirtree CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
	NodeTypeCycle     = "cycle"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// DirectoryEntry is one child read from a directory listing.
// IsDirectory is resolved once, when the entry is read.
type DirectoryEntry struct {
	Path        string
	Name        string
	IsDirectory bool
}

// DirectoryIdentity identifies a directory for the duration of one walk.
// Exactly one of the device/inode pair or CanonicalPath is populated,
// depending on the identity scheme chosen for the walk.
type DirectoryIdentity struct {
	Device        uint64
	Inode         uint64
	CanonicalPath string
}

// RenderEvent is a single structural element of a rendered tree.
type RenderEvent struct {
	Depth         int
	Name          string
	Path          string
	IsDirectory   bool
	IsLastSibling bool
	IsCycleMarker bool
}

// NodeType reports the serialized type label of the event.
func (event RenderEvent) NodeType() string {
	switch {
	case event.IsCycleMarker:
		return NodeTypeCycle
	case event.IsDirectory:
		return NodeTypeDirectory
	default:
		return NodeTypeFile
	}
}
