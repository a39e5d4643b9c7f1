//go:build unix

package filesystem

import (
	"golang.org/x/sys/unix"

	"github.com/tyemirov/dirtree/internal/types"
)

func deviceInodeIdentity(path string) (types.DirectoryIdentity, error) {
	var status unix.Stat_t
	if statError := unix.Stat(path, &status); statError != nil {
		return types.DirectoryIdentity{}, statError
	}
	return types.DirectoryIdentity{
		Device: uint64(status.Dev),
		Inode:  uint64(status.Ino),
	}, nil
}
