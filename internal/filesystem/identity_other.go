//go:build !unix

package filesystem

import "github.com/tyemirov/dirtree/internal/types"

func deviceInodeIdentity(string) (types.DirectoryIdentity, error) {
	return types.DirectoryIdentity{}, ErrIdentityUnavailable
}
