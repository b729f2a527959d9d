//go:build !unix

package identity

import "io/fs"

// FromFileInfo always reports false: inode numbers are not exposed through
// fs.FileInfo on this platform, so objects are never deduplicated.
func FromFileInfo(fs.FileInfo) (ID, bool) {
	return ID{}, false
}
