//go:build unix

package identity

import (
	"io/fs"
	"syscall"
)

// FromFileInfo extracts the identity of the object described by fi.
func FromFileInfo(fi fs.FileInfo) (ID, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return ID{}, false
	}

	return ID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true //nolint:unconvert // Dev and Ino widths differ per platform
}
