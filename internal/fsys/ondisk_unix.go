//go:build unix

package fsys

import (
	"io/fs"
	"syscall"
)

// blockUnit is the size of the units st_blocks is reported in.
const blockUnit = 512

// OnDisk returns the storage actually allocated to info, derived from its
// block count. Sparse files therefore report less than their logical size.
// Falls back to the logical size when no stat data is attached.
func OnDisk(info fs.FileInfo) int64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}

	return int64(st.Blocks) * blockUnit //nolint:unconvert // Blocks is int32 on some platforms
}
