//go:build !unix

package fsys

import "io/fs"

// OnDisk returns the logical size of info; allocation granularity is not
// exposed on this platform.
func OnDisk(info fs.FileInfo) int64 {
	return info.Size()
}
