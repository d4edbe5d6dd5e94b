//go:build linux || darwin || freebsd || openbsd || dragonfly

package diskusage

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Usage returns capacity information for the filesystem holding path.
func Usage(path string) (Stats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Stats{}, fmt.Errorf("statfs %q: %w", path, err)
	}

	bsize := uint64(st.Bsize)          //nolint:gosec,unconvert // Block size is positive; type varies by platform
	total := uint64(st.Blocks) * bsize //nolint:unconvert // Type varies by platform

	return Stats{
		Total: total,
		Used:  total - uint64(st.Bfree)*bsize, //nolint:unconvert // Type varies by platform
		Free:  uint64(st.Bavail) * bsize,      //nolint:gosec,unconvert // Bavail is signed on some BSDs
	}, nil
}
