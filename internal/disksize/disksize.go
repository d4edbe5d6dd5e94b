// Package disksize computes the on-disk footprint of directory subtrees.
//
// Accumulator walks with an explicit stack so arbitrarily deep trees never
// grow the call stack. Concurrent trades that for parallel traversal with
// fastwalk and only works against the local filesystem.
package disksize

import (
	"path/filepath"

	"github.com/idelchi/zpace/internal/fsys"
)

// Sizer computes the aggregate on-disk size of the subtree rooted at a path.
// errs counts entries that could not be read; the returned size is the
// best-effort sum over everything that could.
type Sizer interface {
	SizeOf(root string) (size int64, errs int)
}

// Accumulator is the sequential, explicit-stack Sizer.
type Accumulator struct {
	fs fsys.FS
}

// New returns an Accumulator reading through fs. A nil fs means the OS.
func New(fs fsys.FS) *Accumulator {
	if fs == nil {
		fs = fsys.OS{}
	}

	return &Accumulator{fs: fs}
}

// SizeOf implements Sizer. Symbolic links are neither followed nor counted.
func (a *Accumulator) SizeOf(root string) (int64, int) {
	var (
		total int64
		errs  int
	)

	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := a.fs.ReadDir(dir)
		if err != nil {
			errs++

			continue
		}

		for _, entry := range entries {
			mode := entry.Type()

			switch {
			case fsys.IsSymlink(mode):
			case mode.IsDir():
				stack = append(stack, filepath.Join(dir, entry.Name()))
			case mode.IsRegular():
				info, err := entry.Info()
				if err != nil {
					errs++

					continue
				}

				total += fsys.OnDisk(info)
			}
		}
	}

	return total, errs
}
