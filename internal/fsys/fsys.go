// Package fsys is the thin filesystem seam shared by the walkers.
//
// Production code uses OS; tests swap in synthetic trees that would be
// impractical to build on a real disk.
package fsys

import (
	"io/fs"
	"os"
)

// FS is the subset of filesystem access the walkers depend on.
type FS interface {
	// ReadDir lists the immediate children of the named directory.
	ReadDir(name string) ([]fs.DirEntry, error)
	// Lstat describes the named file without following a final symbolic link.
	Lstat(name string) (fs.FileInfo, error)
}

// OS reads the local filesystem.
type OS struct{}

// ReadDir implements FS.
func (OS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Lstat implements FS.
func (OS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// IsSymlink reports whether mode describes a symbolic link.
func IsSymlink(mode fs.FileMode) bool {
	return mode&fs.ModeSymlink != 0
}
