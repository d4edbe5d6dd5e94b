// Package diskusage reports filesystem capacity and the size of the user's trash.
package diskusage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/idelchi/zpace/internal/disksize"
)

// ErrUnsupported is returned where the platform exposes no capacity information.
var ErrUnsupported = errors.New("disk usage not supported on this platform")

// LargeTrash is the trash size above which a cleanup hint is shown.
const LargeTrash = 1000 * 1024 * 1024

// Stats describes the filesystem holding a path.
type Stats struct {
	// Total is the capacity in bytes.
	Total uint64 `json:"total_bytes"`
	// Used is the number of bytes in use.
	Used uint64 `json:"used_bytes"`
	// Free is the number of bytes available to unprivileged users.
	Free uint64 `json:"free_bytes"`
}

// UsedPercent returns Used as a percentage of Total.
func (s Stats) UsedPercent() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Used) / float64(s.Total) * 100 //nolint:mnd // Percentage
}

// TrashStatus tells whether a trash size could be determined.
type TrashStatus int

const (
	// TrashFound means Size is valid.
	TrashFound TrashStatus = iota
	// TrashNotFound means the trash directory does not exist.
	TrashNotFound
	// TrashAccessDenied means the trash directory exists but cannot be listed.
	TrashAccessDenied
	// TrashUnknownOS means the platform has no known trash location.
	TrashUnknownOS
)

// String returns a human-readable description of the status.
func (s TrashStatus) String() string {
	switch s {
	case TrashFound:
		return "Found"
	case TrashNotFound:
		return "Not Found"
	case TrashAccessDenied:
		return "Access Denied"
	case TrashUnknownOS:
		return "Unknown OS"
	default:
		return "Unknown"
	}
}

// Trash is the outcome of a trash lookup.
type Trash struct {
	// Path is the trash directory, if known.
	Path string
	// Size is the on-disk size, valid when Status is TrashFound.
	Size int64
	// Status tells whether Size is valid.
	Status TrashStatus
}

// IsLarge reports whether the trash is worth emptying.
func (t Trash) IsLarge() bool {
	return t.Status == TrashFound && t.Size > LargeTrash
}

// TrashPath returns the trash directory of the current user on this OS.
func TrashPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	return trashPath(runtime.GOOS, home, os.Getenv("SystemDrive"))
}

func trashPath(goos, home, systemDrive string) (string, bool) {
	switch goos {
	case "darwin":
		return filepath.Join(home, ".Trash"), true
	case "linux":
		return filepath.Join(home, ".local", "share", "Trash"), true
	case "windows":
		if systemDrive == "" {
			systemDrive = "C:"
		}

		return filepath.Join(systemDrive+string(filepath.Separator), "$Recycle.Bin"), true
	default:
		return "", false
	}
}

// TrashSize sizes the current user's trash with sizer.
func TrashSize(sizer disksize.Sizer) Trash {
	path, ok := TrashPath()
	if !ok {
		return Trash{Status: TrashUnknownOS}
	}

	return sizeTrash(path, sizer)
}

func sizeTrash(path string, sizer disksize.Sizer) Trash {
	trash := Trash{Path: path}

	// Listing is the only reliable access check: permission bits may lie in containers.
	dir, err := os.Open(path)
	if err == nil {
		_, err = dir.ReadDir(1)
		dir.Close()
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		trash.Status = TrashNotFound
	case errors.Is(err, fs.ErrPermission):
		trash.Status = TrashAccessDenied
	default:
		trash.Size, _ = sizer.SizeOf(path)
		trash.Status = TrashFound
	}

	return trash
}
