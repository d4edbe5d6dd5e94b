//go:build windows

package diskusage

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Usage returns capacity information for the volume holding path.
func Usage(path string) (Stats, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Stats{}, fmt.Errorf("encoding %q: %w", path, err)
	}

	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(name, &available, &total, &free); err != nil {
		return Stats{}, fmt.Errorf("querying free space of %q: %w", path, err)
	}

	return Stats{
		Total: total,
		Used:  total - free,
		Free:  available,
	}, nil
}
