package disksize

import (
	"io/fs"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/idelchi/zpace/internal/fsys"
)

// Concurrent is a Sizer that walks the local filesystem in parallel.
type Concurrent struct {
	// Workers bounds the number of walking goroutines (0 = fastwalk default).
	Workers int
}

// SizeOf implements Sizer.
//
//nolint:varnamelen // d is standard for DirEntry
func (c Concurrent) SizeOf(root string) (int64, int) {
	var total, errs atomic.Int64

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: c.Workers,
	}

	walkErr := fastwalk.Walk(conf, root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			errs.Add(1)

			return nil //nolint:nilerr // Keep walking siblings
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errs.Add(1)

			return nil //nolint:nilerr // Entry vanished or is unreadable
		}

		total.Add(fsys.OnDisk(info))

		return nil
	})
	if walkErr != nil {
		errs.Add(1)
	}

	return total.Load(), int(errs.Load())
}
