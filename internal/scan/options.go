package scan

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/idelchi/zpace/internal/disksize"
	"github.com/idelchi/zpace/internal/fsys"
)

// ProgressFunc receives the number of files and bytes counted so far.
// It is called at most once per directory listed and never concurrently.
type ProgressFunc func(files, bytes int64)

// Option customizes a scan.
type Option func(*options)

type options struct {
	progress ProgressFunc
	logger   *slog.Logger
	fs       fsys.FS
	sizer    disksize.Sizer
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithLogger routes debug output about unreadable entries to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fs fsys.FS) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithSizer replaces the subtree sizer used for special directories.
func WithSizer(sizer disksize.Sizer) Option {
	return func(o *options) {
		o.sizer = sizer
	}
}

func newOptions(cfg Config, opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	_, onDisk := o.fs.(fsys.OS)
	if o.fs == nil {
		o.fs = fsys.OS{}
		onDisk = true
	}

	if o.sizer == nil {
		if cfg.Workers > 1 && onDisk {
			o.sizer = disksize.Concurrent{Workers: cfg.Workers}
		} else {
			o.sizer = disksize.New(o.fs)
		}
	}

	return o
}

// tally is the running file and byte count shared by every walker of a scan.
type tally struct {
	files atomic.Int64
	bytes atomic.Int64

	mu   sync.Mutex
	hook ProgressFunc
}

func (t *tally) add(files, bytes int64) {
	t.files.Add(files)
	t.bytes.Add(bytes)
}

func (t *tally) notify() {
	if t.hook == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.hook(t.files.Load(), t.bytes.Load())
}
