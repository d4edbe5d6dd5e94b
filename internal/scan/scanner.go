package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/idelchi/zpace/internal/disksize"
	"github.com/idelchi/zpace/internal/fsys"
)

// ErrInvalidRoot is returned before any traversal when the root is missing,
// is not a directory, or is itself a symbolic link.
var ErrInvalidRoot = errors.New("invalid scan root")

// frame is a directory waiting to be listed.
type frame struct {
	path  string
	depth int
}

// walker owns the accumulators of one (partial) scan.
type walker struct {
	cfg        *Config
	classifier *Classifier
	skip       *SkipSet
	exclude    *Excluder
	fs         fsys.FS
	sizer      disksize.Sizer
	log        *slog.Logger
	tally      *tally

	files   categories
	special categories

	totalBytes  int64
	entries     int64
	fileCount   int64
	dirCount    int64
	specialDirs int64
	skipped     int64
	errors      int64
}

// Scan walks cfg.Root and returns the categorized summary.
//
// Only an invalid configuration or root fails the scan; unreadable entries
// are counted in Result.ErrorCount and the walk continues. Cancelling ctx
// stops the walk before the next directory is listed and returns ctx.Err().
func Scan(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(cfg, opts)

	exclude, err := NewExcluder(cfg.Excludes)
	if err != nil {
		return nil, err
	}

	root, err := resolveRoot(o.fs, cfg.Root)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	w := &walker{
		cfg:        &cfg,
		classifier: NewClassifier(cfg),
		skip:       NewSkipSet(cfg.SkipPaths, cfg.MaxSkipDepth),
		exclude:    exclude,
		fs:         o.fs,
		sizer:      o.sizer,
		log:        o.logger,
		tally:      &tally{hook: o.progress},
		files:      newCategories(cfg.TopN),
		special:    newCategories(cfg.TopN),
	}

	w.log.Debug("scan started",
		"root", root,
		"min_size", cfg.MinSize,
		"top", cfg.TopN,
		"workers", cfg.Workers,
		"max_skip_depth", w.skip.MaxDepth(),
	)

	top := frame{path: root, depth: PathDepth(root)}

	if cfg.Workers > 1 {
		err = w.walkParallel(ctx, top)
	} else {
		err = w.walk(ctx, top)
	}

	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", root, err)
	}

	result := w.result(root)
	result.Elapsed = time.Since(start)

	w.log.Debug("scan finished",
		"entries", result.Entries,
		"bytes", result.TotalBytes,
		"skipped", result.Skipped,
		"errors", result.ErrorCount,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// resolveRoot returns the absolute root after checking it can be scanned.
func resolveRoot(filesystem fsys.FS, root string) (string, error) {
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %w", ErrInvalidRoot, root, err)
	}

	info, err := filesystem.Lstat(abs)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q does not exist", ErrInvalidRoot, abs)
	case err != nil:
		return "", fmt.Errorf("%w: accessing %q: %w", ErrInvalidRoot, abs, err)
	case fsys.IsSymlink(info.Mode()):
		return "", fmt.Errorf("%w: %q is a symbolic link", ErrInvalidRoot, abs)
	case !info.IsDir():
		return "", fmt.Errorf("%w: %q is not a directory", ErrInvalidRoot, abs)
	}

	return abs, nil
}

// walk drains an explicit stack seeded with start. The stop signal is checked
// once per popped directory.
func (w *walker) walk(ctx context.Context, start frame) error {
	stack := []frame{start}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stack = w.visit(current, stack)
		w.tally.notify()
	}

	return nil
}

// visit lists dir once and folds every child into the accumulators. Plain
// subdirectories are appended to stack for later traversal.
func (w *walker) visit(dir frame, stack []frame) []frame {
	children, err := w.fs.ReadDir(dir.path)
	if err != nil {
		w.errors++
		w.log.Debug("listing directory", "path", dir.path, "error", err)

		return stack
	}

	depth := dir.depth + 1

	for _, child := range children {
		mode := child.Type()
		if fsys.IsSymlink(mode) {
			continue
		}

		path := filepath.Join(dir.path, child.Name())

		if w.skip.ShouldSkip(path, depth) {
			w.skipped++
			w.log.Debug("skipping system path", "path", path)

			continue
		}

		if re := w.exclude.Match(path); re != nil {
			w.skipped++
			w.log.Debug("excluding path", "path", path, "pattern", re.String())

			continue
		}

		w.entries++

		switch {
		case mode.IsDir():
			if category, ok := w.classifier.SpecialCategoryOf(child.Name()); ok {
				w.addSpecial(category, path)

				continue
			}

			w.dirCount++
			stack = append(stack, frame{path: path, depth: depth})
		case mode.IsRegular():
			w.addFile(child, path)
		}
	}

	return stack
}

func (w *walker) addFile(child fs.DirEntry, path string) {
	info, err := child.Info()
	if err != nil {
		w.errors++
		w.log.Debug("reading file info", "path", path, "error", err)

		return
	}

	size := fsys.OnDisk(info)

	w.fileCount++
	w.totalBytes += size
	w.tally.add(1, size)

	tracked := size >= w.cfg.MinSize
	if !tracked && !w.cfg.CategoryTotalsIncludeSmall {
		return
	}

	acc := w.files.get(w.classifier.CategoryOf(filepath.Ext(child.Name())))
	acc.add(size)

	if tracked {
		acc.top.Offer(Entry{Path: path, Size: size, Kind: KindFile})
	}
}

// addSpecial sizes a special directory as one unit. Its descendants are
// never visited by the main walk.
func (w *walker) addSpecial(category, path string) {
	size, errs := w.sizer.SizeOf(path)
	if errs > 0 {
		w.errors += int64(errs)
		w.log.Debug("sizing special directory", "path", path, "errors", errs, "partial_size", size)
	}

	w.specialDirs++
	w.totalBytes += size
	w.tally.add(0, size)

	acc := w.special.get(category)
	acc.add(size)

	if size >= w.cfg.MinSize {
		acc.top.Offer(Entry{Path: path, Size: size, Kind: KindDir})
	}
}

func (w *walker) result(root string) *Result {
	return &Result{
		Root:              root,
		TotalBytes:        w.totalBytes,
		Entries:           w.entries,
		Files:             w.fileCount,
		Dirs:              w.dirCount,
		SpecialDirs:       w.specialDirs,
		Skipped:           w.skipped,
		ErrorCount:        w.errors,
		FileCategories:    w.files.summaries(),
		SpecialCategories: w.special.summaries(),
	}
}
