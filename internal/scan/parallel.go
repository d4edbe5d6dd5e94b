package scan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// walkParallel lists the root itself, then walks each plain child directory
// of the root as an independent task on a pool bounded by cfg.Workers.
// Every task owns a private walker; partials are merged in task order once
// all tasks finished, so the result does not depend on scheduling.
func (w *walker) walkParallel(ctx context.Context, root frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subtrees := w.visit(root, nil)
	w.tally.notify()

	partials := make([]*walker, len(subtrees))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.cfg.Workers)

	for i, subtree := range subtrees {
		partials[i] = w.fork()

		group.Go(func() error {
			return partials[i].walk(groupCtx, subtree)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, partial := range partials {
		w.merge(partial)
	}

	return nil
}

// fork returns an empty walker sharing w's read-only state.
func (w *walker) fork() *walker {
	return &walker{
		cfg:        w.cfg,
		classifier: w.classifier,
		skip:       w.skip,
		exclude:    w.exclude,
		fs:         w.fs,
		sizer:      w.sizer,
		log:        w.log,
		tally:      w.tally,
		files:      newCategories(w.cfg.TopN),
		special:    newCategories(w.cfg.TopN),
	}
}

func (w *walker) merge(other *walker) {
	w.totalBytes += other.totalBytes
	w.entries += other.entries
	w.fileCount += other.fileCount
	w.dirCount += other.dirCount
	w.specialDirs += other.specialDirs
	w.skipped += other.skipped
	w.errors += other.errors

	w.files.merge(other.files)
	w.special.merge(other.special)
}
