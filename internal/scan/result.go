package scan

import (
	"maps"
	"slices"
	"time"
)

// CategorySummary is the final state of one category.
type CategorySummary struct {
	// Name is the category name.
	Name string `json:"name"`
	// Bytes is the cumulative on-disk size counted toward the category.
	Bytes int64 `json:"bytes"`
	// Count is the number of files or special directories counted toward the category.
	Count int64 `json:"count"`
	// Top holds the largest tracked entries, largest first.
	Top []Entry `json:"top"`
}

// Result holds the outcome of one completed scan.
type Result struct {
	// Root is the absolute path that was scanned.
	Root string `json:"root"`
	// TotalBytes is the on-disk size of every file and special directory visited.
	TotalBytes int64 `json:"total_bytes"`
	// Entries is the number of filesystem objects visited, excluding symlinks and skipped paths.
	Entries int64 `json:"entries"`
	// Files is the number of regular files visited individually.
	Files int64 `json:"files"`
	// Dirs is the number of plain directories descended into.
	Dirs int64 `json:"dirs"`
	// SpecialDirs is the number of special directories sized as a unit.
	SpecialDirs int64 `json:"special_dirs"`
	// Skipped is the number of paths pruned by the skip set or an exclude pattern.
	Skipped int64 `json:"skipped"`
	// ErrorCount is the number of recoverable errors encountered.
	ErrorCount int64 `json:"error_count"`
	// FileCategories maps file categories to their summaries.
	FileCategories map[string]CategorySummary `json:"file_categories"`
	// SpecialCategories maps special-directory categories to their summaries.
	SpecialCategories map[string]CategorySummary `json:"special_categories"`
	// Elapsed is the wall time of the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// SortedFileCategories returns the file category summaries ordered by name.
func (r *Result) SortedFileCategories() []CategorySummary {
	return sortedSummaries(r.FileCategories)
}

// SortedSpecialCategories returns the special-directory summaries ordered by name.
func (r *Result) SortedSpecialCategories() []CategorySummary {
	return sortedSummaries(r.SpecialCategories)
}

func sortedSummaries(m map[string]CategorySummary) []CategorySummary {
	out := make([]CategorySummary, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[name])
	}

	return out
}
