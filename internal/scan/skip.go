package scan

import (
	"path/filepath"
	"strings"
)

// SkipSet prunes known system paths. Paths deeper than the deepest configured
// entry can never match, so checks past that depth return immediately.
type SkipSet struct {
	paths    map[string]struct{}
	maxDepth int
}

// NewSkipSet builds a SkipSet. A maxDepth of 0 derives it from paths.
func NewSkipSet(paths []string, maxDepth int) *SkipSet {
	s := &SkipSet{paths: make(map[string]struct{}, len(paths))}

	derived := 0

	for _, p := range paths {
		if p == "" {
			continue
		}

		p = filepath.Clean(p)
		s.paths[p] = struct{}{}
		derived = max(derived, PathDepth(p))
	}

	s.maxDepth = maxDepth
	if s.maxDepth == 0 {
		s.maxDepth = derived
	}

	return s
}

// MaxDepth returns the deepest path depth that is checked.
func (s *SkipSet) MaxDepth() int {
	return s.maxDepth
}

// ShouldSkip reports whether path, at the given depth, is pruned.
func (s *SkipSet) ShouldSkip(path string, depth int) bool {
	if depth > s.maxDepth || len(s.paths) == 0 {
		return false
	}

	_, ok := s.paths[path]

	return ok
}

// PathDepth returns the number of components in an absolute path below its
// filesystem root: "/" is 0, "/dev" is 1, "/private/var" is 2.
func PathDepth(path string) int {
	path = filepath.Clean(path)
	rest := strings.Trim(path[len(filepath.VolumeName(path)):], string(filepath.Separator))

	if rest == "" {
		return 0
	}

	return strings.Count(rest, string(filepath.Separator)) + 1
}
