package scan

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Excluder prunes paths matching user-supplied regular expressions.
// Patterns are matched against slash-separated absolute paths at any depth.
type Excluder struct {
	patterns []*regexp.Regexp
}

// NewExcluder compiles patterns.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalidConfig, p, err)
		}

		e.patterns = append(e.patterns, re)
	}

	return e, nil
}

// Match returns the first pattern matching path, or nil.
func (e *Excluder) Match(path string) *regexp.Regexp {
	if e == nil || len(e.patterns) == 0 {
		return nil
	}

	slashed := filepath.ToSlash(path)

	for _, re := range e.patterns {
		if re.MatchString(slashed) {
			return re
		}
	}

	return nil
}
