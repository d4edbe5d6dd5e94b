package scan

import (
	"github.com/idelchi/zpace/internal/topn"
)

// accumulator holds the running totals and top entries of one category.
type accumulator struct {
	bytes int64
	count int64
	top   *topn.Tracker[Entry]
}

func (a *accumulator) add(size int64) {
	a.bytes += size
	a.count++
}

// categories lazily creates one accumulator per category name.
type categories struct {
	topN   int
	byName map[string]*accumulator
}

func newCategories(topN int) categories {
	return categories{topN: topN, byName: make(map[string]*accumulator)}
}

func (c categories) get(name string) *accumulator {
	acc, ok := c.byName[name]
	if !ok {
		acc = &accumulator{top: topn.New(c.topN, entryLess)}
		c.byName[name] = acc
	}

	return acc
}

// merge folds other into c. Top entries are re-offered, so the admission
// rule is the same as during the walk.
func (c categories) merge(other categories) {
	for name, theirs := range other.byName {
		ours := c.get(name)
		ours.bytes += theirs.bytes
		ours.count += theirs.count
		ours.top.Merge(theirs.top)
	}
}

func (c categories) summaries() map[string]CategorySummary {
	out := make(map[string]CategorySummary, len(c.byName))

	for name, acc := range c.byName {
		out[name] = CategorySummary{
			Name:  name,
			Bytes: acc.bytes,
			Count: acc.count,
			Top:   acc.top.Snapshot(),
		}
	}

	return out
}
