// Package topn provides a bounded tracker that retains the N largest values
// offered to it without materializing the full candidate set.
package topn

import (
	"container/heap"
	"slices"
)

// Tracker keeps at most N values, ordered by a caller-supplied less function.
// Internally it is a min-heap: the root is the smallest retained value, so a
// candidate that does not beat it is rejected in O(1).
//
// Equal values are ranked by admission order: the earlier one ranks higher and
// a later equal value never displaces it.
//
// A Tracker is not safe for concurrent use.
type Tracker[T any] struct {
	h   minHeap[T]
	n   int
	seq uint64
}

// New returns a tracker retaining up to n values. n below 1 is treated as 1.
func New[T any](n int, less func(a, b T) bool) *Tracker[T] {
	n = max(n, 1)

	return &Tracker[T]{
		n: n,
		h: minHeap[T]{less: less, items: make([]item[T], 0, min(n, 64))},
	}
}

// Offer admits v if the tracker is not full, or if v is strictly greater than
// the current minimum, which is then evicted. It reports whether v was kept.
func (t *Tracker[T]) Offer(v T) bool {
	candidate := item[T]{value: v, seq: t.seq}
	t.seq++

	if len(t.h.items) < t.n {
		heap.Push(&t.h, candidate)

		return true
	}

	if !t.h.less(t.h.items[0].value, v) {
		return false
	}

	t.h.items[0] = candidate
	heap.Fix(&t.h, 0)

	return true
}

// Min returns the smallest retained value.
func (t *Tracker[T]) Min() (T, bool) {
	if len(t.h.items) == 0 {
		var zero T

		return zero, false
	}

	return t.h.items[0].value, true
}

// Len returns the number of retained values.
func (t *Tracker[T]) Len() int {
	return len(t.h.items)
}

// Cap returns the maximum number of retained values.
func (t *Tracker[T]) Cap() int {
	return t.n
}

// Snapshot returns the retained values, largest first. The tracker is unchanged.
func (t *Tracker[T]) Snapshot() []T {
	items := slices.Clone(t.h.items)
	slices.SortFunc(items, func(a, b item[T]) int {
		switch {
		case t.h.below(b, a):
			return -1
		case t.h.below(a, b):
			return 1
		default:
			return 0
		}
	})

	values := make([]T, len(items))
	for i, it := range items {
		values[i] = it.value
	}

	return values
}

// Merge offers every value retained by other to t, largest first.
// other is not modified.
func (t *Tracker[T]) Merge(other *Tracker[T]) {
	if other == nil {
		return
	}

	for _, v := range other.Snapshot() {
		t.Offer(v)
	}
}

type item[T any] struct {
	value T
	seq   uint64
}

type minHeap[T any] struct {
	items []item[T]
	less  func(a, b T) bool
}

// below reports whether a ranks lower than b: smaller value, or equal value
// admitted later.
func (h *minHeap[T]) below(a, b item[T]) bool {
	if h.less(a.value, b.value) {
		return true
	}

	if h.less(b.value, a.value) {
		return false
	}

	return a.seq > b.seq
}

func (h *minHeap[T]) Len() int           { return len(h.items) }
func (h *minHeap[T]) Less(i, j int) bool { return h.below(h.items[i], h.items[j]) }
func (h *minHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *minHeap[T]) Push(x any) {
	h.items = append(h.items, x.(item[T])) //nolint:forcetypeassert // Only Tracker pushes
}

func (h *minHeap[T]) Pop() any {
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]

	return last
}
