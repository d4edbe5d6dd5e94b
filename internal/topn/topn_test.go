package topn_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/zpace/internal/topn"
)

type sized struct {
	name string
	size int64
}

func bySize(a, b sized) bool { return a.size < b.size }

func sizes(values []sized) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = v.size
	}

	return out
}

func TestOffer_FillsUntilCapacity(t *testing.T) {
	tr := topn.New(3, bySize)

	assert.True(t, tr.Offer(sized{"/a.txt", 100}))
	assert.True(t, tr.Offer(sized{"/b.txt", 200}))

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []int64{200, 100}, sizes(tr.Snapshot()))
}

func TestOffer_RejectsSmallerWhenFull(t *testing.T) {
	tr := topn.New(3, bySize)
	for _, s := range []int64{100, 200, 300} {
		tr.Offer(sized{size: s})
	}

	assert.False(t, tr.Offer(sized{"/small.txt", 50}))
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []int64{300, 200, 100}, sizes(tr.Snapshot()))
}

func TestOffer_EvictsMinimumForLarger(t *testing.T) {
	tr := topn.New(3, bySize)
	tr.Offer(sized{"/a.txt", 100})
	tr.Offer(sized{"/b.txt", 200})
	tr.Offer(sized{"/c.txt", 300})

	assert.True(t, tr.Offer(sized{"/large.txt", 500}))

	snap := tr.Snapshot()
	assert.Equal(t, []int64{500, 300, 200}, sizes(snap))
	assert.NotContains(t, snap, sized{"/a.txt", 100})
}

func TestOffer_EqualToMinimumIsRejected(t *testing.T) {
	tr := topn.New(2, bySize)
	tr.Offer(sized{"first", 10})
	tr.Offer(sized{"second", 20})

	assert.False(t, tr.Offer(sized{"late", 10}))

	low, ok := tr.Min()
	require.True(t, ok)
	assert.Equal(t, "first", low.name)
}

func TestSnapshot_TiesKeepAdmissionOrder(t *testing.T) {
	tr := topn.New(4, bySize)
	tr.Offer(sized{"b", 5})
	tr.Offer(sized{"a", 5})
	tr.Offer(sized{"c", 9})
	tr.Offer(sized{"d", 5})

	snap := tr.Snapshot()
	names := make([]string, len(snap))
	for i, v := range snap {
		names[i] = v.name
	}

	assert.Equal(t, []string{"c", "b", "a", "d"}, names)

	// The latest of the tied minimums is evicted first.
	tr.Offer(sized{"e", 6})
	assert.NotContains(t, tr.Snapshot(), sized{"d", 5})
}

func TestCapacityOne(t *testing.T) {
	tr := topn.New(1, bySize)
	tr.Offer(sized{"/a.txt", 100})
	tr.Offer(sized{"/b.txt", 200})
	tr.Offer(sized{"/c.txt", 150})

	assert.Equal(t, []sized{{"/b.txt", 200}}, tr.Snapshot())
}

func TestNew_ClampsCapacity(t *testing.T) {
	tr := topn.New(0, bySize)

	assert.Equal(t, 1, tr.Cap())

	_, ok := tr.Min()
	assert.False(t, ok)
	assert.Empty(t, tr.Snapshot())
}

func TestSnapshot_DoesNotMutate(t *testing.T) {
	tr := topn.New(5, bySize)
	for _, s := range []int64{4, 1, 3} {
		tr.Offer(sized{size: s})
	}

	first := tr.Snapshot()
	second := tr.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, 3, tr.Len())

	low, _ := tr.Min()
	assert.Equal(t, int64(1), low.size)
}

func TestOffer_MatchesSortedPrefix(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // Deterministic test data

	for _, n := range []int{1, 2, 5, 10, 50} {
		tr := topn.New(n, bySize)
		all := make([]int64, 0, 1000)

		for range 1000 {
			s := rng.Int64N(10_000)
			all = append(all, s)
			tr.Offer(sized{size: s})
		}

		slices.Sort(all)
		slices.Reverse(all)

		got := sizes(tr.Snapshot())
		assert.LessOrEqual(t, len(got), n)
		assert.Equal(t, all[:n], got, "capacity %d", n)
	}
}

func TestMerge_EqualsSingleTracker(t *testing.T) {
	left := topn.New(5, bySize)
	right := topn.New(5, bySize)
	whole := topn.New(5, bySize)

	for i := range int64(40) {
		v := sized{size: (i * 37) % 101}
		whole.Offer(v)

		if i%2 == 0 {
			left.Offer(v)
		} else {
			right.Offer(v)
		}
	}

	left.Merge(right)

	assert.Equal(t, sizes(whole.Snapshot()), sizes(left.Snapshot()))
	assert.Equal(t, 5, right.Len())

	left.Merge(nil)
	assert.Equal(t, 5, left.Len())
}
