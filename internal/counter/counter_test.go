package counter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

// forEachVariant runs fn once per construction strategy.
func forEachVariant(t *testing.T, fn func(t *testing.T, l Counted)) {
	t.Helper()
	for _, v := range Variants {
		v := v
		t.Run(string(v), func(t *testing.T) {
			l, err := New(v)
			require.NoError(t, err)
			require.Equal(t, v, l.Variant())
			fn(t, l)
		})
	}
}

func TestCounted_FreshInstance(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		assert.Equal(t, 0, l.Size())
		assert.Equal(t, 0, l.TotalAdded())
	})
}

func TestCounted_DuplicateAddIsCounted(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		assert.True(t, l.Add(5))
		assert.False(t, l.Add(5))
		assert.Equal(t, 1, l.Size())
		assert.Equal(t, 2, l.TotalAdded())
	})
}

func TestCounted_AddAllSortsAndCounts(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		assert.True(t, l.AddAll(sortedlist.Ints(3, 1, 2)))
		for i, want := range []int{1, 2, 3} {
			got, err := l.Get(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		assert.Equal(t, 3, l.Size())
		assert.Equal(t, 3, l.TotalAdded())
	})
}

func TestCounted_AddAllOfDuplicatesCountsEveryElement(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		l.AddAll(sortedlist.Ints(1, 2))
		assert.False(t, l.AddAll(sortedlist.Ints(2, 1, 2, 1)))
		assert.Equal(t, 2, l.Size())
		assert.Equal(t, 6, l.TotalAdded())
	})
}

func TestCounted_AddAllEmpty(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		assert.False(t, l.AddAll(sortedlist.Ints()))
		assert.Equal(t, 0, l.TotalAdded())
	})
}

func TestCounted_AddAllSelf(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		l.AddAll(sortedlist.Ints(1, 2, 3))
		assert.False(t, l.AddAll(l))
		assert.Equal(t, 3, l.Size())
		assert.Equal(t, 6, l.TotalAdded())
	})
}

func TestCounted_RemoveLeavesTallyAlone(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		l.Add(1)
		assert.True(t, l.Remove(1))
		assert.Equal(t, 0, l.Size())
		assert.Equal(t, 1, l.TotalAdded())

		assert.False(t, l.Remove(1))
		assert.Equal(t, 1, l.TotalAdded())
	})
}

func TestCounted_RemoveAllLeavesTallyAlone(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		l.AddAll(sortedlist.Ints(1, 2, 3, 4))
		assert.True(t, l.RemoveAll(sortedlist.Ints(2, 4, 8)))
		assert.Equal(t, []int{1, 3}, sortedlist.Values(l))
		assert.Equal(t, 4, l.TotalAdded())
	})
}

func TestCounted_GetOnEmpty(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		_, err := l.Get(0)
		require.Error(t, err)
		assert.ErrorIs(t, err, sortedlist.ErrInvalidIndex)

		var ie *sortedlist.IndexError
		assert.ErrorAs(t, err, &ie)
		assert.Equal(t, 0, l.TotalAdded())
	})
}

func TestCounted_AddCountsAttemptsNotSuccesses(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		r := rand.New(rand.NewSource(7))
		successes := 0
		for i := 0; i < 500; i++ {
			if l.Add(r.Intn(50)) {
				successes++
			}
		}
		assert.Equal(t, 500, l.TotalAdded())
		assert.Equal(t, successes, l.Size())
		assert.LessOrEqual(t, l.Size(), 50)
	})
}

// TestVariants_Equivalent drives both variants with the same random operation
// stream and requires identical observable state after every step.
func TestVariants_Equivalent(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := rand.New(rand.NewSource(seed))
		d := NewDelegation()
		e := NewInheritance()

		for step := 0; step < 200; step++ {
			n := r.Intn(30) - 10
			switch r.Intn(6) {
			case 0, 1:
				require.Equal(t, d.Add(n), e.Add(n))
			case 2:
				arg := randomInts(r)
				require.Equal(t, d.AddAll(arg), e.AddAll(arg))
			case 3:
				require.Equal(t, d.Remove(n), e.Remove(n))
			case 4:
				arg := randomInts(r)
				require.Equal(t, d.RemoveAll(arg), e.RemoveAll(arg))
			case 5:
				dv, derr := d.Get(n)
				ev, eerr := e.Get(n)
				require.Equal(t, dv, ev)
				require.Equal(t, derr, eerr)
			}
			require.Equal(t, d.Size(), e.Size(), "seed %d step %d", seed, step)
			require.Equal(t, sortedlist.Values(d), sortedlist.Values(e), "seed %d step %d", seed, step)
			require.Equal(t, d.TotalAdded(), e.TotalAdded(), "seed %d step %d", seed, step)
		}
	}
}

func randomInts(r *rand.Rand) *sortedlist.IntSlice {
	n := r.Intn(6)
	out := make([]int, n)
	for i := range out {
		out[i] = r.Intn(30) - 10
	}
	return sortedlist.Ints(out...)
}

// TestInheritance_UndercountsWithoutDispatch documents why NewInheritance
// wires the dispatch hook: an embedded list built with sortedlist.New routes
// AddAll through its own Add and the override never sees bulk elements.
func TestInheritance_UndercountsWithoutDispatch(t *testing.T) {
	l := &InheritanceList{SortedIntList: sortedlist.New()}
	l.AddAll(sortedlist.Ints(3, 1, 2))
	assert.Equal(t, 3, l.Size())
	assert.Equal(t, 0, l.TotalAdded())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Inheritance ")
	require.NoError(t, err)
	assert.Equal(t, Inheritance, v)

	v, err = ParseVariant("delegation")
	require.NoError(t, err)
	assert.Equal(t, Delegation, v)

	_, err = ParseVariant("composition")
	assert.Error(t, err)
}

func TestNew_UnknownVariant(t *testing.T) {
	_, err := New("bogus")
	assert.Error(t, err)
}

func TestRestore(t *testing.T) {
	for _, v := range Variants {
		v := v
		t.Run(string(v), func(t *testing.T) {
			l, err := Restore(v, []int{3, 1, 2}, 7)
			require.NoError(t, err)
			assert.Equal(t, []int{1, 2, 3}, sortedlist.Values(l))
			assert.Equal(t, 7, l.TotalAdded())

			l.Add(4)
			assert.Equal(t, 8, l.TotalAdded())
		})
	}
}

func TestRestore_RejectsInconsistentTally(t *testing.T) {
	_, err := Restore(Delegation, []int{1, 2}, 1)
	assert.Error(t, err)

	_, err = Restore(Inheritance, nil, -1)
	assert.Error(t, err)

	_, err = Restore("bogus", nil, 0)
	assert.Error(t, err)
}

// shortList reports size elements but fails Get from index failAt on.
type shortList struct {
	sortedlist.IntSlice
	size   int
	failAt int
}

func (s *shortList) Size() int { return s.size }

func (s *shortList) Get(index int) (int, error) {
	if index >= s.failAt {
		return 0, &sortedlist.IndexError{Index: index, Size: s.failAt}
	}
	return s.IntSlice.Get(index)
}

// TestCounted_AddAllCountsReadablePrefix pins the behaviour for an argument
// whose Get fails before Size(): both variants count and insert only the
// elements that could be read.
func TestCounted_AddAllCountsReadablePrefix(t *testing.T) {
	forEachVariant(t, func(t *testing.T, l Counted) {
		arg := &shortList{IntSlice: sortedlist.IntSlice{3, 1, 2}, size: 3, failAt: 2}
		assert.Equal(t, []int{3, 1}, sortedlist.Values(arg))

		assert.True(t, l.AddAll(arg))
		assert.Equal(t, []int{1, 3}, sortedlist.Values(l))
		assert.Equal(t, 2, l.TotalAdded())
	})
}
