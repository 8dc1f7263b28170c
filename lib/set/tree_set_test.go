package set

import (
	randv2 "math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/tree"
)

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet[int]()
	require.NoError(t, s.InsertRange(5, 1, 4, 1, 3))
	require.Equal(t, []int{1, 3, 4, 5}, s.Keys())

	_, ok, err := s.Insert(3)
	require.NoError(t, err)
	require.False(t, ok)
	it, err := s.InsertHint(s.Find(3), 2)
	require.NoError(t, err)
	require.Equal(t, 2, it.Value())
	_, ok, err = s.Emplace(func(p *int) error {
		*p = 6
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.Keys())

	type testcase struct {
		name       string
		key        int
		contains   bool
		lowerBound int
	}
	testcases := []testcase{
		{name: "present", key: 4, contains: true, lowerBound: 4},
		{name: "below all", key: 0, lowerBound: 1},
		{name: "above all", key: 7},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.contains, s.Contains(tc.key))
			lb := s.LowerBound(tc.key)
			if tc.lowerBound == 0 {
				require.True(tt, lb.IsEnd())
			} else {
				require.Equal(tt, tc.lowerBound, lb.Value())
			}
			first, last := s.EqualRange(tc.key)
			if tc.contains {
				require.Equal(tt, int64(1), s.Count(tc.key))
				require.Equal(tt, int64(1), tree.Distance[int](first, last))
			} else {
				require.Equal(tt, int64(0), s.Count(tc.key))
				require.Equal(tt, first, last)
			}
		})
	}

	require.Equal(t, int64(1), s.EraseKey(1))
	require.Equal(t, int64(0), s.EraseKey(1))
	next := s.Erase(s.Begin())
	require.Equal(t, 3, next.Value())
	s.EraseRange(s.UpperBound(4), s.End())
	require.Equal(t, []int{3, 4}, s.Keys())

	c, err := s.Clone()
	require.NoError(t, err)
	_, _, _ = c.Insert(10)
	require.Equal(t, []int{3, 4}, s.Keys())
	require.True(t, Less[int](s, c))

	s.Swap(c)
	require.Equal(t, []int{3, 4, 10}, s.Keys())
	require.Equal(t, []int{3, 4}, c.Keys())
	s.Clear()
	require.True(t, s.Empty())
	s.Release()
}

func TestOrderedSet_DescAndComparator(t *testing.T) {
	s := NewOrderedSet[string](tree.WithRBTreeDesc[string, string]())
	require.NoError(t, s.InsertRange("a", "c", "b"))
	require.Equal(t, []string{"c", "b", "a"}, s.Keys())

	mod := infra.Comparator[int](func(i, j int) int64 {
		return int64(i%10 - j%10)
	})
	ms := NewOrderedSetWithComparator[int](mod)
	require.NoError(t, ms.InsertRange(11, 21, 2, 13))
	require.Equal(t, []int{11, 2, 13}, ms.Keys())
	require.True(t, ms.Contains(31))

	mms := NewOrderedMultiSetWithComparator[int](mod)
	require.NoError(t, mms.InsertRange(11, 21, 2, 13))
	require.Equal(t, []int{11, 21, 2, 13}, mms.Keys())
	require.Equal(t, int64(2), mms.Count(1))
}

func TestOrderedSet_LengthLimit(t *testing.T) {
	s := NewOrderedSet[int](tree.WithRBTreeMaxSize[int, int](3))
	require.ErrorIs(t, s.InsertRange(1, 2, 3, 4), tree.ErrLength)
	require.True(t, s.Empty())

	n := NewOrderedSet[int](tree.WithRBTreeNodeLimit[int, int](2))
	require.ErrorIs(t, n.InsertRange(1, 2, 3), alloc.ErrOutOfMemory)
	require.True(t, n.Empty())
	require.NoError(t, n.InsertRange(1, 2))
}

func TestOrderedMultiSet(t *testing.T) {
	s := NewOrderedMultiSet[int]()
	ref := make([]int, 0, 512)
	for i := 0; i < 512; i++ {
		key := randv2.IntN(64)
		_, err := s.Insert(key)
		require.NoError(t, err)
		ref = append(ref, key)
	}
	sort.Ints(ref)
	require.Equal(t, ref, s.Keys())
	require.NoError(t, tree.Validate[int, int](s.rbtree()))

	key := ref[len(ref)/2]
	cnt := int64(0)
	for _, k := range ref {
		if k == key {
			cnt++
		}
	}
	require.Equal(t, cnt, s.Count(key))
	first, last := s.EqualRange(key)
	require.Equal(t, cnt, tree.Distance[int](first, last))
	require.Equal(t, cnt, s.EraseKey(key))
	require.False(t, s.Contains(key))
	require.Equal(t, int64(len(ref))-cnt, s.Len())

	_, err := s.InsertHint(s.End(), 1000)
	require.NoError(t, err)
	_, err = s.Emplace(func(p *int) error {
		*p = 1000
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), s.Count(1000))

	c, err := s.Clone()
	require.NoError(t, err)
	require.True(t, Equal[int](s, c))
	require.Equal(t, 0, Compare[int](s, c))
	require.NoError(t, c.InsertRange(-1, -1))
	require.False(t, Equal[int](s, c))
	require.Equal(t, 1, Compare[int](s, c))

	other := NewOrderedMultiSet[int]()
	other.Swap(c)
	require.True(t, c.Empty())
	require.Equal(t, int64(2), other.Count(-1))
}
