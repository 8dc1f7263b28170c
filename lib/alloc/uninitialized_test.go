package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTrackedRange(counter *lifecycle, n int, failAt int) []tracked {
	src := make([]tracked, n)
	for i := range src {
		src[i] = tracked{id: i + 1, counter: counter, failCopy: i == failAt}
	}
	return src
}

func TestUninitializedCopy(t *testing.T) {
	testcases := []struct {
		name        string
		n           int
		dstLen      int
		failAt      int
		expectedN   int
		expectedErr error
		cloned      int
		destroyed   int
	}{
		{
			name:      "all constructed",
			n:         5,
			dstLen:    5,
			failAt:    -1,
			expectedN: 5,
			cloned:    5,
		},
		{
			name:        "rollback prefix",
			n:           5,
			dstLen:      5,
			failAt:      3,
			expectedErr: ErrConstruct,
			cloned:      3,
			destroyed:   3,
		},
		{
			name:        "first fails",
			n:           5,
			dstLen:      5,
			failAt:      0,
			expectedErr: ErrConstruct,
		},
		{
			name:        "short destination",
			n:           5,
			dstLen:      4,
			failAt:      -1,
			expectedErr: ErrLength,
		},
		{
			name:   "empty",
			failAt: -1,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			counter := &lifecycle{}
			src := newTrackedRange(counter, tc.n, tc.failAt)
			dst := make([]tracked, tc.dstLen)
			n, err := UninitializedCopy(src, dst)
			require.Equal(tt, tc.expectedN, n)
			require.Equal(tt, tc.cloned, counter.cloned)
			require.Equal(tt, tc.destroyed, counter.destroyed)
			if tc.expectedErr != nil {
				require.ErrorIs(tt, err, tc.expectedErr)
				for i := range dst {
					require.Equal(tt, tracked{}, dst[i])
				}
				return
			}
			require.NoError(tt, err)
			for i := 0; i < n; i++ {
				require.Equal(tt, src[i].id, dst[i].id)
			}
		})
	}
}

func TestUninitializedCopyN(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	dst := make([]int, 3)
	n, err := UninitializedCopyN(src, 3, dst)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []int{1, 2, 3}, dst)

	_, err = UninitializedCopyN(src, 6, make([]int, 6))
	require.ErrorIs(t, err, ErrLength)
	_, err = UninitializedCopyN(src, -1, dst)
	require.ErrorIs(t, err, ErrLength)

	counter := &lifecycle{}
	tsrc := newTrackedRange(counter, 4, 2)
	tdst := make([]tracked, 4)
	n, err = UninitializedCopyN(tsrc, 2, tdst)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, counter.cloned)
}

func TestUninitializedFill(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 16, 33} {
		dst := make([]int, size)
		require.NoError(t, UninitializedFill(dst, 42))
		for i := range dst {
			require.Equal(t, 42, dst[i])
		}
	}

	dst := make([]plain, 10)
	n, err := UninitializedFillN(dst, 6, plain{a: 1, b: 2})
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, plain{a: 1, b: 2}, dst[5])
	require.Equal(t, plain{}, dst[6])

	_, err = UninitializedFillN(dst, 11, plain{})
	require.ErrorIs(t, err, ErrLength)

	counter := &lifecycle{}
	tdst := make([]tracked, 4)
	require.NoError(t, UninitializedFill(tdst, tracked{id: 3, counter: counter}))
	require.Equal(t, 4, counter.cloned)

	counter = &lifecycle{}
	err = UninitializedFill(tdst, tracked{id: 3, counter: counter, failCopy: true})
	require.ErrorIs(t, err, ErrConstruct)
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, 0, counter.destroyed)
}

func TestUninitializedMove(t *testing.T) {
	src := []movable{{buf: []int{1}}, {buf: []int{2, 2}}, {buf: []int{3, 3, 3}}}
	dst := make([]movable, 3)
	n, err := UninitializedMove(src, dst)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	for i := range src {
		require.Nil(t, src[i].buf)
		require.Len(t, dst[i].buf, i+1)
	}

	ints := []int{4, 5, 6}
	idst := make([]int, 2)
	n, err = UninitializedMoveN(ints, 2, idst)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []int{4, 5}, idst)

	// Without a Mover the move falls back to the copy constructor.
	counter := &lifecycle{}
	tsrc := newTrackedRange(counter, 3, 1)
	tdst := make([]tracked, 3)
	_, err = UninitializedMove(tsrc, tdst)
	require.ErrorIs(t, err, ErrConstruct)
	require.Equal(t, 1, counter.cloned)
	require.Equal(t, 1, counter.destroyed)
	require.Equal(t, tracked{}, tdst[0])

	_, err = UninitializedMove(tsrc, make([]tracked, 2))
	require.ErrorIs(t, err, ErrLength)
}
