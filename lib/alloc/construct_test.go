package alloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errCloneFailed = errors.New("clone failed")

type lifecycle struct {
	cloned    int
	moved     int
	destroyed int
}

// tracked owns a resource, copies are counted and may be told to fail.
type tracked struct {
	id       int
	failCopy bool
	counter  *lifecycle
}

func (t *tracked) Destruct() {
	if t.counter != nil {
		t.counter.destroyed++
	}
}

func (t *tracked) CloneInto(dst *tracked) error {
	if t.failCopy {
		return errCloneFailed
	}
	*dst = *t
	t.counter.cloned++
	return nil
}

// movable transfers its buffer and leaves the source empty.
type movable struct {
	buf []int
}

func (m *movable) MoveInto(dst *movable) error {
	dst.buf = m.buf
	m.buf = nil
	return nil
}

type plain struct {
	a, b int
}

func TestTraits(t *testing.T) {
	testcases := []struct {
		name            string
		trivialDestruct bool
		trivialCopy     bool
		trivialMove     bool
		check           func() (bool, bool, bool)
	}{
		{
			name:            "int",
			trivialDestruct: true,
			trivialCopy:     true,
			trivialMove:     true,
			check: func() (bool, bool, bool) {
				return IsTriviallyDestructible[int](), IsTriviallyCopyable[int](), IsTriviallyMovable[int]()
			},
		},
		{
			name:            "plain struct",
			trivialDestruct: true,
			trivialCopy:     true,
			trivialMove:     true,
			check: func() (bool, bool, bool) {
				return IsTriviallyDestructible[plain](), IsTriviallyCopyable[plain](), IsTriviallyMovable[plain]()
			},
		},
		{
			name:            "tracked",
			trivialDestruct: false,
			trivialCopy:     false,
			trivialMove:     false,
			check: func() (bool, bool, bool) {
				return IsTriviallyDestructible[tracked](), IsTriviallyCopyable[tracked](), IsTriviallyMovable[tracked]()
			},
		},
		{
			name:            "movable",
			trivialDestruct: true,
			trivialCopy:     true,
			trivialMove:     false,
			check: func() (bool, bool, bool) {
				return IsTriviallyDestructible[movable](), IsTriviallyCopyable[movable](), IsTriviallyMovable[movable]()
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			d, c, m := tc.check()
			require.Equal(tt, tc.trivialDestruct, d)
			require.Equal(tt, tc.trivialCopy, c)
			require.Equal(tt, tc.trivialMove, m)
		})
	}
}

func TestConstructAndDestroy(t *testing.T) {
	counter := &lifecycle{}
	var slot tracked

	require.NoError(t, Construct(&slot))
	require.Equal(t, tracked{}, slot)

	src := tracked{id: 7, counter: counter}
	require.NoError(t, ConstructValue(&slot, src))
	require.Equal(t, 7, slot.id)
	require.Equal(t, 1, counter.cloned)

	Destroy(&slot)
	require.Equal(t, 1, counter.destroyed)
	require.Equal(t, tracked{}, slot)

	src.failCopy = true
	err := ConstructValue(&slot, src)
	require.ErrorIs(t, err, ErrConstruct)
	require.ErrorIs(t, err, errCloneFailed)
	require.Equal(t, tracked{}, slot)

	err = ConstructWith(&slot, func(p *tracked) error {
		p.id = 9
		p.counter = counter
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 9, slot.id)

	err = ConstructWith(&slot, func(p *tracked) error {
		p.id = 10
		return errCloneFailed
	})
	require.ErrorIs(t, err, ErrConstruct)
	require.Equal(t, tracked{}, slot)

	require.NoError(t, ConstructWith[tracked](&slot, nil))
	require.Equal(t, tracked{}, slot)

	Destroy[tracked](nil)
}

func TestDestroyRange(t *testing.T) {
	counter := &lifecycle{}
	block := []tracked{{id: 1, counter: counter}, {id: 2, counter: counter}, {id: 3, counter: counter}}
	DestroyRange(block)
	require.Equal(t, 3, counter.destroyed)
	for _, v := range block {
		require.Equal(t, tracked{}, v)
	}

	ints := []int{1, 2, 3}
	DestroyRange(ints)
	require.Equal(t, []int{0, 0, 0}, ints)

	DestroyRange[int](nil)
}
