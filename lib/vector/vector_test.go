package vector

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/xlog"
)

var errBoom = errors.New("boom")

// resource counts its live copies.
type resource struct {
	id   int
	fail bool
	live *int
}

func (r *resource) CloneInto(dst *resource) error {
	if r.fail {
		return errBoom
	}
	*dst = *r
	if dst.live != nil {
		*dst.live++
	}
	return nil
}

func (r *resource) Destruct() {
	if r.live != nil {
		*r.live--
	}
}

// movable hands its buffer over on move.
type movable struct {
	buf   []int
	moved *int
}

func (m *movable) MoveInto(dst *movable) error {
	dst.buf, dst.moved = m.buf, m.moved
	m.buf = nil
	*dst.moved++
	return nil
}

func ids(vec Vector[resource]) []int {
	res := make([]int, 0, vec.Len())
	for _, r := range vec.Slice() {
		res = append(res, r.id)
	}
	return res
}

func TestVector_PushBackAndGrowth(t *testing.T) {
	vec := NewVector[int]()
	require.True(t, vec.Empty())
	require.Equal(t, 0, vec.Cap())

	for i := 0; i < 100; i++ {
		require.NoError(t, vec.PushBack(i))
	}
	require.Equal(t, 100, vec.Len())
	require.Equal(t, 128, vec.Cap())
	require.Equal(t, 0, vec.Front())
	require.Equal(t, 99, vec.Back())
	for i, v := range vec.Slice() {
		require.Equal(t, i, v)
	}
	v, err := vec.At(42)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	type testcase struct {
		name string
		idx  int
	}
	testcases := []testcase{
		{name: "negative", idx: -1},
		{name: "len", idx: 100},
		{name: "beyond", idx: 1000},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			_, err := vec.At(tc.idx)
			require.ErrorIs(tt, err, ErrOutOfRange)
		})
	}

	require.NoError(t, vec.EmplaceBack(func(p *int) error {
		*p = 100
		return nil
	}))
	require.Equal(t, 100, vec.Back())
	vec.PopBack()
	vec.PopBack()
	require.Equal(t, 98, vec.Back())
	require.Equal(t, 99, vec.Len())
}

func TestVector_InsertAndErase(t *testing.T) {
	vec, err := NewVectorFrom[int]([]int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 16, vec.Cap())

	require.NoError(t, vec.Insert(2, 10, 11))
	require.Equal(t, []int{0, 1, 10, 11, 2, 3}, vec.Slice())
	require.NoError(t, vec.Insert(0, -1))
	require.NoError(t, vec.Insert(vec.Len(), 4))
	require.Equal(t, []int{-1, 0, 1, 10, 11, 2, 3, 4}, vec.Slice())
	require.NoError(t, vec.Insert(3))
	require.ErrorIs(t, vec.Insert(-1, 0), ErrOutOfRange)
	require.ErrorIs(t, vec.Insert(9, 0), ErrOutOfRange)

	// Beyond the capacity.
	more := make([]int, 10)
	for i := range more {
		more[i] = 100 + i
	}
	require.NoError(t, vec.Insert(4, more...))
	require.Equal(t, 18, vec.Len())
	require.Equal(t, 32, vec.Cap())
	require.Equal(t, []int{-1, 0, 1, 10, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 11, 2, 3, 4}, vec.Slice())

	require.NoError(t, vec.EraseRange(4, 14))
	require.Equal(t, []int{-1, 0, 1, 10, 11, 2, 3, 4}, vec.Slice())
	require.NoError(t, vec.Erase(0))
	require.NoError(t, vec.Erase(vec.Len()-1))
	require.Equal(t, []int{0, 1, 10, 11, 2, 3}, vec.Slice())
	require.NoError(t, vec.EraseRange(2, 2))
	require.ErrorIs(t, vec.Erase(6), ErrOutOfRange)
	require.ErrorIs(t, vec.EraseRange(3, 2), ErrOutOfRange)
	require.ErrorIs(t, vec.EraseRange(0, 7), ErrOutOfRange)
	// The erased tail slots are raw again.
	impl := vec.(*vector[int])
	require.Equal(t, make([]int, impl.Cap()-impl.Len()), impl.block[impl.Len():])
}

func TestVector_ResizeReserveShrink(t *testing.T) {
	vec := NewVector[string]()
	require.NoError(t, vec.Resize(3, "a"))
	require.Equal(t, []string{"a", "a", "a"}, vec.Slice())
	require.NoError(t, vec.Resize(20, "b"))
	require.Equal(t, 20, vec.Len())
	require.Equal(t, 32, vec.Cap())
	require.Equal(t, "b", vec.Back())
	require.NoError(t, vec.Resize(2, "c"))
	require.Equal(t, []string{"a", "a"}, vec.Slice())
	require.ErrorIs(t, vec.Resize(-1, ""), ErrLength)

	require.NoError(t, vec.Reserve(10))
	require.Equal(t, 32, vec.Cap())
	require.NoError(t, vec.Reserve(100))
	require.Equal(t, 100, vec.Cap())
	require.Equal(t, []string{"a", "a"}, vec.Slice())

	require.NoError(t, vec.ShrinkToFit())
	require.Equal(t, 2, vec.Cap())
	vec.Clear()
	require.NoError(t, vec.ShrinkToFit())
	require.Equal(t, 0, vec.Cap())
	require.True(t, vec.Empty())
}

func TestVector_AssignCloneSwap(t *testing.T) {
	a := NewVector[int]()
	require.NoError(t, a.Assign(1, 2, 3))
	b, err := a.Clone()
	require.NoError(t, err)
	require.NoError(t, b.PushBack(4))
	require.Equal(t, []int{1, 2, 3}, a.Slice())
	require.Equal(t, []int{1, 2, 3, 4}, b.Slice())

	a.Swap(b)
	require.Equal(t, []int{1, 2, 3, 4}, a.Slice())
	require.Equal(t, []int{1, 2, 3}, b.Slice())

	require.NoError(t, a.Assign())
	require.True(t, a.Empty())

	empty, err := NewVector[int]().Clone()
	require.NoError(t, err)
	require.True(t, empty.Empty())
	b.Release()
	require.Equal(t, 0, b.Len())
}

func TestVector_ValueLifecycle(t *testing.T) {
	live := 0
	mk := func(id int) resource {
		return resource{id: id, live: &live}
	}
	vec := NewVector[resource]()
	for i := 0; i < 20; i++ {
		require.NoError(t, vec.PushBack(mk(i)))
	}
	require.Equal(t, 20, live)

	type testcase struct {
		name string
		run  func() error
	}
	testcases := []testcase{
		{
			name: "push back failure",
			run: func() error {
				return vec.PushBack(resource{id: 99, fail: true})
			},
		},
		{
			name: "insert failure within capacity",
			run: func() error {
				return vec.Insert(1, mk(98), resource{id: 99, fail: true})
			},
		},
		{
			name: "insert failure beyond capacity",
			run: func() error {
				vals := make([]resource, 0, 20)
				for i := 0; i < 19; i++ {
					vals = append(vals, mk(100+i))
				}
				return vec.Insert(1, append(vals, resource{id: 99, fail: true})...)
			},
		},
		{
			name: "assign failure",
			run: func() error {
				return vec.Assign(mk(1), resource{id: 99, fail: true})
			},
		},
		{
			name: "resize failure",
			run: func() error {
				return vec.Resize(40, resource{id: 99, fail: true})
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			before := ids(vec)
			err := tc.run()
			require.ErrorIs(tt, err, alloc.ErrConstruct)
			require.ErrorIs(tt, err, errBoom)
			require.Equal(tt, before, ids(vec))
			require.Equal(tt, vec.Len(), live)
		})
	}

	require.NoError(t, vec.Insert(0, mk(-1)))
	require.NoError(t, vec.Reserve(64))
	require.NoError(t, vec.Resize(30, mk(7)))
	require.Equal(t, 30, live)
	require.NoError(t, vec.EraseRange(0, 10))
	vec.PopBack()
	require.Equal(t, 19, live)

	c, err := vec.Clone()
	require.NoError(t, err)
	require.Equal(t, 38, live)
	c.Clear()
	require.Equal(t, 19, live)
	require.NoError(t, vec.ShrinkToFit())
	require.Equal(t, 19, live)
	vec.Release()
	require.Equal(t, 0, live)
}

func TestVector_GrowthMovesValues(t *testing.T) {
	moved := 0
	vec := NewVector[movable]()
	for i := 0; i < 17; i++ {
		require.NoError(t, vec.PushBack(movable{buf: []int{i}, moved: &moved}))
	}
	require.Equal(t, 16, moved)
	for i, m := range vec.Slice() {
		require.Equal(t, []int{i}, m.buf)
	}
}

func TestVector_Limit(t *testing.T) {
	buf := &bytes.Buffer{}
	vec := NewVector[int](
		WithVectorName[int]("limited"),
		WithVectorLimit[int](20),
		WithVectorLogger[int](xlog.NewXLogger(xlog.WithXLoggerWriter(buf), xlog.WithXLoggerLevel(xlog.LogLevelDebug))),
	)
	for i := 0; i < 16; i++ {
		require.NoError(t, vec.PushBack(i))
	}
	require.Equal(t, 20, vec.MaxSize())
	err := vec.PushBack(16)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Equal(t, 16, vec.Len())
	require.Equal(t, 16, vec.Cap())
	require.Contains(t, buf.String(), "[alloc] allocation failed")
	require.Contains(t, buf.String(), `"allocator":"limited"`)

	require.ErrorIs(t, vec.Reserve(21), ErrLength)
	require.Contains(t, buf.String(), "[vector] length violation")
	require.ErrorIs(t, vec.Insert(0, make([]int, 10)...), ErrLength)
	require.Equal(t, 16, vec.Len())
}

func TestVector_HugeRequest(t *testing.T) {
	vec := NewVector[int64]()
	require.NoError(t, vec.PushBack(7))
	slots := vec.(*vector[int64]).slots
	require.Equal(t, int64(16), slots.Live())

	type testcase struct {
		name string
		run  func() error
	}
	testcases := []testcase{
		{name: "reserve", run: func() error { return vec.Reserve(1 << 50) }},
		{name: "resize", run: func() error { return vec.Resize(1<<50, 1) }},
		{name: "reserve max int", run: func() error { return vec.Reserve(math.MaxInt) }},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			var err error
			require.NotPanics(tt, func() {
				err = tc.run()
			})
			require.ErrorIs(tt, err, ErrLength)
			require.Equal(tt, int64(16), slots.Live())
			require.Equal(tt, []int64{7}, vec.Slice())
		})
	}
}

func TestVector_Panics(t *testing.T) {
	vec := NewVector[int]()
	require.PanicsWithValue(t, "[vector] front of empty vector", func() {
		vec.Front()
	})
	require.PanicsWithValue(t, "[vector] back of empty vector", func() {
		vec.Back()
	})
	require.PanicsWithValue(t, "[vector] pop back of empty vector", func() {
		vec.PopBack()
	})
}

func BenchmarkVector_PushBack(b *testing.B) {
	vec := NewVector[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = vec.PushBack(i)
	}
	b.ReportAllocs()
}
