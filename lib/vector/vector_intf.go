package vector

import (
	"errors"

	"github.com/benz9527/xstl/lib/alloc"
)

var (
	ErrOutOfRange = errors.New("[vector] index out of range")
	ErrLength     = errors.New("[vector] length error")
)

// Vector is a contiguous growable array. The slots beyond Len are raw
// memory of its allocator, the values below Len are constructed.
//
// A failed operation leaves the vector as it was, except a growth which
// fails in the middle of moving values with a Mover: the values moved
// so far are left in their moved-from state.
type Vector[T any] interface {
	Len() int
	Cap() int
	Empty() bool
	MaxSize() int

	// At fails with ErrOutOfRange.
	At(i int) (T, error)
	// Front and Back panic on an empty vector.
	Front() T
	Back() T

	PushBack(v T) error
	EmplaceBack(ctor alloc.Constructor[T]) error
	// PopBack panics on an empty vector.
	PopBack()
	// Insert places vals before pos, 0 <= pos <= Len.
	Insert(pos int, vals ...T) error
	Erase(pos int) error
	EraseRange(first, last int) error
	// Resize fills the new tail with copies of v.
	Resize(n int, v T) error
	Reserve(n int) error
	Assign(vals ...T) error
	Clear()
	ShrinkToFit() error

	Swap(other Vector[T])
	Clone() (Vector[T], error)
	// Slice shares the constructed values. It is invalidated by the next
	// mutation.
	Slice() []T
	Release()
}
