package tree

import (
	"errors"

	"github.com/benz9527/xstl/lib/alloc"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "Unknown"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

var ErrLength = errors.New("[rbtree] length error")

type RBNode[V any] interface {
	Val() V
	Color() RBColor
	Left() RBNode[V]
	Right() RBNode[V]
	Parent() RBNode[V]
}

// RBTree stores values ordered by the key extracted from each value.
// Unique and multi insertion share one tree, the container built on top
// decides which one to use.
//
// Insertion never invalidates iterators. Erasure invalidates only the
// iterators to the erased values.
type RBTree[K any, V any] interface {
	Len() int64
	Empty() bool
	MaxSize() int64
	Root() RBNode[V]
	KeyOf(v V) K
	KeyCompare(i, j K) int64

	Begin() Iterator[V]
	End() Iterator[V]

	// InsertUnique returns the existing position and false if an equal
	// key is present.
	InsertUnique(v V) (Iterator[V], bool, error)
	// InsertMulti places v after the values with an equal key.
	InsertMulti(v V) (Iterator[V], error)
	// InsertUniqueHint and InsertMultiHint try to attach right before
	// hint first and search from the root only if the hint is wrong.
	InsertUniqueHint(hint Iterator[V], v V) (Iterator[V], error)
	InsertMultiHint(hint Iterator[V], v V) (Iterator[V], error)
	// InsertUniqueRange and InsertMultiRange insert all values or none.
	InsertUniqueRange(vals ...V) error
	InsertMultiRange(vals ...V) error
	// Emplace builds the value in the node memory. The unique variants
	// destroy the built value if its key is already present.
	EmplaceUnique(ctor alloc.Constructor[V]) (Iterator[V], bool, error)
	EmplaceMulti(ctor alloc.Constructor[V]) (Iterator[V], error)
	EmplaceUniqueHint(hint Iterator[V], ctor alloc.Constructor[V]) (Iterator[V], error)
	EmplaceMultiHint(hint Iterator[V], ctor alloc.Constructor[V]) (Iterator[V], error)

	// Erase returns the iterator following pos.
	Erase(pos Iterator[V]) Iterator[V]
	EraseRange(first, last Iterator[V]) Iterator[V]
	EraseUnique(key K) int64
	EraseMulti(key K) int64
	Clear()

	Find(key K) Iterator[V]
	CountUnique(key K) int64
	CountMulti(key K) int64
	LowerBound(key K) Iterator[V]
	UpperBound(key K) Iterator[V]
	EqualRangeUnique(key K) (Iterator[V], Iterator[V])
	EqualRangeMulti(key K) (Iterator[V], Iterator[V])

	// Swap exchanges the contents in O(1). Iterators follow their values.
	Swap(other RBTree[K, V])
	// Clone deep copies the tree, shape and colors included.
	Clone() (RBTree[K, V], error)
	// CopyFrom replaces the contents with a deep copy of src. The tree is
	// unchanged if the copy fails.
	CopyFrom(src RBTree[K, V]) error
	Foreach(action func(idx int64, color RBColor, v V) bool)
	Release()
}
