package kv

import (
	"errors"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/tree"
)

var ErrOutOfRange = errors.New("[kv] key out of range")

// Ordered is the part shared by the tree backed maps.
// The iterators walk the pairs in ascending key order.
type Ordered[K any, V any] interface {
	Len() int64
	Empty() bool
	MaxSize() int64
	KeyCompare(i, j K) int64

	Begin() tree.Iterator[Pair[K, V]]
	End() tree.Iterator[Pair[K, V]]
	Find(key K) tree.Iterator[Pair[K, V]]
	Contains(key K) bool
	Count(key K) int64
	LowerBound(key K) tree.Iterator[Pair[K, V]]
	UpperBound(key K) tree.Iterator[Pair[K, V]]
	EqualRange(key K) (tree.Iterator[Pair[K, V]], tree.Iterator[Pair[K, V]])

	// Erase returns the iterator following pos.
	Erase(pos tree.Iterator[Pair[K, V]]) tree.Iterator[Pair[K, V]]
	EraseKey(key K) int64
	EraseRange(first, last tree.Iterator[Pair[K, V]]) tree.Iterator[Pair[K, V]]
	Clear()
	Foreach(action func(idx int64, key K, val V) bool)
	Release()

	rbtree() tree.RBTree[K, Pair[K, V]]
}

// OrderedMap holds at most one value per key.
type OrderedMap[K any, V any] interface {
	Ordered[K, V]
	// Insert keeps the present value and returns false if key exists.
	Insert(key K, val V) (tree.Iterator[Pair[K, V]], bool, error)
	InsertHint(hint tree.Iterator[Pair[K, V]], key K, val V) (tree.Iterator[Pair[K, V]], error)
	// InsertOrAssign replaces the present value. It reports true if a new
	// pair was inserted.
	InsertOrAssign(key K, val V) (tree.Iterator[Pair[K, V]], bool, error)
	Emplace(ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], bool, error)
	EmplaceHint(hint tree.Iterator[Pair[K, V]], ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error)
	// At fails with ErrOutOfRange if key is absent.
	At(key K) (V, error)
	// Index inserts the zero value if key is absent.
	Index(key K) (*V, error)
	Swap(other OrderedMap[K, V])
	Clone() (OrderedMap[K, V], error)
}

// OrderedMultiMap holds any number of values per key, in insertion order
// among equal keys.
type OrderedMultiMap[K any, V any] interface {
	Ordered[K, V]
	Insert(key K, val V) (tree.Iterator[Pair[K, V]], error)
	InsertHint(hint tree.Iterator[Pair[K, V]], key K, val V) (tree.Iterator[Pair[K, V]], error)
	Emplace(ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error)
	EmplaceHint(hint tree.Iterator[Pair[K, V]], ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error)
	Swap(other OrderedMultiMap[K, V])
	Clone() (OrderedMultiMap[K, V], error)
}
