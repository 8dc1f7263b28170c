package set

import (
	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/tree"
)

// Ordered is the part shared by the tree backed sets.
type Ordered[K any] interface {
	Len() int64
	Empty() bool
	MaxSize() int64
	KeyCompare(i, j K) int64

	Begin() tree.Iterator[K]
	End() tree.Iterator[K]
	Find(key K) tree.Iterator[K]
	Contains(key K) bool
	Count(key K) int64
	LowerBound(key K) tree.Iterator[K]
	UpperBound(key K) tree.Iterator[K]
	EqualRange(key K) (tree.Iterator[K], tree.Iterator[K])

	Erase(pos tree.Iterator[K]) tree.Iterator[K]
	EraseKey(key K) int64
	EraseRange(first, last tree.Iterator[K]) tree.Iterator[K]
	Clear()
	Keys() []K
	Foreach(action func(idx int64, key K) bool)
	Release()

	rbtree() tree.RBTree[K, K]
}

type OrderedSet[K any] interface {
	Ordered[K]
	Insert(key K) (tree.Iterator[K], bool, error)
	InsertHint(hint tree.Iterator[K], key K) (tree.Iterator[K], error)
	// InsertRange inserts all absent keys or none.
	InsertRange(keys ...K) error
	Emplace(ctor alloc.Constructor[K]) (tree.Iterator[K], bool, error)
	Swap(other OrderedSet[K])
	Clone() (OrderedSet[K], error)
}

type OrderedMultiSet[K any] interface {
	Ordered[K]
	Insert(key K) (tree.Iterator[K], error)
	InsertHint(hint tree.Iterator[K], key K) (tree.Iterator[K], error)
	InsertRange(keys ...K) error
	Emplace(ctor alloc.Constructor[K]) (tree.Iterator[K], error)
	Swap(other OrderedMultiSet[K])
	Clone() (OrderedMultiSet[K], error)
}
