package set

import (
	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/tree"
)

var (
	_ OrderedSet[int]      = (*treeSet[int])(nil)
	_ OrderedMultiSet[int] = (*treeMultiSet[int])(nil)
)

func identity[K any](key K) K {
	return key
}

type treeBase[K any] struct {
	rbt   tree.RBTree[K, K]
	multi bool
}

func (b *treeBase[K]) rbtree() tree.RBTree[K, K] { return b.rbt }
func (b *treeBase[K]) Len() int64               { return b.rbt.Len() }
func (b *treeBase[K]) Empty() bool              { return b.rbt.Empty() }
func (b *treeBase[K]) MaxSize() int64           { return b.rbt.MaxSize() }
func (b *treeBase[K]) KeyCompare(i, j K) int64  { return b.rbt.KeyCompare(i, j) }
func (b *treeBase[K]) Begin() tree.Iterator[K]  { return b.rbt.Begin() }
func (b *treeBase[K]) End() tree.Iterator[K]    { return b.rbt.End() }
func (b *treeBase[K]) Clear()                   { b.rbt.Clear() }
func (b *treeBase[K]) Release()                 { b.rbt.Release() }

func (b *treeBase[K]) Find(key K) tree.Iterator[K] {
	return b.rbt.Find(key)
}

func (b *treeBase[K]) Contains(key K) bool {
	return !b.rbt.Find(key).IsEnd()
}

func (b *treeBase[K]) Count(key K) int64 {
	if b.multi {
		return b.rbt.CountMulti(key)
	}
	return b.rbt.CountUnique(key)
}

func (b *treeBase[K]) LowerBound(key K) tree.Iterator[K] {
	return b.rbt.LowerBound(key)
}

func (b *treeBase[K]) UpperBound(key K) tree.Iterator[K] {
	return b.rbt.UpperBound(key)
}

func (b *treeBase[K]) EqualRange(key K) (tree.Iterator[K], tree.Iterator[K]) {
	if b.multi {
		return b.rbt.EqualRangeMulti(key)
	}
	return b.rbt.EqualRangeUnique(key)
}

func (b *treeBase[K]) Erase(pos tree.Iterator[K]) tree.Iterator[K] {
	return b.rbt.Erase(pos)
}

func (b *treeBase[K]) EraseKey(key K) int64 {
	if b.multi {
		return b.rbt.EraseMulti(key)
	}
	return b.rbt.EraseUnique(key)
}

func (b *treeBase[K]) EraseRange(first, last tree.Iterator[K]) tree.Iterator[K] {
	return b.rbt.EraseRange(first, last)
}

func (b *treeBase[K]) Keys() []K {
	keys := make([]K, 0, b.rbt.Len())
	b.Foreach(func(idx int64, key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (b *treeBase[K]) Foreach(action func(idx int64, key K) bool) {
	b.rbt.Foreach(func(idx int64, color tree.RBColor, key K) bool {
		return action(idx, key)
	})
}

type treeSet[K any] struct {
	*treeBase[K]
}

func (s *treeSet[K]) Insert(key K) (tree.Iterator[K], bool, error) {
	return s.rbt.InsertUnique(key)
}

func (s *treeSet[K]) InsertHint(hint tree.Iterator[K], key K) (tree.Iterator[K], error) {
	return s.rbt.InsertUniqueHint(hint, key)
}

func (s *treeSet[K]) InsertRange(keys ...K) error {
	return s.rbt.InsertUniqueRange(keys...)
}

func (s *treeSet[K]) Emplace(ctor alloc.Constructor[K]) (tree.Iterator[K], bool, error) {
	return s.rbt.EmplaceUnique(ctor)
}

func (s *treeSet[K]) Swap(other OrderedSet[K]) {
	s.rbt.Swap(other.rbtree())
}

func (s *treeSet[K]) Clone() (OrderedSet[K], error) {
	rbt, err := s.rbt.Clone()
	if err != nil {
		return nil, err
	}
	return &treeSet[K]{&treeBase[K]{rbt: rbt}}, nil
}

type treeMultiSet[K any] struct {
	*treeBase[K]
}

func (s *treeMultiSet[K]) Insert(key K) (tree.Iterator[K], error) {
	return s.rbt.InsertMulti(key)
}

func (s *treeMultiSet[K]) InsertHint(hint tree.Iterator[K], key K) (tree.Iterator[K], error) {
	return s.rbt.InsertMultiHint(hint, key)
}

func (s *treeMultiSet[K]) InsertRange(keys ...K) error {
	return s.rbt.InsertMultiRange(keys...)
}

func (s *treeMultiSet[K]) Emplace(ctor alloc.Constructor[K]) (tree.Iterator[K], error) {
	return s.rbt.EmplaceMulti(ctor)
}

func (s *treeMultiSet[K]) Swap(other OrderedMultiSet[K]) {
	s.rbt.Swap(other.rbtree())
}

func (s *treeMultiSet[K]) Clone() (OrderedMultiSet[K], error) {
	rbt, err := s.rbt.Clone()
	if err != nil {
		return nil, err
	}
	return &treeMultiSet[K]{&treeBase[K]{rbt: rbt, multi: true}}, nil
}

func NewOrderedSet[K infra.OrderedKey](opts ...tree.RBTreeOpt[K, K]) OrderedSet[K] {
	return &treeSet[K]{&treeBase[K]{rbt: tree.NewRBTree[K, K](identity[K], opts...)}}
}

func NewOrderedSetWithComparator[K any](cmp infra.Comparator[K], opts ...tree.RBTreeOpt[K, K]) OrderedSet[K] {
	return &treeSet[K]{&treeBase[K]{rbt: tree.NewRBTreeWithComparator[K, K](identity[K], cmp, opts...)}}
}

func NewOrderedMultiSet[K infra.OrderedKey](opts ...tree.RBTreeOpt[K, K]) OrderedMultiSet[K] {
	return &treeMultiSet[K]{&treeBase[K]{rbt: tree.NewRBTree[K, K](identity[K], opts...), multi: true}}
}

func NewOrderedMultiSetWithComparator[K any](cmp infra.Comparator[K], opts ...tree.RBTreeOpt[K, K]) OrderedMultiSet[K] {
	return &treeMultiSet[K]{&treeBase[K]{rbt: tree.NewRBTreeWithComparator[K, K](identity[K], cmp, opts...), multi: true}}
}

// Equal reports whether both sets hold the same keys.
func Equal[K comparable](lhs, rhs Ordered[K]) bool {
	return tree.Equal[K, K](lhs.rbtree(), rhs.rbtree())
}

// Compare orders the key sequences lexicographically by the comparator
// of lhs.
func Compare[K any](lhs, rhs Ordered[K]) int {
	return tree.Compare[K, K](lhs.rbtree(), rhs.rbtree(), func(a, b K) int {
		return int(lhs.KeyCompare(a, b))
	})
}

func Less[K any](lhs, rhs Ordered[K]) bool {
	return Compare[K](lhs, rhs) < 0
}
