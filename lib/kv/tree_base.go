package kv

import (
	"github.com/benz9527/xstl/lib/tree"
)

// treeBase forwards to the tree in the unique or the multi mode.
type treeBase[K any, V any] struct {
	rbt   tree.RBTree[K, Pair[K, V]]
	multi bool
}

func (b *treeBase[K, V]) rbtree() tree.RBTree[K, Pair[K, V]] {
	return b.rbt
}

func (b *treeBase[K, V]) Len() int64 {
	return b.rbt.Len()
}

func (b *treeBase[K, V]) Empty() bool {
	return b.rbt.Empty()
}

func (b *treeBase[K, V]) MaxSize() int64 {
	return b.rbt.MaxSize()
}

func (b *treeBase[K, V]) KeyCompare(i, j K) int64 {
	return b.rbt.KeyCompare(i, j)
}

func (b *treeBase[K, V]) Begin() tree.Iterator[Pair[K, V]] {
	return b.rbt.Begin()
}

func (b *treeBase[K, V]) End() tree.Iterator[Pair[K, V]] {
	return b.rbt.End()
}

func (b *treeBase[K, V]) Find(key K) tree.Iterator[Pair[K, V]] {
	return b.rbt.Find(key)
}

func (b *treeBase[K, V]) Contains(key K) bool {
	return !b.rbt.Find(key).IsEnd()
}

func (b *treeBase[K, V]) Count(key K) int64 {
	if b.multi {
		return b.rbt.CountMulti(key)
	}
	return b.rbt.CountUnique(key)
}

func (b *treeBase[K, V]) LowerBound(key K) tree.Iterator[Pair[K, V]] {
	return b.rbt.LowerBound(key)
}

func (b *treeBase[K, V]) UpperBound(key K) tree.Iterator[Pair[K, V]] {
	return b.rbt.UpperBound(key)
}

func (b *treeBase[K, V]) EqualRange(key K) (tree.Iterator[Pair[K, V]], tree.Iterator[Pair[K, V]]) {
	if b.multi {
		return b.rbt.EqualRangeMulti(key)
	}
	return b.rbt.EqualRangeUnique(key)
}

func (b *treeBase[K, V]) Erase(pos tree.Iterator[Pair[K, V]]) tree.Iterator[Pair[K, V]] {
	return b.rbt.Erase(pos)
}

func (b *treeBase[K, V]) EraseKey(key K) int64 {
	if b.multi {
		return b.rbt.EraseMulti(key)
	}
	return b.rbt.EraseUnique(key)
}

func (b *treeBase[K, V]) EraseRange(first, last tree.Iterator[Pair[K, V]]) tree.Iterator[Pair[K, V]] {
	return b.rbt.EraseRange(first, last)
}

func (b *treeBase[K, V]) Clear() {
	b.rbt.Clear()
}

func (b *treeBase[K, V]) Release() {
	b.rbt.Release()
}

func (b *treeBase[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	b.rbt.Foreach(func(idx int64, color tree.RBColor, p Pair[K, V]) bool {
		return action(idx, p.Key, p.Val)
	})
}
