package kv

import (
	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/tree"
)

var _ OrderedMultiMap[int, int] = (*treeMultiMap[int, int])(nil)

type treeMultiMap[K any, V any] struct {
	*treeBase[K, V]
}

func (m *treeMultiMap[K, V]) Insert(key K, val V) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.InsertMulti(MakePair(key, val))
}

func (m *treeMultiMap[K, V]) InsertHint(hint tree.Iterator[Pair[K, V]], key K, val V) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.InsertMultiHint(hint, MakePair(key, val))
}

func (m *treeMultiMap[K, V]) Emplace(ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.EmplaceMulti(ctor)
}

func (m *treeMultiMap[K, V]) EmplaceHint(hint tree.Iterator[Pair[K, V]], ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.EmplaceMultiHint(hint, ctor)
}

func (m *treeMultiMap[K, V]) Swap(other OrderedMultiMap[K, V]) {
	m.rbt.Swap(other.rbtree())
}

func (m *treeMultiMap[K, V]) Clone() (OrderedMultiMap[K, V], error) {
	rbt, err := m.rbt.Clone()
	if err != nil {
		return nil, err
	}
	return &treeMultiMap[K, V]{&treeBase[K, V]{rbt: rbt, multi: true}}, nil
}

func NewOrderedMultiMap[K infra.OrderedKey, V any](opts ...tree.RBTreeOpt[K, Pair[K, V]]) OrderedMultiMap[K, V] {
	return &treeMultiMap[K, V]{&treeBase[K, V]{
		rbt:   tree.NewRBTree[K, Pair[K, V]](pairKey[K, V], opts...),
		multi: true,
	}}
}

func NewOrderedMultiMapWithComparator[K any, V any](
	cmp infra.Comparator[K],
	opts ...tree.RBTreeOpt[K, Pair[K, V]],
) OrderedMultiMap[K, V] {
	return &treeMultiMap[K, V]{&treeBase[K, V]{
		rbt:   tree.NewRBTreeWithComparator[K, Pair[K, V]](pairKey[K, V], cmp, opts...),
		multi: true,
	}}
}
