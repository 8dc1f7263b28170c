package kv

import (
	"fmt"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/tree"
)

var _ OrderedMap[int, int] = (*treeMap[int, int])(nil)

type treeMap[K any, V any] struct {
	*treeBase[K, V]
}

func (m *treeMap[K, V]) Insert(key K, val V) (tree.Iterator[Pair[K, V]], bool, error) {
	return m.rbt.InsertUnique(MakePair(key, val))
}

func (m *treeMap[K, V]) InsertHint(hint tree.Iterator[Pair[K, V]], key K, val V) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.InsertUniqueHint(hint, MakePair(key, val))
}

func (m *treeMap[K, V]) InsertOrAssign(key K, val V) (tree.Iterator[Pair[K, V]], bool, error) {
	it := m.rbt.LowerBound(key)
	if it.IsEnd() || m.rbt.KeyCompare(key, it.Value().Key) < 0 {
		it, err := m.rbt.InsertUniqueHint(it, MakePair(key, val))
		return it, err == nil, err
	}
	// The new value is built aside so a failure keeps the present one.
	var v V
	if err := alloc.ConstructValue[V](&v, val); err != nil {
		return m.rbt.End(), false, err
	}
	p := it.Ptr()
	alloc.Destroy[V](&p.Val)
	p.Val = v
	return it, false, nil
}

func (m *treeMap[K, V]) Emplace(ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], bool, error) {
	return m.rbt.EmplaceUnique(ctor)
}

func (m *treeMap[K, V]) EmplaceHint(hint tree.Iterator[Pair[K, V]], ctor alloc.Constructor[Pair[K, V]]) (tree.Iterator[Pair[K, V]], error) {
	return m.rbt.EmplaceUniqueHint(hint, ctor)
}

func (m *treeMap[K, V]) At(key K) (V, error) {
	it := m.rbt.Find(key)
	if it.IsEnd() {
		var zero V
		return zero, infra.WrapErrorStackWithMessage(ErrOutOfRange, fmt.Sprintf("key %v", key))
	}
	return it.Value().Val, nil
}

func (m *treeMap[K, V]) Index(key K) (*V, error) {
	it := m.rbt.LowerBound(key)
	if it.IsEnd() || m.rbt.KeyCompare(key, it.Value().Key) < 0 {
		var err error
		it, err = m.rbt.EmplaceUniqueHint(it, func(p *Pair[K, V]) error {
			return alloc.ConstructValue[K](&p.Key, key)
		})
		if err != nil {
			return nil, err
		}
	}
	return &it.Ptr().Val, nil
}

func (m *treeMap[K, V]) Swap(other OrderedMap[K, V]) {
	m.rbt.Swap(other.rbtree())
}

func (m *treeMap[K, V]) Clone() (OrderedMap[K, V], error) {
	rbt, err := m.rbt.Clone()
	if err != nil {
		return nil, err
	}
	return &treeMap[K, V]{&treeBase[K, V]{rbt: rbt}}, nil
}

// NewOrderedMap orders the pairs by the natural order of the keys.
func NewOrderedMap[K infra.OrderedKey, V any](opts ...tree.RBTreeOpt[K, Pair[K, V]]) OrderedMap[K, V] {
	return &treeMap[K, V]{&treeBase[K, V]{
		rbt: tree.NewRBTree[K, Pair[K, V]](pairKey[K, V], opts...),
	}}
}

func NewOrderedMapWithComparator[K any, V any](
	cmp infra.Comparator[K],
	opts ...tree.RBTreeOpt[K, Pair[K, V]],
) OrderedMap[K, V] {
	return &treeMap[K, V]{&treeBase[K, V]{
		rbt: tree.NewRBTreeWithComparator[K, Pair[K, V]](pairKey[K, V], cmp, opts...),
	}}
}
