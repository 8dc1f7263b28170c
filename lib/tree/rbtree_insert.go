package tree

import (
	"github.com/benz9527/xstl/lib/alloc"
)

// insertMultiPos descends from the root. Equal keys go right, so a new
// duplicate lands after the present ones.
func (tree *rbTree[K, V]) insertMultiPos(key K) (y *rbNode[V], addToLeft bool) {
	addToLeft = true
	for x := tree.header.root; x != nil; {
		y = x
		if addToLeft = tree.less(key, tree.keyOfNode(x)); addToLeft {
			x = x.left
		} else {
			x = x.right
		}
	}
	return y, addToLeft
}

// insertUniquePos returns the attach position of key, or the node with an
// equal key if there is one.
func (tree *rbTree[K, V]) insertUniquePos(key K) (y *rbNode[V], addToLeft bool, equal *rbNode[V]) {
	y, addToLeft = tree.insertMultiPos(key)
	j := y
	if addToLeft {
		if y == nil || y == tree.header.leftmost {
			return y, true, nil
		}
		j = y.pred()
	}
	// j is the greatest node not greater than key.
	if tree.less(tree.keyOfNode(j), key) {
		return y, addToLeft, nil
	}
	return nil, false, j
}

// hintUniquePos checks whether key fits right before hint. It reports
// false if the hint is useless, the caller searches from the root then.
//
//	before < key < hint
func (tree *rbTree[K, V]) hintUniquePos(hint Iterator[V], key K) (y *rbNode[V], addToLeft bool, ok bool) {
	hdr := tree.header
	if hint.header != hdr || hdr.root == nil {
		return nil, false, false
	}
	if hint.node == nil {
		if tree.less(tree.keyOfNode(hdr.rightmost), key) {
			return hdr.rightmost, false, true
		}
		return nil, false, false
	}
	if hint.node == hdr.leftmost {
		if tree.less(key, tree.keyOfNode(hint.node)) {
			return hint.node, true, true
		}
		return nil, false, false
	}
	before := hint.node.pred()
	if tree.less(tree.keyOfNode(before), key) && tree.less(key, tree.keyOfNode(hint.node)) {
		if before.right == nil {
			return before, false, true
		}
		return hint.node, true, true
	}
	return nil, false, false
}

// hintMultiPos is hintUniquePos for equal keys.
//
//	before <= key <= hint
func (tree *rbTree[K, V]) hintMultiPos(hint Iterator[V], key K) (y *rbNode[V], addToLeft bool, ok bool) {
	hdr := tree.header
	if hint.header != hdr || hdr.root == nil {
		return nil, false, false
	}
	if hint.node == nil {
		if !tree.less(key, tree.keyOfNode(hdr.rightmost)) {
			return hdr.rightmost, false, true
		}
		return nil, false, false
	}
	if hint.node == hdr.leftmost {
		if !tree.less(tree.keyOfNode(hint.node), key) {
			return hint.node, true, true
		}
		return nil, false, false
	}
	before := hint.node.pred()
	if !tree.less(key, tree.keyOfNode(before)) && !tree.less(tree.keyOfNode(hint.node), key) {
		if before.right == nil {
			return before, false, true
		}
		return hint.node, true, true
	}
	return nil, false, false
}

func (tree *rbTree[K, V]) InsertUnique(v V) (Iterator[V], bool, error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), false, err
	}
	y, addToLeft, equal := tree.insertUniquePos(tree.keyOf(v))
	if equal != nil {
		return tree.iter(equal), false, nil
	}
	z, err := tree.createValueNode(v)
	if err != nil {
		return tree.End(), false, err
	}
	return tree.insertNodeAt(y, z, addToLeft), true, nil
}

func (tree *rbTree[K, V]) InsertMulti(v V) (Iterator[V], error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createValueNode(v)
	if err != nil {
		return tree.End(), err
	}
	y, addToLeft := tree.insertMultiPos(tree.keyOf(v))
	return tree.insertNodeAt(y, z, addToLeft), nil
}

func (tree *rbTree[K, V]) InsertUniqueHint(hint Iterator[V], v V) (Iterator[V], error) {
	y, addToLeft, ok := tree.hintUniquePos(hint, tree.keyOf(v))
	if !ok {
		it, _, err := tree.InsertUnique(v)
		return it, err
	}
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createValueNode(v)
	if err != nil {
		return tree.End(), err
	}
	return tree.insertNodeAt(y, z, addToLeft), nil
}

func (tree *rbTree[K, V]) InsertMultiHint(hint Iterator[V], v V) (Iterator[V], error) {
	y, addToLeft, ok := tree.hintMultiPos(hint, tree.keyOf(v))
	if !ok {
		return tree.InsertMulti(v)
	}
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createValueNode(v)
	if err != nil {
		return tree.End(), err
	}
	return tree.insertNodeAt(y, z, addToLeft), nil
}

// insertRange undoes the inserted values if one of them fails.
func (tree *rbTree[K, V]) insertRange(vals []V, insert func(v V) (Iterator[V], bool, error)) error {
	if err := tree.checkLength(int64(len(vals))); err != nil {
		return err
	}
	inserted := make([]Iterator[V], 0, len(vals))
	for i := range vals {
		it, ok, err := insert(vals[i])
		if err != nil {
			for j := len(inserted) - 1; j >= 0; j-- {
				tree.eraseNode(inserted[j].node)
			}
			return err
		}
		if ok {
			inserted = append(inserted, it)
		}
	}
	return nil
}

func (tree *rbTree[K, V]) InsertUniqueRange(vals ...V) error {
	return tree.insertRange(vals, tree.InsertUnique)
}

func (tree *rbTree[K, V]) InsertMultiRange(vals ...V) error {
	return tree.insertRange(vals, func(v V) (Iterator[V], bool, error) {
		it, err := tree.InsertMulti(v)
		return it, err == nil, err
	})
}

func (tree *rbTree[K, V]) EmplaceUnique(ctor alloc.Constructor[V]) (Iterator[V], bool, error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), false, err
	}
	z, err := tree.createNode(func(p *V) error {
		return alloc.ConstructWith[V](p, ctor)
	})
	if err != nil {
		return tree.End(), false, err
	}
	y, addToLeft, equal := tree.insertUniquePos(tree.keyOfNode(z))
	if equal != nil {
		tree.destroyNode(z)
		return tree.iter(equal), false, nil
	}
	return tree.insertNodeAt(y, z, addToLeft), true, nil
}

func (tree *rbTree[K, V]) EmplaceMulti(ctor alloc.Constructor[V]) (Iterator[V], error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createNode(func(p *V) error {
		return alloc.ConstructWith[V](p, ctor)
	})
	if err != nil {
		return tree.End(), err
	}
	y, addToLeft := tree.insertMultiPos(tree.keyOfNode(z))
	return tree.insertNodeAt(y, z, addToLeft), nil
}

func (tree *rbTree[K, V]) EmplaceUniqueHint(hint Iterator[V], ctor alloc.Constructor[V]) (Iterator[V], error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createNode(func(p *V) error {
		return alloc.ConstructWith[V](p, ctor)
	})
	if err != nil {
		return tree.End(), err
	}
	key := tree.keyOfNode(z)
	y, addToLeft, ok := tree.hintUniquePos(hint, key)
	if !ok {
		var equal *rbNode[V]
		if y, addToLeft, equal = tree.insertUniquePos(key); equal != nil {
			tree.destroyNode(z)
			return tree.iter(equal), nil
		}
	}
	return tree.insertNodeAt(y, z, addToLeft), nil
}

func (tree *rbTree[K, V]) EmplaceMultiHint(hint Iterator[V], ctor alloc.Constructor[V]) (Iterator[V], error) {
	if err := tree.checkLength(1); err != nil {
		return tree.End(), err
	}
	z, err := tree.createNode(func(p *V) error {
		return alloc.ConstructWith[V](p, ctor)
	})
	if err != nil {
		return tree.End(), err
	}
	key := tree.keyOfNode(z)
	y, addToLeft, ok := tree.hintMultiPos(hint, key)
	if !ok {
		y, addToLeft = tree.insertMultiPos(key)
	}
	return tree.insertNodeAt(y, z, addToLeft), nil
}
