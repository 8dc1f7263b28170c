package tree

import (
	"go.uber.org/zap"
)

// LowerBound returns the first position whose key is not less than key.
func (tree *rbTree[K, V]) LowerBound(key K) Iterator[V] {
	var y *rbNode[V]
	for x := tree.header.root; x != nil; {
		if !tree.less(tree.keyOfNode(x), key) {
			y, x = x, x.left
		} else {
			x = x.right
		}
	}
	return tree.iter(y)
}

// UpperBound returns the first position whose key is greater than key.
func (tree *rbTree[K, V]) UpperBound(key K) Iterator[V] {
	var y *rbNode[V]
	for x := tree.header.root; x != nil; {
		if tree.less(key, tree.keyOfNode(x)) {
			y, x = x, x.left
		} else {
			x = x.right
		}
	}
	return tree.iter(y)
}

func (tree *rbTree[K, V]) Find(key K) Iterator[V] {
	it := tree.LowerBound(key)
	if it.node == nil || tree.less(key, tree.keyOfNode(it.node)) {
		return tree.End()
	}
	return it
}

func (tree *rbTree[K, V]) CountUnique(key K) int64 {
	if tree.Find(key).node == nil {
		return 0
	}
	return 1
}

func (tree *rbTree[K, V]) CountMulti(key K) int64 {
	first, last := tree.EqualRangeMulti(key)
	return Distance[V](first, last)
}

// EqualRangeUnique returns an empty range at the lower bound if key is
// absent.
func (tree *rbTree[K, V]) EqualRangeUnique(key K) (Iterator[V], Iterator[V]) {
	it := tree.LowerBound(key)
	if it.node != nil && !tree.less(key, tree.keyOfNode(it.node)) {
		return it, it.Next()
	}
	return it, it
}

func (tree *rbTree[K, V]) EqualRangeMulti(key K) (Iterator[V], Iterator[V]) {
	return tree.LowerBound(key), tree.UpperBound(key)
}

func (tree *rbTree[K, V]) Erase(pos Iterator[V]) Iterator[V] {
	tree.checkIter(pos, "erase")
	next := pos.node.succ()
	tree.eraseNode(pos.node)
	return tree.iter(next)
}

func (tree *rbTree[K, V]) EraseRange(first, last Iterator[V]) Iterator[V] {
	if first == tree.Begin() && last == tree.End() {
		tree.Clear()
		return tree.End()
	}
	for first != last {
		first = tree.Erase(first)
	}
	return last
}

// EraseUnique returns 0 if key is absent.
func (tree *rbTree[K, V]) EraseUnique(key K) int64 {
	it := tree.Find(key)
	if it.node == nil {
		return 0
	}
	tree.eraseNode(it.node)
	return 1
}

func (tree *rbTree[K, V]) EraseMulti(key K) int64 {
	first, last := tree.EqualRangeMulti(key)
	n := tree.Len()
	tree.EraseRange(first, last)
	return n - tree.Len()
}

func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, v V) bool) {
	idx := int64(0)
	for x := tree.header.leftmost; x != nil; x = x.succ() {
		if !action(idx, x.color, x.val) {
			return
		}
		idx++
	}
}

// copySubtree clones the subtree rooted at x under p. The right subtrees
// are cloned recursively and the left spine iteratively.
// The cloned part is destroyed if any node fails.
func (tree *rbTree[K, V]) copySubtree(x, p *rbNode[V]) (*rbNode[V], error) {
	top, err := tree.cloneNode(x)
	if err != nil {
		return nil, err
	}
	top.parent = p
	if x.right != nil {
		if top.right, err = tree.copySubtree(x.right, top); err != nil {
			tree.eraseSince(top)
			return nil, err
		}
	}
	p = top
	for x = x.left; x != nil; x = x.left {
		y, err := tree.cloneNode(x)
		if err != nil {
			tree.eraseSince(top)
			return nil, err
		}
		p.left, y.parent = y, p
		if x.right != nil {
			if y.right, err = tree.copySubtree(x.right, y); err != nil {
				tree.eraseSince(top)
				return nil, err
			}
		}
		p = y
	}
	return top, nil
}

// copyRoot clones the nodes of src with the allocator of tree. The
// header of tree is not touched.
func (tree *rbTree[K, V]) copyRoot(src *rbTree[K, V]) (*rbNode[V], error) {
	if src.header.root == nil {
		return nil, nil
	}
	root, err := tree.copySubtree(src.header.root, nil)
	if err != nil {
		tree.logger.ErrorStack(err, "[rbtree] copy rolled back",
			zap.String("tree", tree.name),
			zap.Int64("count", src.count),
		)
		return nil, err
	}
	return root, nil
}

func (tree *rbTree[K, V]) adopt(root *rbNode[V], count int64) {
	hdr := tree.header
	hdr.root, hdr.leftmost, hdr.rightmost = root, root.minimum(), root.maximum()
	tree.count = count
	tree.stats.RecordLen(count)
}

// emptyClone shares the node allocator with tree. The stats are only
// shared if the clone keeps the same name.
func (tree *rbTree[K, V]) emptyClone() *rbTree[K, V] {
	return &rbTree[K, V]{
		header:         &rbHeader[V]{},
		nodes:          tree.nodes,
		keyOf:          tree.keyOf,
		kcmp:           tree.kcmp,
		logger:         tree.logger,
		stats:          tree.stats,
		name:           tree.name,
		maxSize:        tree.maxSize,
		nodeLimit:      tree.nodeLimit,
		nodeChunkSize:  tree.nodeChunkSize,
		isDesc:         tree.isDesc,
		isStatsEnabled: tree.isStatsEnabled,
	}
}

func (tree *rbTree[K, V]) Clone() (RBTree[K, V], error) {
	c := tree.emptyClone()
	root, err := c.copyRoot(tree)
	if err != nil {
		return nil, err
	}
	c.adopt(root, tree.count)
	return c, nil
}

func (tree *rbTree[K, V]) CopyFrom(src RBTree[K, V]) error {
	s, ok := src.(*rbTree[K, V])
	if !ok {
		panic( /* debug assertion */ "[rbtree] copy from unknown tree implementation")
	}
	if s == tree {
		return nil
	}
	if s.count > tree.maxSize {
		return tree.checkLength(s.count - tree.count)
	}
	root, err := tree.copyRoot(s)
	if err != nil {
		return err
	}
	tree.Clear()
	tree.keyOf, tree.kcmp = s.keyOf, s.kcmp
	tree.adopt(root, s.count)
	return nil
}

func (tree *rbTree[K, V]) Swap(other RBTree[K, V]) {
	o, ok := other.(*rbTree[K, V])
	if !ok {
		panic( /* debug assertion */ "[rbtree] swap with unknown tree implementation")
	}
	if o == tree {
		return
	}
	tree.stats.RecordLen(o.count - tree.count)
	o.stats.RecordLen(tree.count - o.count)
	tree.header, o.header = o.header, tree.header
	tree.count, o.count = o.count, tree.count
	tree.nodes, o.nodes = o.nodes, tree.nodes
	tree.keyOf, o.keyOf = o.keyOf, tree.keyOf
	tree.kcmp, o.kcmp = o.kcmp, tree.kcmp
	tree.maxSize, o.maxSize = o.maxSize, tree.maxSize
}

// Equal reports whether both trees hold equal values in the same order.
func Equal[K any, V comparable](lhs, rhs RBTree[K, V]) bool {
	return EqualFunc[K, V](lhs, rhs, func(a, b V) bool {
		return a == b
	})
}

func EqualFunc[K any, V any](lhs, rhs RBTree[K, V], eq func(a, b V) bool) bool {
	if lhs.Len() != rhs.Len() {
		return false
	}
	for i, j := lhs.Begin(), rhs.Begin(); !i.IsEnd(); i, j = i.Next(), j.Next() {
		if !eq(i.Value(), j.Value()) {
			return false
		}
	}
	return true
}

// Compare compares the in-order sequences lexicographically.
// The result is -1, 0 or 1.
func Compare[K any, V any](lhs, rhs RBTree[K, V], cmp func(a, b V) int) int {
	i, j := lhs.Begin(), rhs.Begin()
	for ; !i.IsEnd() && !j.IsEnd(); i, j = i.Next(), j.Next() {
		if c := cmp(i.Value(), j.Value()); c < 0 {
			return -1
		} else if c > 0 {
			return 1
		}
	}
	switch {
	case i.IsEnd() && j.IsEnd():
		return 0
	case i.IsEnd():
		return -1
	default:
	}
	return 1
}

func Less[K any, V any](lhs, rhs RBTree[K, V], cmp func(a, b V) int) bool {
	return Compare[K, V](lhs, rhs, cmp) < 0
}
