package tree

// rbHeader anchors a tree. The root and the cached extremes live here
// instead of being overloaded onto a sentinel node's links.
// An iterator with a nil node and this header is end().
type rbHeader[V any] struct {
	root      *rbNode[V]
	leftmost  *rbNode[V]
	rightmost *rbNode[V]
}

// Iterator is an in-order cursor. It is a plain value and two iterators
// are equal by ==.
// Zero Iterator is invalid, only the tree hands out usable ones.
type Iterator[V any] struct {
	header *rbHeader[V]
	node   *rbNode[V]
}

func (it Iterator[V]) IsEnd() bool {
	return it.node == nil
}

func (it Iterator[V]) Equal(other Iterator[V]) bool {
	return it == other
}

func (it Iterator[V]) Value() V {
	if it.node == nil {
		panic( /* debug assertion */ "[rbtree] dereference end iterator")
	}
	return it.node.val
}

// Ptr exposes the stored value in place. The key part of the value
// must not be modified.
func (it Iterator[V]) Ptr() *V {
	if it.node == nil {
		panic( /* debug assertion */ "[rbtree] dereference end iterator")
	}
	return &it.node.val
}

func (it Iterator[V]) Color() RBColor {
	if it.node == nil {
		panic( /* debug assertion */ "[rbtree] dereference end iterator")
	}
	return it.node.color
}

// Next moves to the in-order successor. The successor of the maximum
// is end().
func (it Iterator[V]) Next() Iterator[V] {
	if it.node == nil {
		panic( /* debug assertion */ "[rbtree] increment end iterator")
	}
	return Iterator[V]{header: it.header, node: it.node.succ()}
}

// Prev moves to the in-order predecessor. The predecessor of end() is
// the maximum.
func (it Iterator[V]) Prev() Iterator[V] {
	if it.header == nil {
		panic( /* debug assertion */ "[rbtree] decrement invalid iterator")
	}
	if it.node == nil {
		if it.header.rightmost == nil {
			panic( /* debug assertion */ "[rbtree] decrement end iterator of empty tree")
		}
		return Iterator[V]{header: it.header, node: it.header.rightmost}
	}
	pred := it.node.pred()
	if pred == nil {
		panic( /* debug assertion */ "[rbtree] decrement begin iterator")
	}
	return Iterator[V]{header: it.header, node: pred}
}

// Distance counts the increments from first to last.
func Distance[V any](first, last Iterator[V]) int64 {
	n := int64(0)
	for ; first != last; first = first.Next() {
		n++
	}
	return n
}
