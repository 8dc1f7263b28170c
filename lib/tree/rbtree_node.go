package tree

type rbNode[V any] struct {
	parent *rbNode[V]
	left   *rbNode[V]
	right  *rbNode[V]
	val    V
	color  RBColor
}

func (node *rbNode[V]) Color() RBColor {
	return node.color
}

func (node *rbNode[V]) Val() V {
	return node.val
}

func (node *rbNode[V]) Left() RBNode[V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[V]) Parent() RBNode[V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[V]) Right() RBNode[V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[V]) isRed() bool {
	return node != nil && node.color == Red
}

// NIL leaves are black.
func (node *rbNode[V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[V]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[V]) grandpa() *rbNode[V] {
	return node.parent.parent
}

func (node *rbNode[V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[V]) minimum() *rbNode[V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[V]) maximum() *rbNode[V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// Nil if the current node is the minimum.
func (node *rbNode[V]) pred() *rbNode[V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
// Nil if the current node is the maximum.
func (node *rbNode[V]) succ() *rbNode[V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}
