package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrRedViolation      = errors.New("[rbtree] red violation")
	ErrBlackViolation    = errors.New("[rbtree] black violation")
	ErrOrderViolation    = errors.New("[rbtree] order violation")
	ErrExtremumViolation = errors.New("[rbtree] extremum violation")
	ErrSizeViolation     = errors.New("[rbtree] size violation")
)

func isBlack[V any](node RBNode[V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[V any](node RBNode[V]) bool {
	return node != nil && node.Color() == Red
}

func blackDepthTo[V any](target, to RBNode[V]) int {
	depth := 0
	for aux := target; aux != nil && aux != to; aux = aux.Parent() {
		if isBlack[V](aux) {
			depth++
		}
	}
	return depth
}

// inorder walks the nodes with an explicit stack.
func inorder[V any](root RBNode[V], size int64, action func(node RBNode[V]) bool) {
	if root == nil {
		return
	}
	stack := make([]RBNode[V], 0, size>>1+1)
	defer func() {
		clear(stack)
	}()
	for aux := root; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for n := len(stack); n > 0; n = len(stack) {
		aux := stack[n-1]
		stack = stack[:n-1]
		if !action(aux) {
			return
		}
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// RedViolationValidate checks the root is black and no red node has a
// red child.
func RedViolationValidate[K any, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if isRed[V](root) {
		return fmt.Errorf("%w: red root", ErrRedViolation)
	}
	var err error
	inorder[V](root, tree.Len(), func(node RBNode[V]) bool {
		if isRed[V](node) && (isRed[V](node.Left()) || isRed[V](node.Right())) {
			err = fmt.Errorf("%w: red node %v has a red child", ErrRedViolation, tree.KeyOf(node.Val()))
			return false
		}
		return true
	})
	return err
}

// BFS traversal to load all nodes with at least one nil leaf.
func bfsLeaves[V any](root RBNode[V], size int64) []RBNode[V] {
	if root == nil {
		return nil
	}

	leaves := make([]RBNode[V], 0, size>>1+1)
	queue := make([]RBNode[V], 0, size>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, root)

	for len(queue) > 0 {
		aux := queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[V](tree.Root(), tree.Len())
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[V](leaves[0], nil)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo[V](leaves[i], nil); depth != blackDepth {
			return fmt.Errorf("%w: black depth %d and %d", ErrBlackViolation, blackDepth, depth)
		}
	}
	return nil
}

// OrderViolationValidate checks the in-order keys never decrease.
func OrderViolationValidate[K any, V any](tree RBTree[K, V]) error {
	var (
		err  error
		prev RBNode[V]
	)
	inorder[V](tree.Root(), tree.Len(), func(node RBNode[V]) bool {
		if prev != nil && tree.KeyCompare(tree.KeyOf(node.Val()), tree.KeyOf(prev.Val())) < 0 {
			err = fmt.Errorf("%w: %v after %v", ErrOrderViolation,
				tree.KeyOf(node.Val()), tree.KeyOf(prev.Val()))
			return false
		}
		prev = node
		return true
	})
	return err
}

// ExtremumValidate checks the cached extremes against the subtree walks.
func ExtremumValidate[K any, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		if !tree.Begin().IsEnd() {
			return fmt.Errorf("%w: begin of empty tree is not end", ErrExtremumViolation)
		}
		return nil
	}
	minimum, maximum := root, root
	for ; minimum.Left() != nil; minimum = minimum.Left() {
	}
	for ; maximum.Right() != nil; maximum = maximum.Right() {
	}
	if begin := tree.Begin(); begin.IsEnd() || RBNode[V](begin.node) != minimum {
		return fmt.Errorf("%w: leftmost mismatch", ErrExtremumViolation)
	}
	if last := tree.End().Prev(); RBNode[V](last.node) != maximum {
		return fmt.Errorf("%w: rightmost mismatch", ErrExtremumViolation)
	}
	return nil
}

// SizeValidate checks the count and the parent links of all reachable
// nodes.
func SizeValidate[K any, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root != nil && root.Parent() != nil {
		return fmt.Errorf("%w: root with parent", ErrSizeViolation)
	}
	var (
		err error
		n   int64
	)
	inorder[V](root, tree.Len(), func(node RBNode[V]) bool {
		n++
		for _, child := range []RBNode[V]{node.Left(), node.Right()} {
			if child != nil && child.Parent() != node {
				err = fmt.Errorf("%w: broken parent link at %v", ErrSizeViolation, tree.KeyOf(node.Val()))
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if n != tree.Len() {
		return fmt.Errorf("%w: %d reachable nodes, len %d", ErrSizeViolation, n, tree.Len())
	}
	return nil
}

// Validate runs all the validators.
func Validate[K any, V any](tree RBTree[K, V]) error {
	var merr error
	merr = multierr.Append(merr, RedViolationValidate[K, V](tree))
	merr = multierr.Append(merr, BlackViolationValidate[K, V](tree))
	merr = multierr.Append(merr, OrderViolationValidate[K, V](tree))
	merr = multierr.Append(merr, ExtremumValidate[K, V](tree))
	merr = multierr.Append(merr, SizeValidate[K, V](tree))
	return merr
}
