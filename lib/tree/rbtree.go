package tree

import (
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/xlog"
)

var _ RBTree[int, int] = (*rbTree[int, int])(nil)

type rbTree[K any, V any] struct {
	header         *rbHeader[V]
	nodes          alloc.Allocator[rbNode[V]]
	keyOf          func(V) K
	kcmp           infra.Comparator[K]
	logger         xlog.XLogger
	stats          *rbTreeStats
	name           string
	count          int64
	maxSize        int64
	nodeLimit      int64
	nodeChunkSize  int
	isDesc         bool
	isStatsEnabled bool
}

func (tree *rbTree[K, V]) less(k1, k2 K) bool {
	return tree.kcmp(k1, k2) < 0
}

func (tree *rbTree[K, V]) keyOfNode(node *rbNode[V]) K {
	return tree.keyOf(node.val)
}

func (tree *rbTree[K, V]) KeyOf(v V) K {
	return tree.keyOf(v)
}

func (tree *rbTree[K, V]) KeyCompare(i, j K) int64 {
	return tree.kcmp(i, j)
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) Empty() bool {
	return tree.count == 0
}

func (tree *rbTree[K, V]) MaxSize() int64 {
	return tree.maxSize
}

func (tree *rbTree[K, V]) Root() RBNode[V] {
	if tree.header.root == nil {
		return nil
	}
	return tree.header.root
}

func (tree *rbTree[K, V]) Begin() Iterator[V] {
	return Iterator[V]{header: tree.header, node: tree.header.leftmost}
}

func (tree *rbTree[K, V]) End() Iterator[V] {
	return Iterator[V]{header: tree.header}
}

func (tree *rbTree[K, V]) iter(node *rbNode[V]) Iterator[V] {
	return Iterator[V]{header: tree.header, node: node}
}

// checkIter panics on a position of another tree or end().
func (tree *rbTree[K, V]) checkIter(pos Iterator[V], op string) {
	if pos.header != tree.header {
		panic( /* debug assertion */ "[rbtree] " + op + " with an iterator of another tree")
	}
	if pos.node == nil {
		panic( /* debug assertion */ "[rbtree] " + op + " with end iterator")
	}
}

// checkLength has to be called before any mutation.
func (tree *rbTree[K, V]) checkLength(n int64) error {
	if maxSize := tree.MaxSize(); n > maxSize-tree.count {
		err := infra.WrapErrorStackWithMessage(
			ErrLength,
			fmt.Sprintf("insert %d values into tree with %d values, max %d", n, tree.count, maxSize),
		)
		tree.logger.ErrorStack(err, "[rbtree] length violation",
			zap.String("tree", tree.name),
		)
		return err
	}
	return nil
}

// createNode acquires a node and builds its value. The node memory is
// released if the value construction fails.
func (tree *rbTree[K, V]) createNode(build alloc.Constructor[V]) (*rbNode[V], error) {
	z, err := tree.nodes.AllocateOne()
	if err != nil {
		return nil, err
	}
	if err = build(&z.val); err != nil {
		tree.nodes.DeallocateOne(z)
		tree.stats.IncreaseRollbackCount()
		tree.logger.Warn("[rbtree] node construction rolled back",
			zap.String("tree", tree.name),
			zap.Error(err),
		)
		return nil, err
	}
	z.color = Red
	return z, nil
}

func (tree *rbTree[K, V]) createValueNode(v V) (*rbNode[V], error) {
	return tree.createNode(func(p *V) error {
		return alloc.ConstructValue[V](p, v)
	})
}

func (tree *rbTree[K, V]) cloneNode(x *rbNode[V]) (*rbNode[V], error) {
	z, err := tree.createNode(func(p *V) error {
		return alloc.ConstructValue[V](p, x.val)
	})
	if err != nil {
		return nil, err
	}
	z.color = x.color
	return z, nil
}

func (tree *rbTree[K, V]) destroyNode(z *rbNode[V]) {
	alloc.Destroy[V](&z.val)
	z.parent, z.left, z.right = nil, nil, nil
	tree.nodes.DeallocateOne(z)
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// The longest path nodes' number is at most 2 * shortest path nodes' number.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.header.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
	tree.stats.IncreaseRotationCount()
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.header.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
	tree.stats.IncreaseRotationCount()
}

// replaceChild hangs y where x hangs now. y may be nil.
func (tree *rbTree[K, V]) replaceChild(x, y *rbNode[V]) {
	switch x.Direction() {
	case Root:
		tree.header.root = y
	case Left:
		x.parent.left = y
	case Right:
		x.parent.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to replace")
	}
}

// insertNodeAt attaches z as a leaf under y and rebalances.
// Nil y means the tree is empty.
func (tree *rbTree[K, V]) insertNodeAt(y, z *rbNode[V], addToLeft bool) Iterator[V] {
	hdr := tree.header
	z.parent, z.left, z.right = y, nil, nil
	if y == nil {
		hdr.root, hdr.leftmost, hdr.rightmost = z, z, z
	} else if addToLeft {
		y.left = z
		if y == hdr.leftmost {
			hdr.leftmost = z
		}
	} else {
		y.right = z
		if y == hdr.rightmost {
			hdr.rightmost = z
		}
	}
	tree.insertRebalance(z)
	tree.count++
	tree.stats.RecordLen(1)
	return tree.iter(z)
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing violated.

im2: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
Repaint P and U into black and G into red. G may be red-violation now.
Continue to fix from G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to X's opposite direction.
Still red-violation, P takes X's place and enter im4 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: X is the same direction as its parent P.
Repaint P into black and G into red, then rotate G. Done.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]

The root is painted black at last, it may be red after im2.
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[V]) {
	x.color = Red
	for /* im1 */ x != tree.header.root && x.parent.isRed() {
		p, g := x.parent, x.grandpa()
		if p == g.left {
			if u := g.right; /* im2 */ u.isRed() {
				p.color, u.color, g.color = Black, Black, Red
				x = g
				continue
			}
			if /* im3 */ x == p.right {
				x = p
				tree.leftRotate(x)
				p = x.parent
			}
			/* im4 */
			p.color, g.color = Black, Red
			tree.rightRotate(g)
		} else {
			if u := g.left; /* im2 */ u.isRed() {
				p.color, u.color, g.color = Black, Black, Red
				x = g
				continue
			}
			if /* im3 */ x == p.left {
				x = p
				tree.rightRotate(x)
				p = x.parent
			}
			/* im4 */
			p.color, g.color = Black, Red
			tree.leftRotate(g)
		}
	}
	tree.header.root.color = Black
}

/*
eraseNode unlinks z from the tree and destroys it.

r1: Z has at most one child C (maybe NIL). C takes Z's place.
The cached extremes are recomputed from C if Z was one of them.

	  |                 |
	  Z                 C
	   \    ======>
	    C

r2: Z has two children. Its succ S (the minimum of the right subtree)
has no left child. S is relinked into Z's place, the links are moved
instead of the values, so the iterators to S keep valid.
S's right child X takes S's old place. S and Z swap their colors, the
color removed from the tree is the one Z carries now.

	    |                    |
	    Z                    S
	   / \                  / \
	  L   R    ======>     L   R
	     /                    /
	    S                    X
	     \
	      X

If the removed color is black, the path through X lost one black node.
*/
func (tree *rbTree[K, V]) eraseNode(z *rbNode[V]) {
	hdr := tree.header
	var x, xParent *rbNode[V]
	y := z
	if y.left == nil {
		x = y.right
	} else if y.right == nil {
		x = y.left
	} else {
		y = y.right.minimum()
		x = y.right
	}

	if /* r2 */ y != z {
		z.left.parent = y
		y.left = z.left
		if y != z.right {
			xParent = y.parent
			if x != nil {
				x.parent = y.parent
			}
			y.parent.left = x
			y.right = z.right
			z.right.parent = y
		} else {
			xParent = y
		}
		tree.replaceChild(z, y)
		y.parent = z.parent
		y.color, z.color = z.color, y.color
	} else /* r1 */ {
		xParent = z.parent
		if x != nil {
			x.parent = z.parent
		}
		tree.replaceChild(z, x)
		if hdr.leftmost == z {
			if z.right == nil {
				hdr.leftmost = z.parent
			} else {
				hdr.leftmost = x.minimum()
			}
		}
		if hdr.rightmost == z {
			if z.left == nil {
				hdr.rightmost = z.parent
			} else {
				hdr.rightmost = x.maximum()
			}
		}
	}

	if z.color == Black {
		tree.eraseRebalance(x, xParent)
	}
	tree.destroyNode(z)
	tree.count--
	tree.stats.RecordLen(-1)
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X is the node which lost one black on its path, P is its parent.
Sc is the same direction to X and it is X's sibling's child node.
Sd is the opposite direction to X and it is X's sibling's child node.

rm1: X's sibling S is red, so P, Sc and Sd must be black.
Repaint S into black and P into red, then rotate P to X's direction.
Sc is X's new sibling, enter rm2-rm4.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd] ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: S, Sc and Sd are black.
Repaint S into red, P's subtree lost one black on all paths.
Continue to fix from P. If P is red, painting it black ends the repair.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: S is black, Sc is red and Sd is black.
Repaint S into red and Sc into black, then rotate S to X's opposite
direction. Sc is X's new sibling and its far child is red, enter rm4.

	  {P}                    {P}
	  / \    r-rotate(S)     / \
	[X] [S]  ==========>   [X] [Sc]
	    / \                      \
	  <Sc> [Sd]                  <S>
	                               \
	                               [Sd]

rm4: S is black and Sd is red.
S takes P's color, P and Sd are painted black, then rotate P to X's
direction. The lost black is restored. Done.

	  {P}                   {S}
	  / \    l-rotate(P)    / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	  {Sc} <Sd>         [X] {Sc}
*/
func (tree *rbTree[K, V]) eraseRebalance(x, xParent *rbNode[V]) {
	for x != tree.header.root && x.isBlack() {
		if x == xParent.left {
			s := xParent.right
			if /* rm1 */ s.isRed() {
				s.color, xParent.color = Black, Red
				tree.leftRotate(xParent)
				s = xParent.right
			}
			if /* rm2 */ s.left.isBlack() && s.right.isBlack() {
				s.color = Red
				x, xParent = xParent, xParent.parent
				continue
			}
			if /* rm3 */ s.right.isBlack() {
				s.left.color, s.color = Black, Red
				tree.rightRotate(s)
				s = xParent.right
			}
			/* rm4 */
			s.color, xParent.color = xParent.color, Black
			if s.right != nil {
				s.right.color = Black
			}
			tree.leftRotate(xParent)
			break
		} else {
			s := xParent.left
			if /* rm1 */ s.isRed() {
				s.color, xParent.color = Black, Red
				tree.rightRotate(xParent)
				s = xParent.left
			}
			if /* rm2 */ s.left.isBlack() && s.right.isBlack() {
				s.color = Red
				x, xParent = xParent, xParent.parent
				continue
			}
			if /* rm3 */ s.left.isBlack() {
				s.right.color, s.color = Black, Red
				tree.leftRotate(s)
				s = xParent.left
			}
			/* rm4 */
			s.color, xParent.color = xParent.color, Black
			if s.left != nil {
				s.left.color = Black
			}
			tree.rightRotate(xParent)
			break
		}
	}
	if x != nil {
		x.color = Black
	}
}

// eraseSince destroys the subtree rooted at x in post-order without
// rebalancing. The caller fixes the header.
func (tree *rbTree[K, V]) eraseSince(x *rbNode[V]) int64 {
	n := int64(0)
	for x != nil {
		n += tree.eraseSince(x.right)
		y := x.left
		tree.destroyNode(x)
		n++
		x = y
	}
	return n
}

func (tree *rbTree[K, V]) Clear() {
	if tree.count == 0 {
		return
	}
	hdr := tree.header
	n := tree.eraseSince(hdr.root)
	hdr.root, hdr.leftmost, hdr.rightmost = nil, nil, nil
	tree.logger.Debug("[rbtree] clear",
		zap.String("tree", tree.name),
		zap.Int64("count", n),
	)
	tree.count = 0
	tree.stats.RecordLen(-n)
}

func (tree *rbTree[K, V]) Release() {
	tree.Clear()
	tree.nodes.Release()
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

// WithRBTreeDesc reverses the order of the comparator.
func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		t.isDesc = true
	}
}

func WithRBTreeName[K any, V any](name string) RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		if len(name) > 0 {
			t.name = name
		}
	}
}

// WithRBTreeMaxSize bounds the number of values, inserts beyond it fail
// with ErrLength.
func WithRBTreeMaxSize[K any, V any](maxSize int64) RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		if maxSize >= 0 {
			t.maxSize = maxSize
		}
	}
}

// WithRBTreeNodeLimit bounds the live nodes of the node allocator,
// allocations beyond it fail with alloc.ErrOutOfMemory.
func WithRBTreeNodeLimit[K any, V any](limit int64) RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		t.nodeLimit = limit
	}
}

func WithRBTreeNodeChunkSize[K any, V any](size int) RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		t.nodeChunkSize = size
	}
}

func WithRBTreeLogger[K any, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func WithRBTreeStats[K any, V any]() RBTreeOpt[K, V] {
	return func(t *rbTree[K, V]) {
		t.isStatsEnabled = true
	}
}

// NewRBTree orders the values by the natural order of their keys.
func NewRBTree[K infra.OrderedKey, V any](keyOf func(V) K, opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return NewRBTreeWithComparator[K, V](
		keyOf,
		infra.Comparator[K](infra.DefaultOrderedKeyComparator[K]()),
		opts...,
	)
}

func NewRBTreeWithComparator[K any, V any](
	keyOf func(V) K,
	cmp infra.Comparator[K],
	opts ...RBTreeOpt[K, V],
) RBTree[K, V] {
	return newRBTree[K, V](keyOf, cmp, opts...)
}

func newRBTree[K any, V any](
	keyOf func(V) K,
	cmp infra.Comparator[K],
	opts ...RBTreeOpt[K, V],
) *rbTree[K, V] {
	if keyOf == nil || cmp == nil {
		panic( /* debug assertion */ "[rbtree] nil key extractor or comparator")
	}
	tree := &rbTree[K, V]{
		header:  &rbHeader[V]{},
		keyOf:   keyOf,
		kcmp:    cmp,
		name:    "default",
		maxSize: -1,
	}
	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	if tree.isDesc {
		tree.kcmp = tree.kcmp.Reverse()
	}
	if tree.logger == nil {
		tree.logger = xlog.NewNopXLogger()
	}
	tree.nodes = alloc.NewAllocator[rbNode[V]](
		alloc.WithAllocatorName[rbNode[V]](tree.name),
		alloc.WithAllocatorLimit[rbNode[V]](tree.nodeLimit),
		alloc.WithAllocatorChunkSize[rbNode[V]](tree.nodeChunkSize),
		alloc.WithAllocatorLogger[rbNode[V]](tree.logger),
	)
	if tree.maxSize < 0 {
		tree.maxSize = math.MaxInt64 / int64(unsafe.Sizeof(rbNode[V]{}))
	}
	if tree.isStatsEnabled {
		tree.stats = newRBTreeStats(tree.name)
	}
	return tree
}
