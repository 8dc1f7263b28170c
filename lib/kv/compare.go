package kv

import (
	"github.com/benz9527/xstl/lib/tree"
)

// Equal reports whether both maps hold the same pairs in the same order.
func Equal[K comparable, V comparable](lhs, rhs Ordered[K, V]) bool {
	return tree.Equal[K, Pair[K, V]](lhs.rbtree(), rhs.rbtree())
}

// EqualFunc compares the keys by the comparator of lhs and the values
// by eq.
func EqualFunc[K any, V any](lhs, rhs Ordered[K, V], eq func(a, b V) bool) bool {
	return tree.EqualFunc[K, Pair[K, V]](lhs.rbtree(), rhs.rbtree(), func(a, b Pair[K, V]) bool {
		return lhs.KeyCompare(a.Key, b.Key) == 0 && eq(a.Val, b.Val)
	})
}

// Compare orders the pair sequences lexicographically, a pair by its key
// first and then by its value.
func Compare[K any, V any](lhs, rhs Ordered[K, V], cmp func(a, b V) int) int {
	return tree.Compare[K, Pair[K, V]](lhs.rbtree(), rhs.rbtree(), func(a, b Pair[K, V]) int {
		if c := lhs.KeyCompare(a.Key, b.Key); c < 0 {
			return -1
		} else if c > 0 {
			return 1
		}
		return cmp(a.Val, b.Val)
	})
}

func Less[K any, V any](lhs, rhs Ordered[K, V], cmp func(a, b V) int) bool {
	return Compare[K, V](lhs, rhs, cmp) < 0
}
