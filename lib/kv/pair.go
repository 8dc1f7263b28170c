package kv

import (
	"github.com/benz9527/xstl/lib/alloc"
)

var (
	_ alloc.Cloner[Pair[int, int]] = (*Pair[int, int])(nil)
	_ alloc.Destructible           = (*Pair[int, int])(nil)
)

type Pair[K any, V any] struct {
	Key K
	Val V
}

func MakePair[K any, V any](key K, val V) Pair[K, V] {
	return Pair[K, V]{Key: key, Val: val}
}

func pairKey[K any, V any](p Pair[K, V]) K {
	return p.Key
}

// CloneInto copies the key and the value with their own lifecycle.
// The key is destroyed again if the value fails.
func (p *Pair[K, V]) CloneInto(dst *Pair[K, V]) error {
	if err := alloc.ConstructValue[K](&dst.Key, p.Key); err != nil {
		return err
	}
	if err := alloc.ConstructValue[V](&dst.Val, p.Val); err != nil {
		alloc.Destroy[K](&dst.Key)
		return err
	}
	return nil
}

func (p *Pair[K, V]) Destruct() {
	alloc.Destroy[K](&p.Key)
	alloc.Destroy[V](&p.Val)
}
