package alloc

import (
	"go.uber.org/multierr"

	"github.com/benz9527/xstl/lib/infra"
)

// IsTriviallyDestructible reports whether destroying a T is nothing more
// than forgetting it.
func IsTriviallyDestructible[T any]() bool {
	_, ok := any((*T)(nil)).(Destructible)
	return !ok
}

// IsTriviallyCopyable reports whether a T copy is a flat memory copy.
func IsTriviallyCopyable[T any]() bool {
	_, ok := any((*T)(nil)).(Cloner[T])
	return !ok
}

// IsTriviallyMovable reports whether a T move is a flat memory copy.
// A type without a Mover falls back to its Cloner.
func IsTriviallyMovable[T any]() bool {
	if _, ok := any((*T)(nil)).(Mover[T]); ok {
		return false
	}
	return IsTriviallyCopyable[T]()
}

func constructErr(err error, msg string) error {
	return infra.WrapErrorStackWithMessage(multierr.Combine(ErrConstruct, err), msg)
}

// Construct builds the zero value at p.
func Construct[T any](p *T) error {
	var zero T
	*p = zero
	return nil
}

// ConstructValue copy constructs v at p.
func ConstructValue[T any](p *T, v T) error {
	return copyConstruct(p, &v)
}

// ConstructWith runs ctor over the zeroed slot p. The slot is zeroed again
// if ctor fails, so nothing half built survives.
func ConstructWith[T any](p *T, ctor Constructor[T]) error {
	var zero T
	*p = zero
	if ctor == nil {
		return nil
	}
	if err := ctor(p); err != nil {
		*p = zero
		return constructErr(err, "constructor with arguments failed")
	}
	return nil
}

func copyConstruct[T any](dst, src *T) error {
	c, ok := any(src).(Cloner[T])
	if !ok {
		*dst = *src
		return nil
	}
	var zero T
	*dst = zero
	if err := c.CloneInto(dst); err != nil {
		*dst = zero
		return constructErr(err, "copy constructor failed")
	}
	return nil
}

func moveConstruct[T any](dst, src *T) error {
	m, ok := any(src).(Mover[T])
	if !ok {
		return copyConstruct(dst, src)
	}
	var zero T
	*dst = zero
	if err := m.MoveInto(dst); err != nil {
		*dst = zero
		return constructErr(err, "move constructor failed")
	}
	return nil
}

// Destroy ends the lifetime of the value at p and leaves zeroed raw memory.
func Destroy[T any](p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(Destructible); ok {
		d.Destruct()
	}
	var zero T
	*p = zero
}

func DestroyRange[T any](block []T) {
	if len(block) == 0 {
		return
	}
	if !IsTriviallyDestructible[T]() {
		for i := range block {
			any(&block[i]).(Destructible).Destruct()
		}
	}
	clear(block)
}
