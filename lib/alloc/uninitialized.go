package alloc

import (
	"fmt"

	"github.com/benz9527/xstl/lib/infra"
)

// The uninitialized algorithms construct values into raw slots.
// Trivial element types take a flat memory copy or fill. The others
// construct element by element; if one of them fails, the constructed
// prefix is destroyed before the error returns, so the destination is
// raw memory again.

// constructGuard tracks the constructed prefix of dst and destroys it
// unless the bulk construction commits.
type constructGuard[T any] struct {
	dst         []T
	constructed int
	committed   bool
}

func (g *constructGuard[T]) commit() int {
	g.committed = true
	return g.constructed
}

func (g *constructGuard[T]) release() {
	if g.committed || g.constructed == 0 {
		return
	}
	DestroyRange[T](g.dst[:g.constructed])
	g.constructed = 0
}

func checkRange(n, src, dst int) error {
	if n < 0 || n > src {
		return infra.WrapErrorStackWithMessage(ErrLength, fmt.Sprintf("range n %d, source %d", n, src))
	}
	if n > dst {
		return infra.WrapErrorStackWithMessage(ErrLength, fmt.Sprintf("destination %d shorter than %d", dst, n))
	}
	return nil
}

// UninitializedCopy copy constructs src into dst and returns the number of
// constructed slots.
func UninitializedCopy[T any](src, dst []T) (int, error) {
	return UninitializedCopyN[T](src, len(src), dst)
}

func UninitializedCopyN[T any](src []T, n int, dst []T) (int, error) {
	if err := checkRange(n, len(src), len(dst)); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if IsTriviallyCopyable[T]() {
		return copy(dst[:n], src[:n]), nil
	}

	guard := &constructGuard[T]{dst: dst}
	defer guard.release()
	for i := 0; i < n; i++ {
		if err := copyConstruct[T](&dst[i], &src[i]); err != nil {
			return 0, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("uninitialized copy at %d", i))
		}
		guard.constructed++
	}
	return guard.commit(), nil
}

// UninitializedMove move constructs src into dst. The moved sources are
// left in whatever state their Mover defines, even if the move fails later.
func UninitializedMove[T any](src, dst []T) (int, error) {
	return UninitializedMoveN[T](src, len(src), dst)
}

func UninitializedMoveN[T any](src []T, n int, dst []T) (int, error) {
	if err := checkRange(n, len(src), len(dst)); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if IsTriviallyMovable[T]() {
		return copy(dst[:n], src[:n]), nil
	}

	guard := &constructGuard[T]{dst: dst}
	defer guard.release()
	for i := 0; i < n; i++ {
		if err := moveConstruct[T](&dst[i], &src[i]); err != nil {
			return 0, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("uninitialized move at %d", i))
		}
		guard.constructed++
	}
	return guard.commit(), nil
}

// UninitializedFill copy constructs val into every slot of dst.
func UninitializedFill[T any](dst []T, val T) error {
	_, err := UninitializedFillN[T](dst, len(dst), val)
	return err
}

func UninitializedFillN[T any](dst []T, n int, val T) (int, error) {
	if err := checkRange(n, n, len(dst)); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if IsTriviallyCopyable[T]() {
		dst[0] = val
		for i := 1; i < n; i <<= 1 {
			copy(dst[i:n], dst[:i])
		}
		return n, nil
	}

	guard := &constructGuard[T]{dst: dst}
	defer guard.release()
	for i := 0; i < n; i++ {
		if err := copyConstruct[T](&dst[i], &val); err != nil {
			return 0, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("uninitialized fill at %d", i))
		}
		guard.constructed++
	}
	return guard.commit(), nil
}
