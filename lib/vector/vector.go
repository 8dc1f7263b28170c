package vector

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/xlog"
)

const minCapacity = 16

var _ Vector[int] = (*vector[int])(nil)

type vector[T any] struct {
	block          []T // len(block) is the capacity
	size           int
	slots          alloc.Allocator[T]
	logger         xlog.XLogger
	name           string
	limit          int64
	isStatsEnabled bool
}

func (vec *vector[T]) Len() int {
	return vec.size
}

func (vec *vector[T]) Cap() int {
	return len(vec.block)
}

func (vec *vector[T]) Empty() bool {
	return vec.size == 0
}

func (vec *vector[T]) MaxSize() int {
	if maxSize := vec.slots.MaxSize(); maxSize < math.MaxInt {
		return int(maxSize)
	}
	return math.MaxInt
}

func (vec *vector[T]) outOfRange(msg string) error {
	return infra.WrapErrorStackWithMessage(ErrOutOfRange, fmt.Sprintf("%s, len %d", msg, vec.size))
}

// checkLength has to be called before any mutation which adds n values.
func (vec *vector[T]) checkLength(n int) error {
	if maxSize := vec.MaxSize(); n < 0 || n > maxSize-vec.size {
		err := infra.WrapErrorStackWithMessage(
			ErrLength,
			fmt.Sprintf("add %d values into vector with %d values, max %d", n, vec.size, maxSize),
		)
		vec.logger.ErrorStack(err, "[vector] length violation",
			zap.String("vector", vec.name),
		)
		return err
	}
	return nil
}

// recommend returns the capacity to hold n values. The capacity grows
// at least twice.
func (vec *vector[T]) recommend(n int) int {
	c := max(2*len(vec.block), n, minCapacity)
	if maxSize := vec.MaxSize(); c > maxSize || c < 0 {
		return maxSize
	}
	return c
}

// dropMoved ends the values left behind by a move. Flat moved values are
// owned by the destination now, so they are forgotten instead.
func (vec *vector[T]) dropMoved(src []T) {
	if alloc.IsTriviallyMovable[T]() {
		clear(src)
		return
	}
	vec.slots.DestroyRange(src)
}

// reallocate moves the values into a new block with capacity c.
func (vec *vector[T]) reallocate(c int) error {
	var (
		block []T
		err   error
	)
	if c > 0 {
		if block, err = vec.slots.Allocate(c); err != nil {
			return err
		}
		if _, err = alloc.UninitializedMove[T](vec.block[:vec.size], block); err != nil {
			vec.slots.Deallocate(block)
			vec.logger.ErrorStack(err, "[vector] reallocation rolled back",
				zap.String("vector", vec.name),
				zap.Int("cap", c),
			)
			return err
		}
	}
	vec.logger.Debug("[vector] reallocate",
		zap.String("vector", vec.name),
		zap.Int("from", len(vec.block)),
		zap.Int("to", c),
	)
	vec.dropMoved(vec.block[:vec.size])
	vec.slots.Deallocate(vec.block)
	vec.block = block
	return nil
}

func (vec *vector[T]) growFor(n int) error {
	if n <= len(vec.block)-vec.size {
		return nil
	}
	if err := vec.checkLength(n); err != nil {
		return err
	}
	return vec.reallocate(vec.recommend(vec.size + n))
}

func (vec *vector[T]) At(i int) (T, error) {
	if i < 0 || i >= vec.size {
		var zero T
		return zero, vec.outOfRange(fmt.Sprintf("at %d", i))
	}
	return vec.block[i], nil
}

func (vec *vector[T]) Front() T {
	if vec.size == 0 {
		panic( /* debug assertion */ "[vector] front of empty vector")
	}
	return vec.block[0]
}

func (vec *vector[T]) Back() T {
	if vec.size == 0 {
		panic( /* debug assertion */ "[vector] back of empty vector")
	}
	return vec.block[vec.size-1]
}

func (vec *vector[T]) emplaceBack(build alloc.Constructor[T]) error {
	if err := vec.growFor(1); err != nil {
		return err
	}
	if err := build(&vec.block[vec.size]); err != nil {
		return err
	}
	vec.size++
	return nil
}

func (vec *vector[T]) PushBack(v T) error {
	return vec.emplaceBack(func(p *T) error {
		return vec.slots.ConstructValue(p, v)
	})
}

func (vec *vector[T]) EmplaceBack(ctor alloc.Constructor[T]) error {
	return vec.emplaceBack(func(p *T) error {
		return vec.slots.ConstructWith(p, ctor)
	})
}

func (vec *vector[T]) PopBack() {
	if vec.size == 0 {
		panic( /* debug assertion */ "[vector] pop back of empty vector")
	}
	vec.size--
	vec.slots.Destroy(&vec.block[vec.size])
}

/*
Insert within the capacity copies vals aside first, then shifts the tail.

	[0, pos) [pos, size)         [0, pos) vals [pos, size)
	+-------+----------+----+    +-------+----+----------+
	|   a   |    b     |raw| => |   a   | v  |    b     |
	+-------+----------+----+    +-------+----+----------+

Insert beyond the capacity builds the new block as
copy(vals), move(a), move(b) and drops the old block at last.
*/
func (vec *vector[T]) Insert(pos int, vals ...T) error {
	if pos < 0 || pos > vec.size {
		return vec.outOfRange(fmt.Sprintf("insert at %d", pos))
	}
	n := len(vals)
	if n == 0 {
		return nil
	}
	if n <= len(vec.block)-vec.size {
		tmp := make([]T, n)
		if _, err := alloc.UninitializedCopy[T](vals, tmp); err != nil {
			return err
		}
		copy(vec.block[pos+n:vec.size+n], vec.block[pos:vec.size])
		copy(vec.block[pos:pos+n], tmp)
		vec.size += n
		return nil
	}

	if err := vec.checkLength(n); err != nil {
		return err
	}
	c := vec.recommend(vec.size + n)
	block, err := vec.slots.Allocate(c)
	if err != nil {
		return err
	}
	if _, err = alloc.UninitializedCopy[T](vals, block[pos:pos+n]); err != nil {
		vec.slots.Deallocate(block)
		return err
	}
	if _, err = alloc.UninitializedMove[T](vec.block[:pos], block[:pos]); err != nil {
		vec.slots.DestroyRange(block[pos : pos+n])
		vec.slots.Deallocate(block)
		return err
	}
	if _, err = alloc.UninitializedMove[T](vec.block[pos:vec.size], block[pos+n:]); err != nil {
		vec.slots.DestroyRange(block[:pos+n])
		vec.slots.Deallocate(block)
		return err
	}
	vec.dropMoved(vec.block[:vec.size])
	vec.slots.Deallocate(vec.block)
	vec.block = block
	vec.size += n
	return nil
}

func (vec *vector[T]) Erase(pos int) error {
	if pos < 0 || pos >= vec.size {
		return vec.outOfRange(fmt.Sprintf("erase at %d", pos))
	}
	return vec.EraseRange(pos, pos+1)
}

func (vec *vector[T]) EraseRange(first, last int) error {
	if first < 0 || last > vec.size || first > last {
		return vec.outOfRange(fmt.Sprintf("erase range [%d, %d)", first, last))
	}
	n := last - first
	if n == 0 {
		return nil
	}
	vec.slots.DestroyRange(vec.block[first:last])
	copy(vec.block[first:], vec.block[last:vec.size])
	clear(vec.block[vec.size-n : vec.size])
	vec.size -= n
	return nil
}

func (vec *vector[T]) Resize(n int, v T) error {
	if n < 0 {
		return infra.WrapErrorStackWithMessage(ErrLength, fmt.Sprintf("resize to %d", n))
	}
	if n <= vec.size {
		vec.slots.DestroyRange(vec.block[n:vec.size])
		vec.size = n
		return nil
	}
	if err := vec.growFor(n - vec.size); err != nil {
		return err
	}
	if _, err := alloc.UninitializedFillN[T](vec.block[vec.size:n], n-vec.size, v); err != nil {
		return err
	}
	vec.size = n
	return nil
}

func (vec *vector[T]) Reserve(n int) error {
	if n <= len(vec.block) {
		return nil
	}
	if err := vec.checkLength(max(n-vec.size, 0)); err != nil {
		return err
	}
	return vec.reallocate(n)
}

func (vec *vector[T]) Assign(vals ...T) error {
	if len(vals) == 0 {
		vec.Clear()
		return nil
	}
	if err := vec.checkLength(max(len(vals)-vec.size, 0)); err != nil {
		return err
	}
	block, err := vec.slots.Allocate(max(len(vals), minCapacity))
	if err != nil {
		return err
	}
	if _, err = alloc.UninitializedCopy[T](vals, block); err != nil {
		vec.slots.Deallocate(block)
		return err
	}
	vec.Clear()
	vec.slots.Deallocate(vec.block)
	vec.block, vec.size = block, len(vals)
	return nil
}

func (vec *vector[T]) Clear() {
	vec.slots.DestroyRange(vec.block[:vec.size])
	vec.size = 0
}

func (vec *vector[T]) ShrinkToFit() error {
	if len(vec.block) == vec.size {
		return nil
	}
	return vec.reallocate(vec.size)
}

func (vec *vector[T]) Swap(other Vector[T]) {
	o, ok := other.(*vector[T])
	if !ok {
		panic( /* debug assertion */ "[vector] swap with unknown vector implementation")
	}
	vec.block, o.block = o.block, vec.block
	vec.size, o.size = o.size, vec.size
	vec.slots, o.slots = o.slots, vec.slots
}

// Clone shares the allocator with vec.
func (vec *vector[T]) Clone() (Vector[T], error) {
	c := &vector[T]{
		slots:          vec.slots,
		logger:         vec.logger,
		name:           vec.name,
		limit:          vec.limit,
		isStatsEnabled: vec.isStatsEnabled,
	}
	if vec.size == 0 {
		return c, nil
	}
	block, err := vec.slots.Allocate(vec.size)
	if err != nil {
		return nil, err
	}
	if _, err = alloc.UninitializedCopy[T](vec.block[:vec.size], block); err != nil {
		vec.slots.Deallocate(block)
		return nil, err
	}
	c.block, c.size = block, vec.size
	return c, nil
}

func (vec *vector[T]) Slice() []T {
	return vec.block[:vec.size:vec.size]
}

func (vec *vector[T]) Release() {
	vec.Clear()
	vec.slots.Deallocate(vec.block)
	vec.block = nil
	vec.slots.Release()
}

type VectorOpt[T any] func(*vector[T])

func WithVectorName[T any](name string) VectorOpt[T] {
	return func(vec *vector[T]) {
		if len(name) > 0 {
			vec.name = name
		}
	}
}

// WithVectorLimit bounds the live slots, the capacity included.
func WithVectorLimit[T any](limit int64) VectorOpt[T] {
	return func(vec *vector[T]) {
		vec.limit = limit
	}
}

func WithVectorLogger[T any](logger xlog.XLogger) VectorOpt[T] {
	return func(vec *vector[T]) {
		if logger != nil {
			vec.logger = logger
		}
	}
}

// WithVectorStats records the slots of the vector allocator.
func WithVectorStats[T any]() VectorOpt[T] {
	return func(vec *vector[T]) {
		vec.isStatsEnabled = true
	}
}

func NewVector[T any](opts ...VectorOpt[T]) Vector[T] {
	vec := &vector[T]{
		name: "default",
	}
	for _, o := range opts {
		if o != nil {
			o(vec)
		}
	}
	if vec.logger == nil {
		vec.logger = xlog.NewNopXLogger()
	}
	allocOpts := []alloc.AllocatorOpt[T]{
		alloc.WithAllocatorName[T](vec.name),
		alloc.WithAllocatorLimit[T](vec.limit),
		alloc.WithAllocatorLogger[T](vec.logger),
	}
	if vec.isStatsEnabled {
		allocOpts = append(allocOpts, alloc.WithAllocatorStats[T]())
	}
	vec.slots = alloc.NewAllocator[T](allocOpts...)
	return vec
}

// NewVectorFrom copies vals into a new vector.
func NewVectorFrom[T any](vals []T, opts ...VectorOpt[T]) (Vector[T], error) {
	vec := NewVector[T](opts...)
	if err := vec.Assign(vals...); err != nil {
		return nil, err
	}
	return vec, nil
}
