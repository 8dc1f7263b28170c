package alloc

import (
	"fmt"
	"math"
	"strconv"
	"unsafe"

	"go.uber.org/zap"

	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/xlog"
)

const defaultChunkSize = 64

// maxBlockBytes bounds a single block by the heap address space the
// runtime hands out. Larger requests fail before reaching make.
const maxBlockBytes = int64(1) << (min(strconv.IntSize, 48) - 1)

var _ Allocator[struct{}] = (*slabAllocator[struct{}])(nil)

// slabAllocator hands out single slots from fixed size chunks and keeps
// the released ones in a free list. Chunks are never grown or moved, so
// a slot address is stable until it is deallocated.
// Multi slots blocks are contiguous and allocated directly.
//
// The chunks are private to one allocator and only back AllocateOne.
// There is no pluggable pool or arena: callers cannot hand in memory,
// and every block comes from the Go heap.
type slabAllocator[T any] struct {
	name           string
	chunks         [][]T
	free           []*T
	chunkSize      int
	offset         int // Next unused slot in the last chunk.
	limit          int64
	live           int64
	logger         xlog.XLogger
	stats          *allocatorStats
	isStatsEnabled bool
}

func (a *slabAllocator[T]) MaxSize() int64 {
	var zero T
	size := int64(unsafe.Sizeof(zero))
	maxSize := int64(math.MaxInt64)
	if size > 0 {
		maxSize = maxBlockBytes / size
	}
	if a.limit > 0 && a.limit < maxSize {
		return a.limit
	}
	return maxSize
}

func (a *slabAllocator[T]) Live() int64 {
	return a.live
}

func (a *slabAllocator[T]) outOfMemory(n int64, msg string) error {
	err := infra.WrapErrorStackWithMessage(ErrOutOfMemory, msg)
	a.stats.IncreaseFailedCount()
	a.logger.ErrorStack(err, "[alloc] allocation failed",
		zap.String("allocator", a.name),
		zap.Int64("requested", n),
	)
	return err
}

// admit checks n more slots against the bound. Nothing is counted until
// commit, so a failed make leaves live and the stats untouched.
func (a *slabAllocator[T]) admit(n int64) error {
	if n > a.MaxSize()-a.live {
		return a.outOfMemory(n, fmt.Sprintf("allocate %d slots with %d live, max %d", n, a.live, a.MaxSize()))
	}
	return nil
}

func (a *slabAllocator[T]) commit(n int64) {
	a.live += n
	a.stats.RecordAllocate(n)
}

func (a *slabAllocator[T]) makeBlock(n int) (block []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			block, err = nil, a.outOfMemory(int64(n), fmt.Sprintf("make %d slots: %v", n, r))
		}
	}()
	return make([]T, n), nil
}

func (a *slabAllocator[T]) slot() *T {
	if l := len(a.free); l > 0 {
		p := a.free[l-1]
		a.free[l-1] = nil
		a.free = a.free[:l-1]
		return p
	}
	if len(a.chunks) == 0 || a.offset >= a.chunkSize {
		a.chunks = append(a.chunks, make([]T, a.chunkSize))
		a.offset = 0
	}
	chunk := a.chunks[len(a.chunks)-1]
	p := &chunk[a.offset]
	a.offset++
	return p
}

func (a *slabAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, infra.WrapErrorStackWithMessage(ErrLength, fmt.Sprintf("allocate negative %d slots", n))
	}
	if n == 0 {
		return nil, nil
	}
	if err := a.admit(int64(n)); err != nil {
		return nil, err
	}
	block, err := a.makeBlock(n)
	if err != nil {
		return nil, err
	}
	a.commit(int64(n))
	return block, nil
}

func (a *slabAllocator[T]) AllocateOne() (*T, error) {
	if err := a.admit(1); err != nil {
		return nil, err
	}
	a.commit(1)
	return a.slot(), nil
}

// Deallocate never feeds the chunk free list, so any sub block of an
// Allocate block only drops the live count.
func (a *slabAllocator[T]) Deallocate(block []T) {
	if len(block) == 0 {
		return
	}
	clear(block)
	a.live -= int64(len(block))
	a.stats.RecordDeallocate(int64(len(block)))
}

func (a *slabAllocator[T]) DeallocateOne(p *T) {
	if p == nil {
		return
	}
	var zero T
	*p = zero
	a.free = append(a.free, p)
	a.live--
	a.stats.RecordDeallocate(1)
}

func (a *slabAllocator[T]) Construct(p *T) error {
	return Construct[T](p)
}

func (a *slabAllocator[T]) ConstructValue(p *T, v T) error {
	return ConstructValue[T](p, v)
}

func (a *slabAllocator[T]) ConstructWith(p *T, ctor Constructor[T]) error {
	return ConstructWith[T](p, ctor)
}

func (a *slabAllocator[T]) Destroy(p *T) {
	Destroy[T](p)
}

func (a *slabAllocator[T]) DestroyRange(block []T) {
	DestroyRange[T](block)
}

func (a *slabAllocator[T]) Release() {
	a.logger.Debug("[alloc] release chunks",
		zap.String("allocator", a.name),
		zap.Int("chunks", len(a.chunks)),
		zap.Int64("live", a.live),
	)
	clear(a.chunks)
	a.chunks = nil
	clear(a.free)
	a.free = nil
	a.offset = 0
}

func WithAllocatorName[T any](name string) AllocatorOpt[T] {
	return func(a *slabAllocator[T]) {
		a.name = name
	}
}

// WithAllocatorLimit bounds the live slots. Requests beyond it fail
// with ErrOutOfMemory.
func WithAllocatorLimit[T any](limit int64) AllocatorOpt[T] {
	return func(a *slabAllocator[T]) {
		if limit > 0 {
			a.limit = limit
		}
	}
}

func WithAllocatorChunkSize[T any](size int) AllocatorOpt[T] {
	return func(a *slabAllocator[T]) {
		if size > 0 {
			a.chunkSize = size
		}
	}
}

func WithAllocatorLogger[T any](logger xlog.XLogger) AllocatorOpt[T] {
	return func(a *slabAllocator[T]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithAllocatorStats[T any]() AllocatorOpt[T] {
	return func(a *slabAllocator[T]) {
		a.isStatsEnabled = true
	}
}

func NewAllocator[T any](opts ...AllocatorOpt[T]) Allocator[T] {
	a := &slabAllocator[T]{
		name:      "default",
		chunkSize: defaultChunkSize,
	}
	for _, o := range opts {
		if o != nil {
			o(a)
		}
	}
	if a.logger == nil {
		a.logger = xlog.NewNopXLogger()
	}
	if a.isStatsEnabled {
		a.stats = newAllocatorStats(a.name)
	}
	return a
}
