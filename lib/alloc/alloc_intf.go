package alloc

// Constructor builds a value in place. The slot p is zeroed raw memory.
// It captures any argument list the construction needs.
type Constructor[T any] func(p *T) error

// Destructible is implemented by *T when the value owns resources which
// must be released before its memory is reused.
type Destructible interface {
	Destruct()
}

// Cloner is implemented by *T when a plain assignment is not a valid copy.
// CloneInto receives raw memory in dst.
type Cloner[T any] interface {
	CloneInto(dst *T) error
}

// Mover is implemented by *T when the ownership transfer has to leave the
// source in a defined moved-from state. MoveInto receives raw memory in dst.
type Mover[T any] interface {
	MoveInto(dst *T) error
}

// Allocator separates the raw memory acquisition from the value lifecycle.
// Allocate and Deallocate never run constructors or destructors, Construct*
// and Destroy* never acquire or release memory.
type Allocator[T any] interface {
	// Allocate returns n zeroed slots. n == 0 returns a nil block.
	Allocate(n int) ([]T, error)
	AllocateOne() (*T, error)
	// Deallocate releases a block, or a sub block, returned by Allocate
	// without destroying the values. A nil or empty block is a no-op.
	// Slots of AllocateOne go back through DeallocateOne.
	Deallocate(block []T)
	DeallocateOne(p *T)

	Construct(p *T) error
	ConstructValue(p *T, v T) error
	ConstructWith(p *T, ctor Constructor[T]) error
	Destroy(p *T)
	DestroyRange(block []T)

	// Live is the number of slots handed out and not yet released.
	Live() int64
	MaxSize() int64
	// Release drops the cached chunks. Slots still in use stay valid.
	Release()
}

type AllocatorOpt[T any] func(*slabAllocator[T])
