package schnur

import (
	"fmt"
	"math"
)

// UnitWidth is the size in bytes of one stored code unit.
const UnitWidth = 4

// maxBytes bounds a single allocation in bytes on every GOARCH.
const maxBytes = math.MaxInt32

// maxUnits bounds a single allocation so byte sizes never overflow int.
const maxUnits = maxBytes / UnitWidth

// Allocator provides the storage behind buffers and conversion results.
// Returned slices are zeroed and have len == cap == n.
type Allocator interface {
	AllocUnits(n int) ([]rune, error)
	FreeUnits(buf []rune)

	// ShrinkUnits reduces buf to n units without copying. Buffers only use
	// it when a copying reallocation has failed.
	ShrinkUnits(buf []rune, n int) []rune

	AllocBytes(n int) ([]byte, error)
	FreeBytes(buf []byte)
}

// HeapAllocator allocates from the Go heap. Freeing only drops references.
type HeapAllocator struct{}

// DefaultAllocator is used by buffers created without WithAllocator.
var DefaultAllocator Allocator = HeapAllocator{}

// AllocUnits allocates n zeroed units.
func (HeapAllocator) AllocUnits(n int) ([]rune, error) {
	if n <= 0 || n > maxUnits {
		return nil, fmt.Errorf("%w: %d units", ErrAllocation, n)
	}
	return make([]rune, n), nil
}

// FreeUnits is a no-op; the garbage collector reclaims buf.
func (HeapAllocator) FreeUnits([]rune) {}

// ShrinkUnits clips buf to n units. The backing array is not released.
func (HeapAllocator) ShrinkUnits(buf []rune, n int) []rune {
	clear(buf[n:])
	return buf[:n:n]
}

// AllocBytes allocates n zeroed bytes.
func (HeapAllocator) AllocBytes(n int) ([]byte, error) {
	if n <= 0 || n > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, n)
	}
	return make([]byte, n), nil
}

// FreeBytes is a no-op; the garbage collector reclaims buf.
func (HeapAllocator) FreeBytes([]byte) {}

// LimitAllocator is a heap allocator with a fixed byte budget. Allocations
// that would exceed the budget fail with ErrAllocation. It is not safe for
// concurrent use.
type LimitAllocator struct {
	limit int
	used  int
}

// NewLimitAllocator returns an allocator that hands out at most limit bytes
// at any one time.
func NewLimitAllocator(limit int) *LimitAllocator {
	return &LimitAllocator{limit: limit}
}

// Used returns the number of bytes currently allocated.
func (a *LimitAllocator) Used() int { return a.used }

// Limit returns the byte budget.
func (a *LimitAllocator) Limit() int { return a.limit }

func (a *LimitAllocator) reserve(size int) error {
	if size <= 0 || size > a.limit-a.used {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrAllocation, size, a.used, a.limit)
	}
	a.used += size
	return nil
}

// AllocUnits allocates n units if the budget allows.
func (a *LimitAllocator) AllocUnits(n int) ([]rune, error) {
	if n <= 0 || n > maxUnits {
		return nil, fmt.Errorf("%w: %d units", ErrAllocation, n)
	}
	if err := a.reserve(n * UnitWidth); err != nil {
		return nil, err
	}
	return make([]rune, n), nil
}

// FreeUnits returns buf's capacity to the budget.
func (a *LimitAllocator) FreeUnits(buf []rune) {
	a.used -= cap(buf) * UnitWidth
}

// ShrinkUnits clips buf to n units and returns the tail to the budget.
func (a *LimitAllocator) ShrinkUnits(buf []rune, n int) []rune {
	a.used -= (cap(buf) - n) * UnitWidth
	clear(buf[n:])
	return buf[:n:n]
}

// AllocBytes allocates n bytes if the budget allows.
func (a *LimitAllocator) AllocBytes(n int) ([]byte, error) {
	if n <= 0 || n > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, n)
	}
	if err := a.reserve(n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// FreeBytes returns buf's capacity to the budget.
func (a *LimitAllocator) FreeBytes(buf []byte) {
	a.used -= cap(buf)
}
