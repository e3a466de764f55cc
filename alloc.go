package fractal

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"
)

// ErrAllocation is returned when the grid cannot be allocated.
var ErrAllocation = errors.New("allocation failed")

const rowHeaderSize = int64(unsafe.Sizeof([]uint8(nil)))

// HeapAllocator hands out grid memory from the Go heap.
// A positive Limit bounds the bytes held at any time; requests above it
// fail with ErrAllocation. Safe for concurrent use.
type HeapAllocator struct {
	Limit int64

	inUse atomic.Int64
}

var _ Allocator = (*HeapAllocator)(nil)

// InUse returns the number of bytes currently held.
func (a *HeapAllocator) InUse() int64 {
	return a.inUse.Load()
}

func (a *HeapAllocator) reserve(n int64) error {
	if a.Limit > 0 && n > a.Limit {
		return fmt.Errorf("%w: %d bytes requested, limit %d", ErrAllocation, n, a.Limit)
	}
	total := a.inUse.Add(n)
	if a.Limit > 0 && total > a.Limit {
		a.inUse.Add(-n)
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrAllocation, n, total-n, a.Limit)
	}
	return nil
}

func (a *HeapAllocator) AllocIndex(height int) ([][]uint8, error) {
	n, err := byteSize(int64(height), rowHeaderSize)
	if err != nil {
		return nil, err
	}
	if err := a.reserve(n); err != nil {
		return nil, err
	}
	return makeOrFail(a, n, func() [][]uint8 { return make([][]uint8, height) })
}

func (a *HeapAllocator) FreeIndex(index [][]uint8) {
	a.inUse.Add(-int64(len(index)) * rowHeaderSize)
}

// AllocRows allocates count rows as one segment.
func (a *HeapAllocator) AllocRows(count, width int) ([][]uint8, error) {
	n, err := byteSize(int64(count), int64(width))
	if err != nil {
		return nil, err
	}
	if err := a.reserve(n); err != nil {
		return nil, err
	}
	return makeOrFail(a, n, func() [][]uint8 {
		segment := make([]uint8, n)
		rows := make([][]uint8, count)
		for i := range rows {
			rows[i] = segment[i*width : (i+1)*width : (i+1)*width]
		}
		return rows
	})
}

// byteSize returns count*size or ErrAllocation when the product does not
// fit in an int64.
func byteSize(count, size int64) (int64, error) {
	if count < 0 || size < 0 || (size > 0 && count > math.MaxInt64/size) {
		return 0, fmt.Errorf("%w: %d x %d bytes overflows", ErrAllocation, count, size)
	}
	return count * size, nil
}

// makeOrFail runs alloc and turns a runtime refusal to allocate, such as a
// length beyond the address space, into ErrAllocation. The n reserved bytes
// are handed back in that case.
func makeOrFail(a *HeapAllocator, n int64, alloc func() [][]uint8) (rows [][]uint8, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.inUse.Add(-n)
			rows, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return alloc(), nil
}

func (a *HeapAllocator) FreeRows(rows [][]uint8) {
	var n int64
	for _, r := range rows {
		n += int64(len(r))
	}
	a.inUse.Add(-n)
}
