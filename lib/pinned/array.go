// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pinned

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/bureau-foundation/memlock/lib/pages"
)

// Array holds a fixed-length sequence of T in pinned, page-backed
// memory. It exclusively owns its backing region: Arrays are never
// copied, shared, or rebuilt over the same pages.
//
// An Array must not be copied after creation. Use Close to release
// the region when the contents are no longer needed; after Close,
// any access through Slice panics.
type Array[T any] struct {
	region  pages.Region
	elems   []T
	length  int
	size    int
	cleanup runtime.Cleanup
	closed  bool
}

// New allocates a pinned array of length elements, each initialized
// to an independent copy of prototype, written in slot order. The
// reservation is the smallest whole number of pages covering the
// elements.
//
// New panics when pinned memory cannot be obtained (including when
// the process's locked-memory limit is exhausted), when length is not
// positive, and when the element layout cannot be honored: an element
// alignment above the page size is unsupported, and an element count
// whose total byte size overflows is unrepresentable. A caller that
// asked for pinned storage cannot safely continue without it, so
// these conditions never return as errors.
func New[T any](prototype T, length int) *Array[T] {
	if length < 1 {
		panic(fmt.Sprintf("pinned: array length must be positive, got %d", length))
	}

	elemSize := int(unsafe.Sizeof(prototype))
	if align := int(unsafe.Alignof(prototype)); align > pages.PageSize {
		panic(fmt.Sprintf("pinned: element alignment %d exceeds the %d-byte page size", align, pages.PageSize))
	}
	if elemSize > 0 && length > (math.MaxInt-pages.PageSize+1)/elemSize {
		panic(fmt.Sprintf("pinned: %d elements of %d bytes overflow the address space", length, elemSize))
	}

	// Round up to whole pages. A zero-size element type rounds to a
	// zero-byte reservation, which the provider rejects below.
	size := (length*elemSize + pages.PageSize - 1) &^ (pages.PageSize - 1)

	region, err := pages.Reserve(size)
	if err != nil {
		panic(fmt.Sprintf("pinned: reserving %d bytes of pinned memory: %v", size, err))
	}

	elems := unsafe.Slice((*T)(unsafe.Pointer(&region.Bytes()[0])), length)
	for index := range elems {
		elems[index] = prototype
	}

	array := &Array[T]{
		region: region,
		elems:  elems,
		length: length,
		size:   size,
	}
	// Backstop: release the region if the array is dropped without
	// Close. Close stops this, keeping release exactly-once.
	array.cleanup = runtime.AddCleanup(array, func(region pages.Region) {
		pages.Release(region)
	}, region)

	return array
}

// Slice returns the elements as a mutable slice backed directly by
// the pinned pages, with native slice semantics for indexing,
// assignment, iteration, and subslicing; writing one element never
// disturbs another. The slice must not be appended to (that would
// move the data to ordinary heap memory) and must not be retained
// past Close.
//
// Panics if the array has been closed.
func (a *Array[T]) Slice() []T {
	if a.closed {
		panic("pinned: access to closed array")
	}
	return a.elems
}

// Len returns the element count. Valid even after Close.
func (a *Array[T]) Len() int {
	return a.length
}

// Size returns the reserved byte count: the smallest multiple of the
// page size covering Len elements. Valid even after Close.
func (a *Array[T]) Size() int {
	return a.size
}

// Close releases the backing region. Idempotent; after the first
// call, Slice panics and the memory must not be touched through any
// previously obtained view.
func (a *Array[T]) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.cleanup.Stop()
	pages.Release(a.region)
	a.region = pages.Region{}
	a.elems = nil
}
