// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"fmt"
)

// PageSize is the virtual memory page size, in bytes, on the supported
// platform. Every reservation covers a whole number of pages.
const PageSize = 4096

// Region is a block of pinned memory obtained from Reserve. Its base
// address is page-aligned and its length is a positive multiple of
// PageSize. A Region is exclusively owned: exactly one holder accesses
// it and eventually passes it to Release, and Regions are never shared
// between holders.
//
// The zero Region is empty; Release accepts it as a no-op.
type Region struct {
	data []byte
}

// Bytes returns the reserved memory, zero-filled by the kernel at
// reservation time. The slice points directly at the pinned mapping:
// it must not be appended to, and must not be touched after the Region
// is released.
func (r Region) Bytes() []byte {
	return r.data
}

// Len returns the reserved length in bytes.
func (r Region) Len() int {
	return len(r.data)
}

// AlignError reports a reservation size that is not a positive
// multiple of PageSize.
type AlignError struct {
	Size int
}

func (e *AlignError) Error() string {
	return fmt.Sprintf("pages: size %d is not a positive multiple of the %d-byte page size", e.Size, PageSize)
}

// OSError reports a kernel call that failed while setting up a
// reservation. Op names the call (mmap, mlock, madvise); Err holds
// the underlying errno and is exposed through Unwrap for errors.Is.
type OSError struct {
	Op  string
	Err error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("pages: %s: %v", e.Op, e.Err)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// Reserve obtains size bytes of anonymous, private, read-write memory
// from the kernel, pinned into physical RAM so it cannot be written to
// swap, and excluded from core dumps.
//
// size must be a positive multiple of PageSize; any other value fails
// with *AlignError before a kernel call is made. A kernel failure
// fails with *OSError, and any partially established mapping is torn
// down first, so an error return never leaves memory reserved.
//
// On success the caller owns the Region and must eventually pass it
// to Release.
func Reserve(size int) (Region, error) {
	if size <= 0 || size%PageSize != 0 {
		return Region{}, &AlignError{Size: size}
	}
	data, err := reservePages(size)
	if err != nil {
		return Region{}, err
	}
	return Region{data: data}, nil
}

// Release returns a Region obtained from Reserve to the kernel,
// unpinning and unmapping it. The operation is unchecked: the Region
// must be exactly as Reserve returned it, and passing anything else is
// undefined behavior. Failures are not reported: munmap does not fail
// for a valid mapping, and there is no caller-side recovery anyway.
//
// After Release the Region's memory must not be accessed. Releasing
// the zero Region is a no-op.
func Release(region Region) {
	if region.data == nil {
		return
	}
	releasePages(region.data)
}
