// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package pages

import (
	"golang.org/x/sys/unix"
)

// reservePages maps, pins, and dump-protects size bytes. Each step
// rolls back the earlier ones on failure, so an error never leaves a
// dangling reservation.
func reservePages(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, &OSError{Op: "mmap", Err: err}
	}

	// Lock the mapping into physical RAM. Without this the pages
	// could be written to swap, which is the one thing this package
	// exists to prevent.
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, &OSError{Op: "mlock", Err: err}
	}

	// Exclude from core dumps. A dump is written to disk, so a
	// region that survives in one defeats the pinning.
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, &OSError{Op: "madvise", Err: err}
	}

	return data, nil
}

// releasePages unpins and unmaps a reservation. Errors are ignored:
// neither call fails for a slice exactly as reservePages returned it.
func releasePages(data []byte) {
	unix.Munlock(data)
	unix.Munmap(data)
}
