// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pages reserves pinned, page-granular memory directly from
// the kernel for holding secret material.
//
// A reservation is an anonymous, private, read-write mapping of a
// whole number of pages that is locked into physical RAM (mlock, so
// it can never be written to swap) and excluded from core dumps
// (MADV_DONTDUMP). The memory lives outside the Go heap, so the
// garbage collector never sees it and cannot copy or relocate it.
//
// The API surface is two functions over one handle type:
//
//   - [Reserve] -- obtains a pinned [Region] of a given byte size,
//     which must be a positive multiple of [PageSize]. Fails with
//     [AlignError] for a malformed size, or [OSError] when a kernel
//     call fails; a partially set up mapping is torn down before an
//     error returns, so failure never leaks a reservation.
//   - [Release] -- returns a Region to the kernel. Unchecked and
//     best-effort: the caller must pass the Region exactly as Reserve
//     produced it.
//
// Exactly one platform implementation is compiled into a build,
// selected by build constraint; building for an unsupported GOOS
// fails at compile time rather than falling back to unpinned memory.
//
// Most callers want lib/pinned, which manages sizing, initialization,
// and release on top of this package. Depends on golang.org/x/sys/unix.
// No other memlock dependencies.
package pages
