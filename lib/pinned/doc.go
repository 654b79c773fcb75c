// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pinned provides a fixed-length, generic array whose backing
// memory is pinned into physical RAM, for holding sensitive values
// (key material, secrets) that must never reach swap.
//
// [New] computes the page-rounded size for the requested element count,
// reserves a pinned region through lib/pages, and duplicates a
// caller-supplied prototype value into every slot. The elements are
// then exposed through [Array.Slice] as an ordinary mutable Go slice
// backed directly by the pinned pages, with no copying on access.
//
// Construction is fatal on failure: if the kernel cannot supply pinned
// memory, New panics rather than returning an error. Falling back to
// ordinary swappable memory would silently defeat the protection the
// caller asked for, which is never acceptable. Callers that want to
// handle reservation failure themselves can work below this
// abstraction with pages.Reserve directly.
//
// An Array owns its region exclusively and carries no internal
// locking; concurrent use requires external synchronization or
// transferring ownership to the consuming goroutine. Call
// [Array.Close] (typically deferred) to release the region; a
// runtime cleanup releases it as a backstop if an array is dropped
// unclosed. After Close, Slice panics.
//
// The element type must be a plain value type containing no Go
// pointers: the region lives outside the Go heap, so the garbage
// collector cannot see pointers stored in it and would free their
// targets. Every allocation is rounded up to whole 4096-byte pages,
// so many small arrays are better expressed as one larger one.
package pinned
