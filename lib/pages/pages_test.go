// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"errors"
	"testing"

	"github.com/prometheus/procfs"
)

// lockedBytes reads the kernel's count of memory locked by this
// process (VmLck in /proc/self/status).
func lockedBytes(t *testing.T) uint64 {
	t.Helper()

	process, err := procfs.Self()
	if err != nil {
		t.Fatalf("opening /proc/self: %v", err)
	}
	status, err := process.NewStatus()
	if err != nil {
		t.Fatalf("reading process status: %v", err)
	}
	return status.VmLck
}

func TestReserve_UnalignedSize(t *testing.T) {
	for _, size := range []int{1, 100, PageSize - 1, PageSize + 1, 3*PageSize + 7} {
		_, err := Reserve(size)
		if err == nil {
			t.Fatalf("Reserve(%d) succeeded, want alignment error", size)
		}

		var alignError *AlignError
		if !errors.As(err, &alignError) {
			t.Fatalf("Reserve(%d) returned %T, want *AlignError", size, err)
		}
		if alignError.Size != size {
			t.Errorf("AlignError.Size = %d, want %d", alignError.Size, size)
		}
	}
}

func TestReserve_ZeroAndNegativeSize(t *testing.T) {
	for _, size := range []int{0, -1, -PageSize} {
		_, err := Reserve(size)
		var alignError *AlignError
		if !errors.As(err, &alignError) {
			t.Fatalf("Reserve(%d) returned %v, want *AlignError", size, err)
		}
	}
}

func TestReserve_UnalignedSize_ReservesNothing(t *testing.T) {
	baseline := lockedBytes(t)

	if _, err := Reserve(PageSize + 1); err == nil {
		t.Fatal("Reserve succeeded, want alignment error")
	}

	if locked := lockedBytes(t); locked != baseline {
		t.Errorf("locked memory changed from %d to %d bytes on a rejected request", baseline, locked)
	}
}

func TestReserve_SinglePage(t *testing.T) {
	region, err := Reserve(PageSize)
	if err != nil {
		t.Fatalf("Reserve(%d) failed: %v", PageSize, err)
	}
	defer Release(region)

	if region.Len() != PageSize {
		t.Errorf("region length = %d, want %d", region.Len(), PageSize)
	}

	data := region.Bytes()
	if len(data) != PageSize {
		t.Fatalf("Bytes() length = %d, want %d", len(data), PageSize)
	}

	// Anonymous mappings come zero-filled from the kernel.
	for index, value := range data {
		if value != 0 {
			t.Fatalf("expected zero at byte %d, got %d", index, value)
		}
	}

	// The region is ordinary read-write memory.
	data[0] = 0xAB
	data[PageSize-1] = 0xCD
	if data[0] != 0xAB || data[PageSize-1] != 0xCD {
		t.Error("writes to the region did not read back")
	}
}

func TestReserve_MultiplePages(t *testing.T) {
	size := 4 * PageSize
	region, err := Reserve(size)
	if err != nil {
		t.Fatalf("Reserve(%d) failed: %v", size, err)
	}
	defer Release(region)

	if region.Len() != size {
		t.Errorf("region length = %d, want %d", region.Len(), size)
	}
}

func TestReserve_LockedMemoryAccounting(t *testing.T) {
	baseline := lockedBytes(t)

	region, err := Reserve(2 * PageSize)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	afterReserve := lockedBytes(t)
	if want := baseline + 2*PageSize; afterReserve != want {
		t.Errorf("locked memory after Reserve = %d bytes, want %d", afterReserve, want)
	}

	Release(region)

	if afterRelease := lockedBytes(t); afterRelease != baseline {
		t.Errorf("locked memory after Release = %d bytes, want baseline %d", afterRelease, baseline)
	}
}

func TestRelease_ZeroRegion(t *testing.T) {
	// Must not panic or touch the kernel.
	Release(Region{})
}
