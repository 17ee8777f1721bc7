package chjoin

import "sync/atomic"

// UsedFlags is the per-disjunct atomic usage-bit vector tracking
// which right rows have been claimed by a probe. When a join shape
// does not need flags, GetUsed always reports true (so non-joined
// emission skips every row) and SetUsed/SetUsedOnce are no-ops,
// matching the "not needed" behavior without branching at every call
// site.
type UsedFlags struct {
	bits []uint32 // one entry per bucket + 1, per disjunct invariant 4
	needed bool
}

func newUsedFlags(bucketCount int, needed bool) *UsedFlags {
	if !needed {
		return &UsedFlags{needed: false}
	}
	return &UsedFlags{bits: make([]uint32, bucketCount+1), needed: true}
}

// SetUsed is a relaxed store.
func (f *UsedFlags) SetUsed(offset uint32) {
	if !f.needed {
		return
	}
	atomic.StoreUint32(&f.bits[offset], 1)
}

// GetUsed is a relaxed load.
func (f *UsedFlags) GetUsed(offset uint32) bool {
	if !f.needed {
		return true
	}
	return atomic.LoadUint32(&f.bits[offset]) != 0
}

// SetUsedOnce is the sole-claimant primitive: a relaxed read followed
// by a compare-and-swap, returning true exactly for the thread that
// wins the claim.
func (f *UsedFlags) SetUsedOnce(offset uint32) bool {
	if !f.needed {
		// Without flags there is no notion of "claiming"; every
		// probing row is free to emit (Left+Any/RightAny never
		// allocates flags, and those shapes never call SetUsedOnce in
		// the first place).
		return true
	}
	if atomic.LoadUint32(&f.bits[offset]) != 0 {
		return false
	}
	return atomic.CompareAndSwapUint32(&f.bits[offset], 0, 1)
}

func (f *UsedFlags) Needed() bool { return f.needed }
func (f *UsedFlags) Len() int { return len(f.bits) }
