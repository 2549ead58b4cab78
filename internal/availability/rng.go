package availability

import "github.com/findcare/findcare/internal/hours"

// seedFor derives a stable 32-bit seed from a facility and service
// code pair using FNV-1a. The hash is hand-rolled rather than taken
// from hash/fnv so the exact constants stay pinned: generated slots
// must stay identical across releases for the same inputs.
func seedFor(facilityID, serviceCode string) uint32 {
	h := uint32(2166136261)
	for _, c := range []byte(facilityID + ":" + serviceCode) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// mulberry32 returns a deterministic PRNG yielding floats in [0, 1).
func mulberry32(seed uint32) hours.Rand {
	state := seed
	return func() float64 {
		state += 0x6d2b79f5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296
	}
}
