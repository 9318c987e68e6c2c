// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subsidy

import (
	"testing"

	"pgregory.net/rapid"
)

// TestHalvingDivisorMonotonic checks that HalvingDivisor is non-decreasing
// in height and exactly doubles every HalvingInterval blocks until it
// saturates (ok becomes false).
func TestHalvingDivisorMonotonic(t *testing.T) {
	p := testParams()

	rapid.Check(t, func(rt *rapid.T) {
		h := int32(rapid.Int64Range(int64(p.FirstHalvingHeight), int64(p.FirstHalvingHeight)+40*int64(p.HalvingInterval)).Draw(rt, "height"))

		dAt, okAt := HalvingDivisor(h, p)
		dNext, okNext := HalvingDivisor(h+p.HalvingInterval, p)

		if !okAt {
			return
		}
		if !okNext {
			return
		}
		if dNext != dAt*2 {
			rt.Fatalf("divisor at h+interval = %d, want 2x divisor at h (%d)", dNext, dAt)
		}
	})
}

// TestSubsidyZeroBeyondSaturation checks that the subsidy is zero once
// the halving count exceeds the representable range.
func TestSubsidyZeroBeyondSaturation(t *testing.T) {
	p := testParams()
	saturationHeight := p.FirstHalvingHeight + int32(maxHalvings)*p.HalvingInterval

	rapid.Check(t, func(rt *rapid.T) {
		extra := rapid.Int32Range(0, 1<<20).Draw(rt, "extra")
		got := Calc(saturationHeight+extra, p)
		if got != 0 {
			rt.Fatalf("Calc(%d) = %d, want 0 beyond saturation", saturationHeight+extra, got)
		}
	})
}

// TestNumHalvingsInvertsHeightForHalving checks that HeightForHalving is
// the exact boundary of each halving index: the k-th halving height maps
// back to k, and the height immediately before it maps to k-1.
func TestNumHalvingsInvertsHeightForHalving(t *testing.T) {
	p := testParams()

	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.Int64Range(1, 60).Draw(rt, "halvings")
		h := HeightForHalving(k, p)

		if got := NumHalvings(h, p); got != k {
			rt.Fatalf("NumHalvings(HeightForHalving(%d)) = %d", k, got)
		}
		if got := NumHalvings(h-1, p); got != k-1 {
			rt.Fatalf("NumHalvings(HeightForHalving(%d)-1) = %d, want %d", k, got, k-1)
		}
	})
}

// TestSubsidyAlwaysNonNegative checks that Calc never returns a negative
// subsidy for any height in the representable int32 range.
func TestSubsidyAlwaysNonNegative(t *testing.T) {
	p := testParams()

	rapid.Check(t, func(rt *rapid.T) {
		h := rapid.Int32().Draw(rt, "height")
		if Calc(h, p) < 0 {
			rt.Fatalf("Calc(%d) returned a negative subsidy", h)
		}
	})
}
