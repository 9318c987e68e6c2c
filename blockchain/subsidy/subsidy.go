// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package subsidy computes the per-block coinbase reward schedule: the
// slow-start ramp to the base subsidy, followed by the Blossom halving at
// twice the pre-Blossom cadence.
package subsidy

import "github.com/toole-brendan/shell/chaincfg"

// maxHalvings is the number of halvings after which the 64-bit divisor
// would need to exceed the representable range; beyond this the subsidy
// is unconditionally zero.
const maxHalvings = 63

// Calc returns the subsidy in zatoshis for a block at the given height,
// under the given network parameters.
//
//   - Below SlowStartInterval, the subsidy ramps linearly from zero.
//   - From SlowStartInterval up to BlossomHeight, the subsidy is the flat
//     pre-Blossom base.
//   - From BlossomHeight onward, the subsidy is the post-Blossom base,
//     halved every HalvingInterval blocks starting at FirstHalvingHeight.
func Calc(height int32, params *chaincfg.Params) int64 {
	if height < 0 {
		return 0
	}

	if height < params.SlowStartInterval {
		return slowStartSubsidy(height, params)
	}

	if height < params.BlossomHeight {
		return params.PreBlossomSubsidy
	}

	return postBlossomSubsidy(height, params)
}

// slowStartSubsidy implements the linear ramp: per-block reward is
// floor(base * h / slow_start_interval). The base used is the pre-Blossom
// subsidy, matching Zcash's own slow-start ramp into its founders-reward
// era base.
func slowStartSubsidy(height int32, params *chaincfg.Params) int64 {
	if params.SlowStartInterval == 0 {
		return params.PreBlossomSubsidy
	}
	return (params.PreBlossomSubsidy * int64(height)) / int64(params.SlowStartInterval)
}

// postBlossomSubsidy implements the post-Blossom halving schedule.
func postBlossomSubsidy(height int32, params *chaincfg.Params) int64 {
	hPrime := int64(height) - int64(params.FirstHalvingHeight)
	if hPrime < 0 {
		return params.PostBlossomSubsidy
	}

	if params.HalvingInterval <= 0 {
		return params.PostBlossomSubsidy
	}

	k := hPrime/int64(params.HalvingInterval) + 1
	if k > maxHalvings {
		return 0
	}

	return params.PostBlossomSubsidy >> uint(k)
}

// NumHalvings returns the halving index k applied at height: zero before
// FirstHalvingHeight, one from FirstHalvingHeight onward, incrementing
// every HalvingInterval blocks.
func NumHalvings(height int32, params *chaincfg.Params) int64 {
	hPrime := int64(height) - int64(params.FirstHalvingHeight)
	if hPrime < 0 || params.HalvingInterval <= 0 {
		return 0
	}
	return hPrime/int64(params.HalvingInterval) + 1
}

// HeightForHalving returns the first height at which the k-th halving
// applies, for k >= 1.
func HeightForHalving(k int64, params *chaincfg.Params) int32 {
	if k < 1 {
		return params.FirstHalvingHeight
	}
	return params.FirstHalvingHeight + int32(k-1)*params.HalvingInterval
}

// HalvingDivisor returns 2^k, the divisor applied to the post-Blossom base
// subsidy at the given height, or false if k exceeds the representable
// range (in which case the subsidy is zero regardless of the divisor).
func HalvingDivisor(height int32, params *chaincfg.Params) (uint64, bool) {
	hPrime := int64(height) - int64(params.FirstHalvingHeight)
	if hPrime < 0 {
		return 1, true
	}
	if params.HalvingInterval <= 0 {
		return 1, true
	}

	k := hPrime/int64(params.HalvingInterval) + 1
	if k > maxHalvings {
		return 0, false
	}

	return uint64(1) << uint(k), true
}
