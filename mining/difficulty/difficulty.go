// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty implements the compact-bits target encoding and
// hash-vs-target comparisons shared by every proof-of-work consumer in
// this tree. It replaces the copy of this logic that used to live
// separately in the auxpow and mobilex mining packages.
package difficulty

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// CompactToBig converts the unsigned 32-bit compact representation of a
// whole number N to a big.Int. The representation is similar to IEEE754 floating
// point numbers: the high 8 bits hold the exponent and the low 23 bits hold
// the mantissa's significant digits, with the 24th bit as the sign.
//
// This compact form is used in the difficulty-target (Bits) field of a
// block header and is the same packing Bitcoin-family chains have used
// since Bitcoin's genesis.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number, the inverse of CompactToBig.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}

	return compact
}

// HashToBig converts a chainhash.Hash into a big.Int treating the hash as
// a 256-bit little-endian unsigned integer, the natural interpretation for
// comparing a proof-of-work hash against a compact target.
func HashToBig(hash *chainhash.Hash) *big.Int {
	var buf [chainhash.HashSize]byte
	for i := 0; i < chainhash.HashSize; i++ {
		buf[i] = hash[chainhash.HashSize-1-i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CalcWork calculates the expected amount of work a block with the given
// difficulty bits target represents, using the same 2^256/(target+1)
// approximation every Bitcoin-family chain uses for cumulative chain work.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

var (
	bigOne    = big.NewInt(1)
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// HashMeetsTarget reports whether hash, interpreted as a 256-bit unsigned
// integer, is less than or equal to the target encoded by bits. This is the
// proof-of-work acceptance check every miner and verifier in this tree
// shares, regardless of which hash function fed it.
func HashMeetsTarget(hash *chainhash.Hash, bits uint32) bool {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return false
	}
	return HashToBig(hash).Cmp(target) <= 0
}
