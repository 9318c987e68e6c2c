// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package randomx

import (
	"errors"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btclog"

	"github.com/toole-brendan/shell/mining/difficulty"
	"github.com/toole-brendan/shell/wire"
)

// ErrInvalidSolution is returned when a header's RandomX hash exceeds the
// difficulty target encoded in Bits, or when Bits does not expand to a
// representable target at all.
var ErrInvalidSolution = errors.New("randomx: hash does not meet difficulty target")

// CacheCreationError wraps a failure allocating or re-keying the light-mode
// RandomX cache.
type CacheCreationError struct{ Err error }

func (e *CacheCreationError) Error() string {
	return "randomx: cache creation failed: " + e.Err.Error()
}
func (e *CacheCreationError) Unwrap() error { return e.Err }

// VMCreationError wraps a failure instantiating a RandomX VM against an
// already-allocated cache.
type VMCreationError struct{ Err error }

func (e *VMCreationError) Error() string { return "randomx: VM creation failed: " + e.Err.Error() }
func (e *VMCreationError) Unwrap() error { return e.Err }

// HashCalculationError wraps a failure turning a VM's raw hash output into a
// usable 32-byte digest.
type HashCalculationError struct{ Err error }

func (e *HashCalculationError) Error() string {
	return "randomx: hash calculation failed: " + e.Err.Error()
}
func (e *HashCalculationError) Unwrap() error { return e.Err }

// log is the package-level logger, left disabled until UseLogger is
// called by a caller that has a concrete btclog.Logger to hand it.
var log = btclog.Disabled

// UseLogger sets the package-level logger used by this package. Calling
// this is optional; if not called, all log messages are discarded.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// KeyEpochLength is the number of blocks a RandomX cache key remains
// valid for before rotating, matching Monero's convention.
const KeyEpochLength = 2048

// genesisKeySeed is the fixed ASCII seed used for the epoch-0 cache key.
var genesisKeySeed = []byte("Botcash\x00")

// epochKeySuffix is appended after the little-endian epoch height for
// every non-genesis epoch key.
var epochKeySuffix = []byte("Botcash\x00")

// KeyForHeight derives the RandomX cache key for the epoch containing
// height. Heights sharing a 2048-block epoch derive the same key.
//
// The epoch-0 key is the fixed seed "Botcash\x00"; every other epoch's key
// is the little-endian epoch height followed by the same ASCII suffix.
// This mirrors the reference implementation's key derivation, which
// derives the key from the epoch height itself rather than the hash of
// the block at the epoch boundary.
func KeyForHeight(height uint32) [32]byte {
	keyHeight := (height / KeyEpochLength) * KeyEpochLength

	var key [32]byte
	if keyHeight == 0 {
		copy(key[:], genesisKeySeed)
		return key
	}

	key[0] = byte(keyHeight)
	key[1] = byte(keyHeight >> 8)
	key[2] = byte(keyHeight >> 16)
	key[3] = byte(keyHeight >> 24)
	copy(key[4:], epochKeySuffix)
	return key
}

// epochCache is a process-wide cache of the most recently used RandomX
// light-mode Cache, keyed by epoch key height. Cache allocation is the
// only operation here that can block the caller for long; holding one
// cache per process avoids re-allocating the ~256MB light-mode cache on
// every verification within the same epoch.
type epochCache struct {
	mu        sync.Mutex
	keyHeight uint32
	key       [32]byte
	cache     *Cache
	valid     bool
}

var shared epochCache

// cacheForKey returns the shared Cache for key, allocating a new one if
// the epoch has rolled over since the last call.
func (e *epochCache) cacheForKey(keyHeight uint32, key [32]byte) (*Cache, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && e.keyHeight == keyHeight {
		return e.cache, nil
	}

	if e.cache != nil {
		e.cache.Close()
	}

	cache, err := NewCache(key[:])
	if err != nil {
		return nil, err
	}

	e.keyHeight = keyHeight
	e.key = key
	e.cache = cache
	e.valid = true
	return cache, nil
}

// Verify checks that header's RandomX proof-of-work meets the target
// encoded in header.Bits, using the cache key for the epoch containing
// height. The header's Solution field, if present, is never consulted:
// RandomX validity lives entirely in the header-input-plus-nonce hash.
func Verify(header *wire.Header, height uint32) error {
	key := KeyForHeight(height)
	keyHeight := (height / KeyEpochLength) * KeyEpochLength

	cache, err := shared.cacheForKey(keyHeight, key)
	if err != nil {
		return &CacheCreationError{Err: err}
	}

	vm, err := NewVM(cache, nil)
	if err != nil {
		return &VMCreationError{Err: err}
	}
	defer vm.Close()

	input := header.SerializeForRandomX()
	powHash, err := chainhash.NewHash(vm.CalcHash(input))
	if err != nil {
		return &HashCalculationError{Err: err}
	}

	if !difficulty.HashMeetsTarget(powHash, header.Bits) {
		return ErrInvalidSolution
	}

	log.Debugf("RandomX PoW verified at height %d (epoch key height %d)", height, keyHeight)
	return nil
}
