//go:build !cgo
// +build !cgo

// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package randomx

// Non-CGO build of the RandomX engine. The hash returned here is NOT a
// real RandomX hash; this build exists so that the rest of the tree
// compiles and its deterministic-keying and difficulty plumbing can be
// exercised without the C library present. Consensus validation requires
// the CGO build.

// Cache represents the RandomX cache keyed by an epoch seed.
type Cache struct {
	seed []byte
}

// NewCache creates a new RandomX cache with the given seed.
func NewCache(seed []byte) (*Cache, error) {
	return &Cache{seed: seed}, nil
}

// Close releases the cache resources.
func (c *Cache) Close() {}

// Dataset represents the full-memory RandomX dataset.
type Dataset struct {
	cache *Cache
}

// NewDataset creates a new RandomX dataset from a cache.
func NewDataset(cache *Cache) (*Dataset, error) {
	return &Dataset{cache: cache}, nil
}

// Close releases the dataset resources.
func (d *Dataset) Close() {}

// VM represents the RandomX virtual machine.
type VM struct {
	cache   *Cache
	dataset *Dataset
}

// NewVM creates a new RandomX VM with the given cache and dataset.
func NewVM(cache *Cache, dataset *Dataset) (*VM, error) {
	return &VM{cache: cache, dataset: dataset}, nil
}

// CalcHash returns a placeholder 32-byte digest: the input's leading
// bytes. Deterministic, but carries none of RandomX's memory-hardness.
func (vm *VM) CalcHash(input []byte) []byte {
	hash := make([]byte, 32)
	copy(hash, input)
	return hash
}

// Close releases the VM resources.
func (vm *VM) Close() {}

// GetFlags returns default flags for the non-CGO build.
func GetFlags() Flags {
	return 0
}

// Flags mirrors the CGO build's configuration flag type.
type Flags int
