// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package multisig decodes M-of-N identity setup and wrapped-action
// messages. Signature verification itself is external to the
// parser; ParseAction validates only lengths and field counts. Whether
// every signature's key index falls within the configured key set is
// checked separately by Action.ValidateKeyIndices against a Setup.
package multisig

import (
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// MinKeys and MaxKeys bound the number of keys in a multi-sig setup.
const (
	MinKeys = 2
	MaxKeys = 15
)

// CompressedPubkeySize is the fixed length, in octets, of a compressed
// secp256k1 public key.
const CompressedPubkeySize = 33

// SchnorrSignatureSize is the fixed length, in octets, of an inline
// signature wrapped around an action.
const SchnorrSignatureSize = 64

var (
	// ErrMalformed is returned when a payload is too short for its
	// declared field lengths.
	ErrMalformed = errors.New("multisig: malformed payload")

	// ErrInvalidKeyCount means key_count fell outside [MinKeys, MaxKeys].
	ErrInvalidKeyCount = errors.New("multisig: invalid key count")

	// ErrInvalidThreshold means threshold was zero or exceeded key_count.
	ErrInvalidThreshold = errors.New("multisig: invalid threshold")

	// ErrInvalidPubkey means a 33-octet field did not decode to a valid
	// compressed secp256k1 point.
	ErrInvalidPubkey = errors.New("multisig: invalid compressed public key")

	// ErrKeyIndexOutOfRange means a signature's key_index was not less
	// than the setup's key_count.
	ErrKeyIndexOutOfRange = errors.New("multisig: key index out of range")
)

// Setup is a decoded MultisigSetup payload: a list of compressed public
// keys and the number of signatures required to authorize an action.
type Setup struct {
	KeyCount   uint8
	Threshold  uint8
	PublicKeys [][CompressedPubkeySize]byte
}

// ParseSetup decodes [key_count(1)] [pubkey(33)]·key_count [threshold(1)],
// validating key count bounds, per-key decodability as a compressed
// secp256k1 point, and threshold bounds.
func ParseSetup(payload []byte) (Setup, error) {
	if len(payload) < 1 {
		return Setup{}, ErrMalformed
	}
	keyCount := payload[0]
	if keyCount < MinKeys || keyCount > MaxKeys {
		return Setup{}, ErrInvalidKeyCount
	}

	expectedLen := 1 + int(keyCount)*CompressedPubkeySize + 1
	if len(payload) < expectedLen {
		return Setup{}, ErrMalformed
	}

	keys := make([][CompressedPubkeySize]byte, keyCount)
	offset := 1
	for i := 0; i < int(keyCount); i++ {
		var key [CompressedPubkeySize]byte
		copy(key[:], payload[offset:offset+CompressedPubkeySize])
		if _, err := btcec.ParsePubKey(key[:]); err != nil {
			return Setup{}, ErrInvalidPubkey
		}
		keys[i] = key
		offset += CompressedPubkeySize
	}

	threshold := payload[offset]
	if threshold < 1 || threshold > keyCount {
		return Setup{}, ErrInvalidThreshold
	}

	return Setup{KeyCount: keyCount, Threshold: threshold, PublicKeys: keys}, nil
}

// MeetsThreshold reports whether signatureCount satisfies the setup's
// required threshold.
func (s Setup) MeetsThreshold(signatureCount uint8) bool {
	return signatureCount >= s.Threshold
}

// Signature is one (key_index, signature) pair wrapped around an
// action's inner payload.
type Signature struct {
	KeyIndex  uint8
	Signature [SchnorrSignatureSize]byte
}

// Action is a decoded MultisigAction payload: an inner social-message
// type and payload, authorized by a list of signatures.
type Action struct {
	InnerType    byte
	InnerPayload []byte
	Signatures   []Signature
}

// ParseAction decodes [inner_type(1)] [inner_len(2 LE)] [inner_payload]
// [sig_count(1)] ([key_index(1)] [signature(64)])·sig_count.
func ParseAction(payload []byte) (Action, error) {
	if len(payload) < 3 {
		return Action{}, ErrMalformed
	}

	innerType := payload[0]
	innerLen := int(binary.LittleEndian.Uint16(payload[1:3]))
	offset := 3
	if offset+innerLen > len(payload) {
		return Action{}, ErrMalformed
	}
	innerPayload := append([]byte(nil), payload[offset:offset+innerLen]...)
	offset += innerLen

	if offset+1 > len(payload) {
		return Action{}, ErrMalformed
	}
	sigCount := payload[offset]
	offset++

	sigs := make([]Signature, sigCount)
	for i := 0; i < int(sigCount); i++ {
		if offset+1+SchnorrSignatureSize > len(payload) {
			return Action{}, ErrMalformed
		}
		keyIndex := payload[offset]
		offset++
		var sig [SchnorrSignatureSize]byte
		copy(sig[:], payload[offset:offset+SchnorrSignatureSize])
		offset += SchnorrSignatureSize

		sigs[i] = Signature{KeyIndex: keyIndex, Signature: sig}
	}

	return Action{InnerType: innerType, InnerPayload: innerPayload, Signatures: sigs}, nil
}

// ValidateKeyIndices reports whether every signature's key index is
// within [0, setup.KeyCount). The parser itself cannot enforce this
// without the setup in scope, so it is checked at aggregation time.
func (a Action) ValidateKeyIndices(setup Setup) error {
	for _, sig := range a.Signatures {
		if sig.KeyIndex >= setup.KeyCount {
			return ErrKeyIndexOutOfRange
		}
	}
	return nil
}

// SignatureCount returns the number of signatures carried by the action.
func (a Action) SignatureCount() uint8 {
	return uint8(len(a.Signatures))
}

// BlockStats tallies multi-sig activity within a block.
type BlockStats struct {
	SetupCount      uint32
	ActionCount     uint32
	TotalKeys       uint32
	TotalSignatures uint32
}

// NewBlockStats creates an empty tally.
func NewBlockStats() BlockStats {
	return BlockStats{}
}

// RecordSetup records one setup carrying keyCount keys.
func (s *BlockStats) RecordSetup(keyCount uint8) {
	s.SetupCount++
	s.TotalKeys += uint32(keyCount)
}

// RecordAction records one action carrying signatureCount signatures.
func (s *BlockStats) RecordAction(signatureCount uint8) {
	s.ActionCount++
	s.TotalSignatures += uint32(signatureCount)
}

// Merge combines two BlockStats covering disjoint transaction sets.
func (s *BlockStats) Merge(other BlockStats) {
	s.SetupCount += other.SetupCount
	s.ActionCount += other.ActionCount
	s.TotalKeys += other.TotalKeys
	s.TotalSignatures += other.TotalSignatures
}
